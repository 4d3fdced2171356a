package services

import (
	"errors"
	"strings"

	"bmicalc/models"
	"bmicalc/utils"
)

var ErrBadCredentials = errors.New("invalid email or password")

type AuthService struct {
	Store  ProfileStore
	Secret []byte
}

func NewAuthService(store ProfileStore, secret []byte) *AuthService {
	return &AuthService{Store: store, Secret: secret}
}

func (s *AuthService) Register(email, password, firstName, lastName string) (*models.User, error) {
	hashed, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Email:             strings.ToLower(strings.TrimSpace(email)),
		Password:          hashed,
		FirstName:         firstName,
		LastName:          lastName,
		MeasurementSystem: string(models.Imperial),
	}
	if err := s.Store.CreateUser(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login returns a signed token for valid credentials.
func (s *AuthService) Login(email, password string) (string, error) {
	user, err := s.Store.FindUserByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return "", ErrBadCredentials
		}
		return "", err
	}
	if !utils.CheckPasswordHash(password, user.Password) {
		return "", ErrBadCredentials
	}
	return utils.GenerateJWT(user.Email, user.ID, s.Secret)
}
