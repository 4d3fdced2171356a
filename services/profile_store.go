package services

import (
	"errors"

	"bmicalc/models"

	"gorm.io/gorm"
)

var ErrUserNotFound = errors.New("user not found or disabled")

type ProfileStore interface {
	CreateUser(user *models.User) error
	FindUserByEmail(email string) (*models.User, error)
	FindUserByID(id uint) (*models.User, error)
	SaveUser(user *models.User) error
}

type GormProfileStore struct {
	DB *gorm.DB
}

func NewGormProfileStore(db *gorm.DB) *GormProfileStore {
	return &GormProfileStore{DB: db}
}

func (s *GormProfileStore) CreateUser(user *models.User) error {
	return s.DB.Create(user).Error
}

func (s *GormProfileStore) FindUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.DB.Where("email = ? AND disabled = ?", email, false).First(&user).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func (s *GormProfileStore) FindUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.DB.Where("id = ? AND disabled = ?", id, false).First(&user).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func (s *GormProfileStore) SaveUser(user *models.User) error {
	return s.DB.Save(user).Error
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrUserNotFound
	}
	return err
}
