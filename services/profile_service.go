package services

import (
	"errors"
	"strconv"
	"time"

	"bmicalc/models"
	"bmicalc/utils"
)

type ProfileInput struct {
	FirstName         string   `json:"first_name"`
	LastName          string   `json:"last_name"`
	Birthday          string   `json:"birthday"` // YYYY-MM-DD
	Height            *float64 `json:"height"`
	HeightInches      *float64 `json:"height_inches"`
	Weight            *float64 `json:"weight"`
	Gender            *string  `json:"gender"`
	MeasurementSystem string   `json:"measurement_system"`
}

// ProfileBMI is a BMI computed from a stored profile together with what it
// would show on the page.
type ProfileBMI struct {
	Result     models.BMIResult `json:"result"`
	Display    Display          `json:"display"`
	System     string           `json:"measurement_system"`
	Calculated time.Time        `json:"calculated_at"`
}

type ProfileService struct {
	Store      ProfileStore
	Calculator *BMICalculator
	Hub        *RealtimeHub // optional
	Now        func() time.Time
}

func NewProfileService(store ProfileStore, calc *BMICalculator, hub *RealtimeHub) *ProfileService {
	return &ProfileService{Store: store, Calculator: calc, Hub: hub, Now: time.Now}
}

func (s *ProfileService) GetProfile(userID uint) (map[string]interface{}, error) {
	user, err := s.Store.FindUserByID(userID)
	if err != nil {
		return nil, err
	}

	age := 0
	birthday := ""
	if !user.Birthday.IsZero() {
		age = utils.CalculateAge(user.Birthday, s.Now())
		birthday = user.Birthday.Format("2006-01-02")
	}

	return map[string]interface{}{
		"id":                 user.ID,
		"email":              user.Email,
		"first_name":         user.FirstName,
		"last_name":          user.LastName,
		"birthday":           birthday,
		"age":                age,
		"height":             user.Height,
		"height_inches":      user.HeightInches,
		"weight":             user.Weight,
		"gender":             user.Gender,
		"measurement_system": user.MeasurementSystem,
	}, nil
}

// UpdateProfile saves the non-empty fields of input and pushes the
// recomputed BMI to the user's open pages.
func (s *ProfileService) UpdateProfile(userID uint, input ProfileInput) error {
	user, err := s.Store.FindUserByID(userID)
	if err != nil {
		return err
	}

	if input.FirstName != "" {
		user.FirstName = input.FirstName
	}
	if input.LastName != "" {
		user.LastName = input.LastName
	}
	if input.Birthday != "" {
		birthday, err := time.Parse("2006-01-02", input.Birthday)
		if err != nil {
			return errors.New("birthday must be YYYY-MM-DD")
		}
		user.Birthday = birthday
	}
	if input.Height != nil {
		user.Height = *input.Height
	}
	if input.HeightInches != nil {
		user.HeightInches = *input.HeightInches
	}
	if input.Weight != nil {
		user.Weight = *input.Weight
	}
	if input.Gender != nil {
		user.Gender = *input.Gender
	}
	if input.MeasurementSystem != "" {
		sys, err := models.ParseMeasurementSystem(input.MeasurementSystem)
		if err != nil {
			return err
		}
		user.MeasurementSystem = string(sys)
	}

	if err := s.Store.SaveUser(user); err != nil {
		return err
	}
	s.push(user)
	return nil
}

// ProfileBMI computes the BMI from the stored profile using the user's own
// measurement system. An incomplete profile yields an *InvalidInputError.
func (s *ProfileService) ProfileBMI(userID uint) (*ProfileBMI, error) {
	user, err := s.Store.FindUserByID(userID)
	if err != nil {
		return nil, err
	}
	calc := s.calculatorFor(user)
	page := NewFormPage(s.profileValues(user), calc.FieldValidators())
	res, err := calc.Calculate(page)
	out := &ProfileBMI{Result: res, Display: page.Display, System: string(calc.System()), Calculated: s.Now()}
	return out, err
}

func (s *ProfileService) push(user *models.User) {
	if s.Hub == nil || s.Hub.ClientCount(user.ID) == 0 {
		return
	}
	calc := s.calculatorFor(user)
	page := NewRemotePage(s.profileValues(user), calc.FieldValidators(), func(cmd PageCommand) {
		s.Hub.Broadcast(user.ID, cmd)
	})
	// Incomplete profiles only move focus; nothing else to report here.
	_, _ = calc.Calculate(page)
}

func (s *ProfileService) calculatorFor(user *models.User) *BMICalculator {
	sys, err := models.ParseMeasurementSystem(user.MeasurementSystem)
	if err != nil {
		return s.Calculator
	}
	return s.Calculator.WithSystem(sys)
}

// profileValues lays the profile out under the calculator's field ids.
func (s *ProfileService) profileValues(user *models.User) map[string]string {
	cfg := s.Calculator.cfg
	values := map[string]string{
		cfg.WeightInputID: formatField(user.Weight),
		cfg.HeightInputID: formatField(user.Height),
		cfg.AgeInputID:    "",
	}
	if !user.Birthday.IsZero() {
		values[cfg.AgeInputID] = strconv.Itoa(utils.CalculateAge(user.Birthday, s.Now()))
	}
	if cfg.InchesInputID != "" {
		values[cfg.InchesInputID] = formatField(user.HeightInches)
	}
	if cfg.GenderInputID != "" {
		values[cfg.GenderInputID] = user.Gender
	}
	return values
}

func formatField(v float64) string {
	if v == 0 {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
