package models

import (
	"time"

	"gorm.io/gorm"
)

// User holds the profile fields a BMI can be computed from. Height is feet or
// meters depending on MeasurementSystem; HeightInches only applies to imperial.
type User struct {
	gorm.Model
	Email             string `gorm:"uniqueIndex;not null"`
	Password          string `gorm:"not null"`
	FirstName         string
	LastName          string
	Birthday          time.Time
	Height            float64
	HeightInches      float64
	Weight            float64
	Gender            string
	MeasurementSystem string `gorm:"default:imperial"`
	Disabled          bool   `gorm:"default:false"`
}
