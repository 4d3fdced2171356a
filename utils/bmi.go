package utils

import (
	"errors"
	"math"

	"bmicalc/models"
)

var (
	ErrInvalidHeight = errors.New("invalid height input")
	ErrInvalidInput  = errors.New("invalid input")
)

const metersPerFoot = 0.3048

// ToMeters converts feet plus inches to meters, rounded to 2 decimals.
func ToMeters(feet, inches float64) (float64, error) {
	if !isFinitePositive(feet) || inches < 0 || math.IsNaN(inches) || math.IsInf(inches, 0) {
		return 0, ErrInvalidHeight
	}
	totalFeet := feet + inches/12
	return Round2(totalFeet * metersPerFoot), nil
}

// IsValidInput reports whether the raw inputs can produce a BMI. Weight and
// height must be finite. A NaN secondary height means "not provided" and is
// accepted.
func IsValidInput(weight, heightPrimary, heightSecondary float64, age int) bool {
	return isFinitePositive(weight) && isFinitePositive(heightPrimary) && age > 0 &&
		(math.IsNaN(heightSecondary) || (heightSecondary >= 0 && !math.IsInf(heightSecondary, 0)))
}

func ValidateMeasurement(m models.Measurement) error {
	if !IsValidInput(m.Weight, m.HeightPrimary, m.HeightSecondary, m.Age) {
		return ErrInvalidInput
	}
	return nil
}

// ComputeBMI expects weight in kilograms and a positive height in meters.
// Extreme inputs can still overflow to +Inf; see IsFiniteBMI.
func ComputeBMI(weightKg, heightMeters float64) float64 {
	return Round2(weightKg / (heightMeters * heightMeters))
}

func IsFiniteBMI(bmi float64) bool {
	return !math.IsNaN(bmi) && !math.IsInf(bmi, 0)
}

func isFinitePositive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}

func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
