package models

import (
	"fmt"
	"math"
	"strings"
)

type MeasurementSystem string

const (
	Metric   MeasurementSystem = "metric"
	Imperial MeasurementSystem = "imperial"
)

// ParseMeasurementSystem maps "" to Imperial.
func ParseMeasurementSystem(s string) (MeasurementSystem, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(Imperial):
		return Imperial, nil
	case string(Metric):
		return Metric, nil
	default:
		return "", fmt.Errorf("unknown measurement system %q", s)
	}
}

// Measurement is one set of parsed form inputs. HeightPrimary is feet under
// Imperial and meters under Metric; HeightSecondary is extra inches and is NaN
// when not provided.
type Measurement struct {
	Weight          float64
	HeightPrimary   float64
	HeightSecondary float64
	Age             int
	Gender          string
}

func (m Measurement) HasSecondary() bool {
	return !math.IsNaN(m.HeightSecondary)
}

type BMIResult struct {
	Value    float64        `json:"bmi"`
	Category *CategoryRange `json:"category"`
}
