package services

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"bmicalc/models"
	"bmicalc/utils"

	"github.com/sirupsen/logrus"
)

// BMIConfig names the page widgets a calculator works with. MeasurementSystem
// defaults to imperial and BMICategories to the built-in table.
type BMIConfig struct {
	WeightInputID string
	HeightInputID string
	InchesInputID string
	AgeInputID    string
	GenderInputID string
	BMIValueID    string
	BMIResultID   string
	ResultBoxID   string

	MeasurementSystem models.MeasurementSystem
	BMICategories     models.CategoryTable
}

// InvalidInputError carries the field that received focus, if any.
type InvalidInputError struct {
	Field string
}

func (e *InvalidInputError) Error() string {
	if e.Field == "" {
		return utils.ErrInvalidInput.Error()
	}
	return fmt.Sprintf("%s: %s", utils.ErrInvalidInput, e.Field)
}

func (e *InvalidInputError) Unwrap() error { return utils.ErrInvalidInput }

// BMICalculator is immutable and safe for concurrent use.
type BMICalculator struct {
	cfg BMIConfig
}

func NewBMICalculator(cfg BMIConfig) (*BMICalculator, error) {
	switch {
	case cfg.WeightInputID == "":
		return nil, errors.New("weight input id is required")
	case cfg.HeightInputID == "":
		return nil, errors.New("height input id is required")
	case cfg.AgeInputID == "":
		return nil, errors.New("age input id is required")
	case cfg.BMIValueID == "":
		return nil, errors.New("bmi value id is required")
	}

	sys, err := models.ParseMeasurementSystem(string(cfg.MeasurementSystem))
	if err != nil {
		return nil, err
	}
	cfg.MeasurementSystem = sys

	builtin := cfg.BMICategories == nil
	if builtin {
		cfg.BMICategories = utils.DefaultBMICategories()
	} else {
		cfg.BMICategories = cfg.BMICategories.Clone()
	}
	warnings, err := utils.CheckCategoryTable(cfg.BMICategories)
	if err != nil {
		return nil, fmt.Errorf("bmi categories: %w", err)
	}
	// The built-in table's gaps are known; only caller tables warrant a warning.
	log := utils.Log.WithFields(logrus.Fields{"component": "bmi", "builtin_table": builtin})
	for _, w := range warnings {
		if builtin {
			log.Debug(w)
		} else {
			log.Warn(w)
		}
	}

	return &BMICalculator{cfg: cfg}, nil
}

func (c *BMICalculator) System() models.MeasurementSystem { return c.cfg.MeasurementSystem }

// Categories returns a copy of the active table.
func (c *BMICalculator) Categories() models.CategoryTable { return c.cfg.BMICategories.Clone() }

// WithSystem returns a calculator sharing this one's widgets and table.
func (c *BMICalculator) WithSystem(sys models.MeasurementSystem) *BMICalculator {
	if sys == c.cfg.MeasurementSystem {
		return c
	}
	cfg := c.cfg
	cfg.MeasurementSystem = sys
	return &BMICalculator{cfg: cfg}
}

// FieldValidators returns validity rules for the configured input widgets,
// for pages that have no validity state of their own.
func (c *BMICalculator) FieldValidators() map[string]FieldValidator {
	v := map[string]FieldValidator{
		c.cfg.WeightInputID: positiveNumber,
		c.cfg.HeightInputID: positiveNumber,
		c.cfg.AgeInputID:    positiveAge,
	}
	if c.cfg.InchesInputID != "" {
		v[c.cfg.InchesInputID] = optionalNonNegative
	}
	return v
}

func (c *BMICalculator) ReadMeasurement(page Page) models.Measurement {
	m := models.Measurement{
		Weight:          parseNumber(page.ReadField(c.cfg.WeightInputID)),
		HeightPrimary:   parseNumber(page.ReadField(c.cfg.HeightInputID)),
		HeightSecondary: math.NaN(),
		Age:             parseAge(page.ReadField(c.cfg.AgeInputID)),
	}
	if c.cfg.InchesInputID != "" {
		m.HeightSecondary = parseNumber(page.ReadField(c.cfg.InchesInputID))
	}
	if c.cfg.GenderInputID != "" {
		m.Gender = page.ReadField(c.cfg.GenderInputID)
	}
	return m
}

// Measure runs validation, height normalization, BMI and classification on
// already parsed inputs. A nil Category in the result is not an error.
func (c *BMICalculator) Measure(m models.Measurement) (models.BMIResult, error) {
	if err := utils.ValidateMeasurement(m); err != nil {
		return models.BMIResult{}, err
	}

	heightMeters := m.HeightPrimary
	if c.cfg.MeasurementSystem == models.Imperial {
		inches := m.HeightSecondary
		if !m.HasSecondary() {
			inches = 0
		}
		var err error
		if heightMeters, err = utils.ToMeters(m.HeightPrimary, inches); err != nil {
			return models.BMIResult{}, fmt.Errorf("%w: %w", utils.ErrInvalidInput, err)
		}
	}

	bmi := utils.ComputeBMI(m.Weight, heightMeters)
	if !utils.IsFiniteBMI(bmi) {
		return models.BMIResult{}, fmt.Errorf("%w: bmi out of range", utils.ErrInvalidInput)
	}
	return models.BMIResult{
		Value:    bmi,
		Category: utils.GetBMICategory(bmi, m.Age, c.cfg.BMICategories),
	}, nil
}

// Calculate reads the page, computes the BMI and writes the results back.
// On invalid input it focuses the first invalid field and leaves the
// display untouched.
func (c *BMICalculator) Calculate(page Page) (models.BMIResult, error) {
	m := c.ReadMeasurement(page)
	res, err := c.Measure(m)
	if err != nil {
		field := c.focusInvalidInput(page)
		utils.Log.WithFields(logrus.Fields{"component": "bmi", "field": field}).Debug("rejected input")
		return models.BMIResult{}, &InvalidInputError{Field: field}
	}

	page.WriteText(c.cfg.BMIValueID, strconv.FormatFloat(res.Value, 'f', -1, 64))
	if res.Category != nil && c.cfg.BMIResultID != "" {
		page.SetState(c.cfg.BMIResultID, res.Category.State)
	}
	if c.cfg.ResultBoxID != "" {
		page.Expand(c.cfg.ResultBoxID)
	}

	entry := utils.Log.WithFields(logrus.Fields{"component": "bmi", "bmi": res.Value, "age": m.Age, "system": c.cfg.MeasurementSystem})
	if res.Category == nil {
		entry.Debug("no category matched")
	} else {
		entry.WithField("state", res.Category.State).Debug("bmi calculated")
	}
	return res, nil
}

func (c *BMICalculator) focusInvalidInput(page Page) string {
	for _, id := range []string{c.cfg.WeightInputID, c.cfg.HeightInputID, c.cfg.InchesInputID, c.cfg.AgeInputID} {
		if id != "" && !page.IsFieldValid(id) {
			page.Focus(id)
			return id
		}
	}
	return ""
}
