package utils

import (
	"fmt"
	"math"

	"bmicalc/models"
)

// GetBMICategory returns the first range of the first bracket covering age
// that contains bmi, or nil.
func GetBMICategory(bmi float64, age int, table models.CategoryTable) *models.CategoryRange {
	for _, bracket := range table {
		if !bracket.Contains(age) {
			continue
		}
		for i := range bracket.Ranges {
			if bracket.Ranges[i].Contains(bmi) {
				r := bracket.Ranges[i]
				return &r
			}
		}
		return nil
	}
	return nil
}

// DefaultBMICategories returns a fresh copy of the built-in table.
func DefaultBMICategories() models.CategoryTable {
	inf := math.Inf(1)
	return models.CategoryTable{
		{
			// Children and teens. A boundary value belongs to the upper category.
			MinAge: 0, MaxAge: 17,
			Ranges: []models.CategoryRange{
				{Min: 0, Max: 4.99, Label: "Underweight", State: "underweight"},
				{Min: 5, Max: 84.99, Label: "Healthy weight", State: "healthy"},
				{Min: 85, Max: 94.99, Label: "Overweight", State: "overweight"},
				{Min: 95, Max: inf, Label: "Obese", State: "obese"},
			},
		},
		{
			MinAge: 18, MaxAge: 65,
			Ranges: []models.CategoryRange{
				{Min: 0, Max: 18.4, Label: "Underweight", State: "underweight"},
				{Min: 18.5, Max: 24.9, Label: "Healthy weight", State: "healthy"},
				{Min: 25, Max: 29.9, Label: "Overweight", State: "overweight"},
				{Min: 30, Max: inf, Label: "Obesity", State: "obese"},
			},
		},
		{
			MinAge: 66, MaxAge: models.AgeUnbounded,
			Ranges: []models.CategoryRange{
				{Min: 0, Max: 21.9, Label: "Underweight", State: "underweight"},
				{Min: 22, Max: 27, Label: "Healthy weight", State: "healthy"},
				{Min: 27.1, Max: 30, Label: "Overweight", State: "overweight"},
				{Min: 30.1, Max: inf, Label: "Obesity", State: "obese"},
			},
		},
	}
}

// CheckCategoryTable rejects structurally broken tables. Overlaps and gaps are
// legal (first match wins) and come back as warnings instead.
func CheckCategoryTable(table models.CategoryTable) (warnings []string, err error) {
	if len(table) == 0 {
		return nil, fmt.Errorf("category table is empty")
	}
	for i, b := range table {
		if b.MinAge > b.MaxAge {
			return nil, fmt.Errorf("bracket %d: min age %d above max age %d", i, b.MinAge, b.MaxAge)
		}
		for j, r := range b.Ranges {
			if math.IsNaN(r.Min) || math.IsNaN(r.Max) {
				return nil, fmt.Errorf("bracket %d range %d (%s): bound is NaN", i, j, r.Label)
			}
			if r.Min > r.Max {
				return nil, fmt.Errorf("bracket %d range %d (%s): min %v above max %v", i, j, r.Label, r.Min, r.Max)
			}
			if j == 0 {
				continue
			}
			prev := b.Ranges[j-1]
			switch {
			case r.Min <= prev.Max:
				warnings = append(warnings, fmt.Sprintf("bracket %d: %q overlaps %q at %v", i, r.Label, prev.Label, r.Min))
			case Round2(r.Min-prev.Max) > 0.01:
				warnings = append(warnings, fmt.Sprintf("bracket %d: gap between %q and %q (%v to %v)", i, prev.Label, r.Label, prev.Max, r.Min))
			}
		}
		if i > 0 && b.MinAge <= table[i-1].MaxAge {
			warnings = append(warnings, fmt.Sprintf("bracket %d: ages %d-%d overlap previous bracket", i, b.MinAge, b.MaxAge))
		}
	}
	return warnings, nil
}
