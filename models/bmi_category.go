package models

import (
	"encoding/json"
	"fmt"
	"math"
)

// AgeUnbounded marks an age bracket with no upper limit.
const AgeUnbounded = math.MaxInt32

// CategoryRange is an inclusive BMI interval. Max may be +Inf.
type CategoryRange struct {
	Min   float64
	Max   float64
	Label string
	State string
}

func (r CategoryRange) Contains(bmi float64) bool {
	return bmi >= r.Min && bmi <= r.Max
}

type AgeBracket struct {
	MinAge int
	MaxAge int
	Ranges []CategoryRange
}

func (b AgeBracket) Contains(age int) bool {
	return age >= b.MinAge && age <= b.MaxAge
}

// CategoryTable is scanned in order; the first matching bracket and range win.
type CategoryTable []AgeBracket

// Clone returns a deep copy so callers can't mutate a table held by a calculator.
func (t CategoryTable) Clone() CategoryTable {
	if t == nil {
		return nil
	}
	out := make(CategoryTable, len(t))
	for i, b := range t {
		out[i] = AgeBracket{MinAge: b.MinAge, MaxAge: b.MaxAge, Ranges: append([]CategoryRange(nil), b.Ranges...)}
	}
	return out
}

// JSON keeps unbounded limits as null since encoding/json can't carry Inf.

type categoryRangeJSON struct {
	Min   float64  `json:"min"`
	Max   *float64 `json:"max"`
	Label string   `json:"label"`
	State string   `json:"state"`
}

func (r CategoryRange) MarshalJSON() ([]byte, error) {
	out := categoryRangeJSON{Min: r.Min, Label: r.Label, State: r.State}
	if !math.IsInf(r.Max, 1) {
		hi := r.Max
		out.Max = &hi
	}
	return json.Marshal(out)
}

func (r *CategoryRange) UnmarshalJSON(data []byte) error {
	var in categoryRangeJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	r.Min, r.Label, r.State = in.Min, in.Label, in.State
	r.Max = math.Inf(1)
	if in.Max != nil {
		r.Max = *in.Max
	}
	return nil
}

type ageBracketJSON struct {
	AgeRange []*int         `json:"age_range"`
	Ranges   []CategoryRange `json:"ranges"`
}

func (b AgeBracket) MarshalJSON() ([]byte, error) {
	lo := b.MinAge
	out := ageBracketJSON{AgeRange: []*int{&lo, nil}, Ranges: b.Ranges}
	if b.MaxAge != AgeUnbounded {
		hi := b.MaxAge
		out.AgeRange[1] = &hi
	}
	return json.Marshal(out)
}

func (b *AgeBracket) UnmarshalJSON(data []byte) error {
	var in ageBracketJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	if len(in.AgeRange) != 2 || in.AgeRange[0] == nil {
		return fmt.Errorf("age_range must be [min, max], got %d elements", len(in.AgeRange))
	}
	b.MinAge = *in.AgeRange[0]
	b.MaxAge = AgeUnbounded
	if in.AgeRange[1] != nil {
		b.MaxAge = *in.AgeRange[1]
	}
	b.Ranges = in.Ranges
	return nil
}
