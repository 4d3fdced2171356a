package services

import (
	"math"
	"strconv"
	"strings"
)

// Page is the widget system the calculator reads inputs from and writes
// results to. Field and display ids are opaque to the calculator.
type Page interface {
	ReadField(id string) string
	WriteText(id, text string)
	SetState(id, state string)
	Expand(id string)
	Focus(id string)
	IsFieldValid(id string) bool
}

// FieldValidator reports whether a raw field value is acceptable.
type FieldValidator func(raw string) bool

// Display records what a calculation did to the page.
type Display struct {
	Texts    map[string]string `json:"text"`
	States   map[string]string `json:"states"`
	Expanded []string          `json:"expanded"`
	Focused  string            `json:"focused,omitempty"`
}

func newDisplay() Display {
	return Display{Texts: map[string]string{}, States: map[string]string{}, Expanded: []string{}}
}

// FormPage is a Page over submitted form values. It is meant for a single
// calculation and is not safe for concurrent use.
type FormPage struct {
	Values     map[string]string
	Validators map[string]FieldValidator
	Display
}

func NewFormPage(values map[string]string, validators map[string]FieldValidator) *FormPage {
	if values == nil {
		values = map[string]string{}
	}
	return &FormPage{Values: values, Validators: validators, Display: newDisplay()}
}

func (p *FormPage) ReadField(id string) string { return p.Values[id] }

func (p *FormPage) WriteText(id, text string) { p.Texts[id] = text }

func (p *FormPage) SetState(id, state string) { p.States[id] = state }

func (p *FormPage) Expand(id string) { p.Expanded = append(p.Expanded, id) }

func (p *FormPage) Focus(id string) { p.Focused = id }

// IsFieldValid treats fields without a validator as valid.
func (p *FormPage) IsFieldValid(id string) bool {
	v, ok := p.Validators[id]
	if !ok {
		return true
	}
	return v(p.Values[id])
}

// parseNumber returns NaN for empty, malformed or non-finite input.
func parseNumber(raw string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsInf(f, 0) {
		return math.NaN()
	}
	return f
}

// parseAge reads the leading integer ("17.9" and "17abc" are 17, "1e3" is 1)
// and returns 0 when there is none or it overflows.
func parseAge(raw string) int {
	raw = strings.TrimSpace(raw)
	end := 0
	if end < len(raw) && (raw[end] == '-' || raw[end] == '+') {
		end++
	}
	for end < len(raw) && raw[end] >= '0' && raw[end] <= '9' {
		end++
	}
	n, err := strconv.Atoi(raw[:end])
	if err != nil || n > math.MaxInt32 || n < -math.MaxInt32 {
		return 0
	}
	return n
}

func positiveNumber(raw string) bool { return parseNumber(raw) > 0 }

// optionalNonNegative accepts blank or malformed input as "not provided".
func optionalNonNegative(raw string) bool {
	f := parseNumber(raw)
	return math.IsNaN(f) || f >= 0
}

func positiveAge(raw string) bool { return parseAge(raw) > 0 }
