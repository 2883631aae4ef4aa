package validation

import (
	"regexp"
)

// Validation rule patterns
var (
	// Email validation pattern - configurable
	EmailPattern = `^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,4}$`

	// Password min length
	PasswordMinLength = 8

	// Person name min/max length
	NameMinLength = 2
	NameMaxLength = 100

	// Club field lengths
	ClubNameMinLength        = 3
	ClubNameMaxLength        = 100
	ClubDescriptionMinLength = 10

	// Event and announcement titles
	EventNameMinLength = 3
	TitleMinLength     = 3
)

// CompiledPatterns caches compiled regex patterns for better performance
var CompiledPatterns = struct {
	Email *regexp.Regexp
}{
	Email: regexp.MustCompile(EmailPattern),
}

// StringValidation validates a string value against length and pattern rules
type StringValidation struct {
	Value    string
	MinLen   int
	MaxLen   int
	Required bool
	Pattern  *regexp.Regexp
}

// NewStringValidation creates a new string validation
func NewStringValidation(value string) *StringValidation {
	return &StringValidation{
		Value:    value,
		Required: true,
	}
}

// WithMinLength sets minimum length
func (v *StringValidation) WithMinLength(min int) *StringValidation {
	v.MinLen = min
	return v
}

// WithMaxLength sets maximum length
func (v *StringValidation) WithMaxLength(max int) *StringValidation {
	v.MaxLen = max
	return v
}

// WithPattern sets regex pattern
func (v *StringValidation) WithPattern(pattern *regexp.Regexp) *StringValidation {
	v.Pattern = pattern
	return v
}

// WithRequired sets if field is required
func (v *StringValidation) WithRequired(required bool) *StringValidation {
	v.Required = required
	return v
}

// Validate performs validation
func (v *StringValidation) Validate() bool {
	if v.Required && v.Value == "" {
		return false
	}

	// Skip other validations for empty optional values
	if !v.Required && v.Value == "" {
		return true
	}

	if v.MinLen > 0 && len(v.Value) < v.MinLen {
		return false
	}

	if v.MaxLen > 0 && len(v.Value) > v.MaxLen {
		return false
	}

	if v.Pattern != nil && !v.Pattern.MatchString(v.Value) {
		return false
	}

	return true
}

// NumericValidation validates an int value against min/max rules
type NumericValidation struct {
	Value    int
	Min      int
	Max      int
	Required bool
}

// NewNumericValidation creates a new numeric validation
func NewNumericValidation(value int) *NumericValidation {
	return &NumericValidation{
		Value:    value,
		Required: true,
	}
}

// WithMin sets minimum value
func (v *NumericValidation) WithMin(min int) *NumericValidation {
	v.Min = min
	return v
}

// WithMax sets maximum value
func (v *NumericValidation) WithMax(max int) *NumericValidation {
	v.Max = max
	return v
}

// Validate performs validation
func (v *NumericValidation) Validate() bool {
	if v.Min != 0 && v.Value < v.Min {
		return false
	}

	if v.Max != 0 && v.Value > v.Max {
		return false
	}

	return true
}
