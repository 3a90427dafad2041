package util

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var (
	minValue = decimal.RequireFromString("0.01")
	// SQLite stores DECIMAL columns as REAL; below 10^13 every two-place
	// value has at most 15 significant digits and survives the float64 trip
	maxValue = decimal.New(1, 13)
)

// ValidateValue checks a transaction amount: at least 0.01, at most two
// decimal places, and below 10,000,000,000,000.
func ValidateValue(v decimal.Decimal) error {
	if v.LessThan(minValue) {
		return fmt.Errorf("value must be at least 0.01, got %s", v)
	}
	if v.GreaterThanOrEqual(maxValue) {
		return fmt.Errorf("value too large, got %s", v)
	}
	if !v.Equal(v.Truncate(2)) {
		return fmt.Errorf("value must have at most two decimal places, got %s", v)
	}
	return nil
}

// NormalizeText trims s and checks its length in characters.
func NormalizeText(field, s string, minLen, maxLen int) (string, error) {
	s = strings.TrimSpace(s)
	switch n := utf8.RuneCountInString(s); {
	case n == 0:
		return "", fmt.Errorf("%s is required", field)
	case n < minLen:
		return "", fmt.Errorf("%s must be at least %d characters", field, minLen)
	case n > maxLen:
		return "", fmt.Errorf("%s must be at most %d characters", field, maxLen)
	}
	return s, nil
}

// NormalizeOptionalText is NormalizeText for partial updates: nil and blank
// input come back as nil, meaning "keep the stored value".
func NormalizeOptionalText(field string, s *string, minLen, maxLen int) (*string, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	out, err := NormalizeText(field, *s, minLen, maxLen)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ValidationMessages turns a binding error into one readable line per
// failing field.
func ValidationMessages(err error) []string {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return []string{err.Error()}
	}
	out := make([]string, 0, len(ve))
	for _, fe := range ve {
		out = append(out, fieldMessage(fe))
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	field := lowerFirst(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		if fe.Kind().String() == "string" {
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		if fe.Kind().String() == "string" {
			return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	}
	return fmt.Sprintf("%s is invalid (%s)", field, fe.Tag())
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
