// Package forms is the single input-adapter layer: it coerces loosely typed
// request values into model types and validates them at the boundary.
package forms

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ValidationError describes a single rejected field
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalid(field, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// NumberField accepts a JSON number, a numeric string, an empty string or
// null, and keeps the raw text for the Parse helpers.
type NumberField string

func (n *NumberField) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*n = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = NumberField(s)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return fmt.Errorf("expected a number or numeric string: %w", err)
	}
	*n = NumberField(num.String())
	return nil
}

// ParseOptionalInt returns nil for blank input
func ParseOptionalInt(raw string) (*int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid integer %q", raw)
	}
	return &v, nil
}

// ParseOptionalDecimal returns an invalid NullDecimal for blank input. Both
// "1234.56" and Brazilian formatted "1.234,56" are accepted.
func ParseOptionalDecimal(raw string) (decimal.NullDecimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.NullDecimal{}, nil
	}
	d, err := decimal.NewFromString(normalizeDecimal(raw))
	if err != nil {
		return decimal.NullDecimal{}, fmt.Errorf("invalid number %q", raw)
	}
	return decimal.NewNullDecimal(d), nil
}

func normalizeDecimal(raw string) string {
	raw = strings.TrimPrefix(raw, "R$")
	raw = strings.ReplaceAll(strings.TrimSpace(raw), " ", "")
	if strings.Contains(raw, ",") {
		raw = strings.ReplaceAll(raw, ".", "")
		raw = strings.ReplaceAll(raw, ",", ".")
	}
	return raw
}

func optionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
