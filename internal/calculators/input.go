package calculators

import (
	"math"
	"strconv"
	"strings"
)

// ParseAmount reads one typed number for field. Surrounding spaces, a leading
// currency symbol and a trailing percent sign are tolerated, so "£3.50" and
// "20%" parse the same as "3.50" and "20".
func ParseAmount(field, raw, currency string) (float64, error) {
	s := strings.TrimSpace(raw)
	if currency != "" {
		s = strings.TrimSpace(strings.TrimPrefix(s, currency))
	}
	s = strings.TrimSpace(strings.TrimSuffix(s, "%"))

	if s == "" {
		return 0, &InvalidInputError{Field: field, Raw: raw, typed: true, Reason: "a number is required"}
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, &InvalidInputError{Field: field, Raw: raw, typed: true, Reason: "not a decimal number"}
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &InvalidInputError{Field: field, Raw: raw, typed: true, Reason: "must be a finite number"}
	}
	return v, nil
}
