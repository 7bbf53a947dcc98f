package calculators

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var ErrInvalidInput = errors.New("invalid input")

const (
	FieldPrintWeight     = "print weight"
	FieldProfitMargin    = "profit margin"
	FieldSetupCost       = "setup cost"
	FieldOperationalCost = "operational cost"
)

// InvalidInputError describes a numeric input outside its domain. Raw holds
// the text as typed when the value never parsed.
type InvalidInputError struct {
	Field  string
	Value  float64
	Raw    string
	Reason string

	typed bool
}

func (e *InvalidInputError) Error() string {
	if e.typed {
		if strings.TrimSpace(e.Raw) == "" {
			return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
		}
		return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Raw, e.Reason)
	}
	return fmt.Sprintf("invalid %s %g: %s", e.Field, e.Value, e.Reason)
}

func (e *InvalidInputError) Is(target error) bool {
	return target == ErrInvalidInput
}

func finite(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return &InvalidInputError{Field: field, Value: v, Reason: "must be a finite number"}
	}
	return nil
}
