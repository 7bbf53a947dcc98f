package catalog

import (
	"errors"
	"fmt"
)

var (
	ErrSourceNotFound  = errors.New("catalog source not found")
	ErrMalformedRecord = errors.New("malformed catalog record")
)

// MalformedRecordError points at the offending line and column of the source.
// Line is 1-based and counts the header; it is 0 when the header itself is
// the problem.
type MalformedRecordError struct {
	Line   int
	Column string
	Value  string
	Reason string
}

func (e *MalformedRecordError) Error() string {
	switch {
	case e.Line == 0:
		return fmt.Sprintf("malformed catalog header: %s %q", e.Reason, e.Column)
	case e.Column == "":
		return fmt.Sprintf("malformed catalog record at line %d: %s", e.Line, e.Reason)
	case e.Value != "":
		return fmt.Sprintf("malformed catalog record at line %d: column %q: %s (%q)", e.Line, e.Column, e.Reason, e.Value)
	default:
		return fmt.Sprintf("malformed catalog record at line %d: column %q: %s", e.Line, e.Column, e.Reason)
	}
}

func (e *MalformedRecordError) Is(target error) bool {
	return target == ErrMalformedRecord
}
