// Package models defines the data structures for the premium leave engine.
package models

import (
	"errors"
	"fmt"
)

// Diagnostic kinds. None of them stops a batch; only ErrMissingRequiredField
// drops the record it is attached to.
var (
	ErrUnparseableDate      = errors.New("unparseable date")
	ErrDateConflict         = errors.New("start date after end date")
	ErrMissingRequiredField = errors.New("name cannot be empty")
	ErrIncompleteData       = errors.New("incomplete data")
)

// DiagnosticKind names a data-quality problem found in a record.
type DiagnosticKind string

const (
	KindUnparseableDate      DiagnosticKind = "unparseable_date"
	KindDateConflict         DiagnosticKind = "date_conflict"
	KindMissingRequiredField DiagnosticKind = "missing_required_field"
	KindIncompleteData       DiagnosticKind = "incomplete_data"
)

// Sentinel returns the error value matching the kind.
func (k DiagnosticKind) Sentinel() error {
	switch k {
	case KindUnparseableDate:
		return ErrUnparseableDate
	case KindDateConflict:
		return ErrDateConflict
	case KindMissingRequiredField:
		return ErrMissingRequiredField
	case KindIncompleteData:
		return ErrIncompleteData
	default:
		return nil
	}
}

// Diagnostic is a per-field problem attached to a record. It implements error
// and unwraps to the sentinel of its kind, so callers can use errors.Is.
type Diagnostic struct {
	Kind    DiagnosticKind `json:"kind"`
	Field   string         `json:"field,omitempty"`
	Value   string         `json:"value,omitempty"`
	Name    string         `json:"name,omitempty"`
	Line    int            `json:"line,omitempty"`
	Message string         `json:"message"`
}

func (d *Diagnostic) Error() string {
	prefix := ""
	if d.Line > 0 {
		prefix = fmt.Sprintf("line %d: ", d.Line)
	}
	if d.Field != "" {
		return fmt.Sprintf("%s%s: %s", prefix, d.Field, d.Message)
	}
	return prefix + d.Message
}

func (d *Diagnostic) Unwrap() error {
	return d.Kind.Sentinel()
}

// NewUnparseableDate reports a date cell that matched no known shape.
func NewUnparseableDate(field, value string) Diagnostic {
	return Diagnostic{
		Kind:    KindUnparseableDate,
		Field:   field,
		Value:   value,
		Message: fmt.Sprintf("could not parse date %q", value),
	}
}

// NewDateConflict reports a start date later than its end date.
func NewDateConflict(field string, start, end Date) Diagnostic {
	return Diagnostic{
		Kind:    KindDateConflict,
		Field:   field,
		Value:   start.String() + " - " + end.String(),
		Message: fmt.Sprintf("start %s is after end %s", start, end),
	}
}

// NewIncompleteData reports a missing optional field.
func NewIncompleteData(field string) Diagnostic {
	return Diagnostic{
		Kind:    KindIncompleteData,
		Field:   field,
		Message: "value is missing",
	}
}

// NewMissingName reports a row dropped for lack of a name.
func NewMissingName(line int) Diagnostic {
	return Diagnostic{
		Kind:    KindMissingRequiredField,
		Field:   "name",
		Line:    line,
		Message: ErrMissingRequiredField.Error(),
	}
}

// IsDropping reports whether the error removes a record from the results.
func IsDropping(err error) bool {
	return errors.Is(err, ErrMissingRequiredField)
}
