package schema

import (
	"errors"
	"fmt"
	"strings"
)

// ErrValidation matches every *ValidationError through errors.Is.
var ErrValidation = errors.New("validation failed")

// Kind is the machine-readable category of a validation failure.
type Kind string

const (
	KindNotInSet   Kind = "not_in_set"   // Value is not one of the allowed choices
	KindNotANumber Kind = "not_a_number" // Value does not parse as a finite number
	KindOutOfRange Kind = "out_of_range" // Value lies outside [Min, Max] (or (Min, Max))
	KindWrongSign  Kind = "wrong_sign"   // Value must be positive (or non-negative)
	KindRequired   Kind = "required"     // Field absent from a schema-checked map
	KindWrongType  Kind = "wrong_type"   // Field present with an unexpected Go type
	KindBadText    Kind = "bad_text"     // Text holds characters the persisted form cannot carry
)

// ValidationError represents a single field validation failure.
type ValidationError struct {
	Kind   Kind
	Key    string // Field name
	Reason string // Human-readable reason for failure
	Value  any    // The value that failed validation

	Allowed   []string // KindNotInSet
	Min, Max  float64  // KindOutOfRange
	Inclusive bool     // KindOutOfRange
}

func (e *ValidationError) Error() string {
	var detail string
	switch e.Kind {
	case KindNotInSet:
		detail = fmt.Sprintf("%v not in [%s]", e.Value, strings.Join(e.Allowed, ", "))
	case KindOutOfRange:
		lo, hi := "(", ")"
		if e.Inclusive {
			lo, hi = "[", "]"
		}
		detail = fmt.Sprintf("%v outside %s%g, %g%s", e.Value, lo, e.Min, e.Max, hi)
	case KindNotANumber:
		detail = fmt.Sprintf("%q is not a number", fmt.Sprint(e.Value))
	case KindWrongSign:
		detail = fmt.Sprintf("%v has the wrong sign", e.Value)
	case KindBadText:
		detail = fmt.Sprintf("%+q is not storable", fmt.Sprint(e.Value))
	default:
		if e.Value == nil {
			return fmt.Sprintf("field %q: %s", e.Key, e.Reason)
		}
		return fmt.Sprintf("field %q: %s (got %T)", e.Key, e.Reason, e.Value)
	}
	if e.Reason != "" {
		detail += ": " + e.Reason
	}
	return fmt.Sprintf("field %q: %s", e.Key, detail)
}

// Is lets errors.Is(err, ErrValidation) match any validation failure.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// KindOf returns the kind of the first ValidationError in err's chain, or "".
func KindOf(err error) Kind {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Kind
	}
	return ""
}

// AggregateError represents multiple validation failures.
type AggregateError struct {
	Errors []error
}

func (e *AggregateError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	msg := fmt.Sprintf("%d validation errors:\n", len(e.Errors))
	for i, err := range e.Errors {
		msg += fmt.Sprintf("  %d. %s\n", i+1, err.Error())
	}
	return msg
}

// Unwrap exposes the individual failures to errors.Is and errors.As.
func (e *AggregateError) Unwrap() []error {
	return e.Errors
}

// ValidationErrors returns all validation errors if err is an AggregateError.
// Otherwise returns nil.
func ValidationErrors(err error) []error {
	var aggr *AggregateError
	if errors.As(err, &aggr) {
		return aggr.Errors
	}
	return nil
}
