package schema

import (
	"math"
	"slices"
	"strconv"
	"strings"
)

// InSet passes when value is one of allowed.
func InSet(key, value string, allowed ...string) error {
	if slices.Contains(allowed, value) {
		return nil
	}
	return &ValidationError{Kind: KindNotInSet, Key: key, Value: value, Allowed: allowed}
}

// ParseNumber parses raw as a finite float.
func ParseNumber(key, raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &ValidationError{Kind: KindNotANumber, Key: key, Value: raw}
	}
	return v, nil
}

// ParseInt parses raw as a base-10 integer.
func ParseInt(key, raw string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, &ValidationError{Kind: KindNotANumber, Key: key, Value: raw}
	}
	return v, nil
}

// Finite rejects NaN and infinities, which ParseNumber would never produce but callers can pass directly.
func Finite(key string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return &ValidationError{Kind: KindNotANumber, Key: key, Value: v}
	}
	return nil
}

// Integral passes when v has no fractional part.
func Integral(key string, v float64) error {
	if err := Finite(key, v); err != nil {
		return err
	}
	if v == math.Trunc(v) {
		return nil
	}
	return &ValidationError{Kind: KindNotANumber, Key: key, Value: v, Reason: "must be a whole number"}
}

// InRange passes when v lies in [min, max] (inclusive) or (min, max) (exclusive).
func InRange(key string, v, min, max float64, inclusive bool) error {
	if err := Finite(key, v); err != nil {
		return err
	}
	ok := v > min && v < max
	if inclusive {
		ok = v >= min && v <= max
	}
	if ok {
		return nil
	}
	return &ValidationError{Kind: KindOutOfRange, Key: key, Value: v, Min: min, Max: max, Inclusive: inclusive}
}

// Positive passes when v > 0.
func Positive(key string, v float64) error {
	if err := Finite(key, v); err != nil {
		return err
	}
	if v > 0 {
		return nil
	}
	return &ValidationError{Kind: KindWrongSign, Key: key, Value: v, Reason: "must be > 0"}
}

// NonNegative passes when v >= 0.
func NonNegative(key string, v float64) error {
	if err := Finite(key, v); err != nil {
		return err
	}
	if v >= 0 {
		return nil
	}
	return &ValidationError{Kind: KindWrongSign, Key: key, Value: v, Reason: "must be >= 0"}
}

// SumTo passes when the values add up to total within tol.
func SumTo(key string, values []float64, total, tol float64) error {
	sum := 0.0
	for _, v := range values {
		if err := Finite(key, v); err != nil {
			return err
		}
		sum += v
	}
	if math.Abs(sum-total) <= tol {
		return nil
	}
	return &ValidationError{
		Kind:      KindOutOfRange,
		Key:       key,
		Value:     sum,
		Min:       total,
		Max:       total,
		Inclusive: true,
		Reason:    "sum must equal " + strconv.FormatFloat(total, 'g', -1, 64),
	}
}

// Must returns v or panics with err. Meant for callers that treat a rejected value as a programming error.
func Must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
