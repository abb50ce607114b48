package schema

import (
	"fmt"
	"reflect"
	"strings"
)

// Type defines the contract for field validation.
// Implementations determine how values are validated against a type.
type Type interface {
	// Name returns the human-readable name of the type (e.g., "string", "float").
	Name() string
	// Validate checks if a value conforms to this type.
	Validate(value any) error
}

// --- Built-in Type Implementations ---

// StringType validates string values.
type StringType struct{}

func (t *StringType) Name() string { return "string" }

func (t *StringType) Validate(value any) error {
	_, ok := value.(string)
	if !ok {
		return fmt.Errorf("expected string, got %T", value)
	}
	return nil
}

// IntType validates integer values. Document scalars arrive as strings, so numeric text is accepted.
type IntType struct{}

func (t *IntType) Name() string { return "int" }

func (t *IntType) Validate(value any) error {
	switch v := value.(type) {
	case int, int8, int16, int32, int64:
		return nil
	case float64:
		if v == float64(int64(v)) {
			return nil
		}
		return fmt.Errorf("expected int, got float (not a whole number)")
	case string:
		_, err := ParseInt("", v)
		return err
	default:
		return fmt.Errorf("expected int, got %T", value)
	}
}

// FloatType validates floating-point values, including numeric text.
type FloatType struct{}

func (t *FloatType) Name() string { return "float" }

func (t *FloatType) Validate(value any) error {
	_, err := toFloat(value)
	return err
}

// BoolType validates boolean values.
type BoolType struct{}

func (t *BoolType) Name() string { return "bool" }

func (t *BoolType) Validate(value any) error {
	_, ok := value.(bool)
	if !ok {
		return fmt.Errorf("expected bool, got %T", value)
	}
	return nil
}

// SliceType validates slices of a specific element type.
type SliceType struct {
	elemType Type
}

func (t *SliceType) Name() string {
	return fmt.Sprintf("[%s]", t.elemType.Name())
}

func (t *SliceType) Validate(value any) error {
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return fmt.Errorf("expected slice, got %T", value)
	}

	for i := 0; i < rv.Len(); i++ {
		elem := rv.Index(i).Interface()
		if err := t.elemType.Validate(elem); err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
	}
	return nil
}

// EnumType validates a string against a closed set of choices.
type EnumType struct {
	allowed []string
}

func (t *EnumType) Name() string {
	return fmt.Sprintf("enum(%s)", strings.Join(t.allowed, "|"))
}

func (t *EnumType) Validate(value any) error {
	s, ok := value.(string)
	if !ok {
		return fmt.Errorf("expected string, got %T", value)
	}
	return InSet("", s, t.allowed...)
}

// RangeType validates a number (or numeric text) against bounds.
type RangeType struct {
	min, max  float64
	inclusive bool
}

func (t *RangeType) Name() string {
	if t.inclusive {
		return fmt.Sprintf("float[%g,%g]", t.min, t.max)
	}
	return fmt.Sprintf("float(%g,%g)", t.min, t.max)
}

func (t *RangeType) Validate(value any) error {
	v, err := toFloat(value)
	if err != nil {
		return err
	}
	return InRange("", v, t.min, t.max, t.inclusive)
}

// SignType validates strictly positive or non-negative numbers.
type SignType struct {
	strict bool
}

func (t *SignType) Name() string {
	if t.strict {
		return "float>0"
	}
	return "float>=0"
}

func (t *SignType) Validate(value any) error {
	v, err := toFloat(value)
	if err != nil {
		return err
	}
	if t.strict {
		return Positive("", v)
	}
	return NonNegative("", v)
}

// CustomType applies a user-defined validation function.
type CustomType struct {
	name     string
	validate func(any) error
}

func (t *CustomType) Name() string { return t.name }

func (t *CustomType) Validate(value any) error {
	return t.validate(value)
}

func toFloat(value any) (float64, error) {
	switch v := value.(type) {
	case float64:
		return v, Finite("", v)
	case float32:
		return float64(v), Finite("", float64(v))
	case int:
		return float64(v), nil
	case int8:
		return float64(v), nil
	case int16:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case string:
		return ParseNumber("", v)
	default:
		return 0, fmt.Errorf("expected float, got %T", value)
	}
}

// --- Factory Functions ---

// String creates a string type validator.
func String() Type { return &StringType{} }

// Int creates an integer type validator.
func Int() Type { return &IntType{} }

// Float creates a float type validator.
func Float() Type { return &FloatType{} }

// Bool creates a boolean type validator.
func Bool() Type { return &BoolType{} }

// Slice creates a slice type validator for elements of the given type.
func Slice(elemType Type) Type {
	return &SliceType{elemType: elemType}
}

// Enum creates a validator accepting only the listed strings.
func Enum(allowed ...string) Type {
	return &EnumType{allowed: allowed}
}

// Between creates an inclusive range validator.
func Between(min, max float64) Type {
	return &RangeType{min: min, max: max, inclusive: true}
}

// IntBetween creates an inclusive range validator for whole numbers, stored as int or as text.
func IntBetween(min, max int) Type {
	return Custom(fmt.Sprintf("int[%d,%d]", min, max), func(value any) error {
		v, err := toFloat(value)
		if err != nil {
			return err
		}
		if err := Integral("", v); err != nil {
			return err
		}
		return InRange("", v, float64(min), float64(max), true)
	})
}

// Above creates a strictly-positive validator.
func Above() Type { return &SignType{strict: true} }

// AtLeastZero creates a non-negative validator.
func AtLeastZero() Type { return &SignType{} }

// Custom creates a custom type validator with a user-defined function.
func Custom(name string, validate func(any) error) Type {
	return &CustomType{name: name, validate: validate}
}
