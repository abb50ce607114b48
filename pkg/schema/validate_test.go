package schema

import (
	"errors"
	"strings"
	"testing"
)

func wallSchema() Schema {
	return Schema{
		"choice":    Enum("on", "off"),
		"roughness": AtLeastZero(),
		"pressure":  Above(),
	}
}

func TestValidate_Success(t *testing.T) {
	data := map[string]any{
		"choice":    "on",
		"roughness": "0.01",
		"pressure":  101325.0,
	}

	if err := Validate(wallSchema(), data); err != nil {
		t.Errorf("Validate() error = %v, want nil", err)
	}
}

func TestValidate_MissingField(t *testing.T) {
	data := map[string]any{
		"choice":   "off",
		"pressure": "1",
	}

	err := Validate(wallSchema(), data)
	if err == nil {
		t.Fatal("Validate() should return error for missing field")
	}

	aggr, ok := err.(*AggregateError)
	if !ok {
		t.Fatalf("error should be *AggregateError, got %T", err)
	}
	if len(aggr.Errors) != 1 {
		t.Fatalf("Validate() = %d errors, want 1", len(aggr.Errors))
	}

	validErr, ok := aggr.Errors[0].(*ValidationError)
	if !ok {
		t.Fatalf("error should be *ValidationError, got %T", aggr.Errors[0])
	}
	if validErr.Key != "roughness" || validErr.Kind != KindRequired {
		t.Errorf("error = %+v, want required roughness", validErr)
	}
}

func TestValidate_KindsArePreserved(t *testing.T) {
	data := map[string]any{
		"choice":    "maybe",
		"roughness": "-1",
		"pressure":  "abc",
	}

	err := Validate(wallSchema(), data)
	errs := ValidationErrors(err)
	if len(errs) != 3 {
		t.Fatalf("Validate() = %d errors, want 3", len(errs))
	}

	got := map[string]Kind{}
	for _, e := range errs {
		ve := e.(*ValidationError)
		got[ve.Key] = ve.Kind
	}
	want := map[string]Kind{
		"choice":    KindNotInSet,
		"roughness": KindWrongSign,
		"pressure":  KindNotANumber,
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("kind for %s = %q, want %q", k, got[k], v)
		}
	}

	if !errors.Is(err, ErrValidation) {
		t.Error("aggregate should match ErrValidation through Unwrap")
	}
}

func TestValidate_WrongGoType(t *testing.T) {
	err := Validate(Schema{"enabled": Bool()}, map[string]any{"enabled": "yes"})
	errs := ValidationErrors(err)
	if len(errs) != 1 {
		t.Fatalf("Validate() = %d errors, want 1", len(errs))
	}
	if KindOf(errs[0]) != KindWrongType {
		t.Errorf("KindOf() = %q, want %q", KindOf(errs[0]), KindWrongType)
	}
}

func TestValidate_EmptySchema(t *testing.T) {
	if err := Validate(Schema{}, map[string]any{"norm": "1"}); err != nil {
		t.Errorf("Validate() with empty schema should return nil, got %v", err)
	}

	var nilSchema Schema
	if err := Validate(nilSchema, map[string]any{"norm": "1"}); err != nil {
		t.Errorf("Validate() with nil schema should return nil, got %v", err)
	}
}

func TestValidatePresent(t *testing.T) {
	s := wallSchema()

	if err := ValidatePresent(s, map[string]any{"choice": "on", "unknown": "x"}); err != nil {
		t.Errorf("ValidatePresent() error = %v, want nil", err)
	}

	err := ValidatePresent(s, map[string]any{"roughness": "-0.5"})
	if len(ValidationErrors(err)) != 1 {
		t.Fatalf("ValidatePresent() = %v, want one error", err)
	}
}

func TestValidateFields(t *testing.T) {
	s := wallSchema()
	data := map[string]any{
		"choice":   "on",
		"pressure": "not validated",
	}

	if err := ValidateFields(s, data, "choice"); err != nil {
		t.Errorf("ValidateFields(choice) error = %v, want nil", err)
	}

	if err := ValidateFields(s, data); err != nil {
		t.Errorf("ValidateFields() with no fields should return nil, got %v", err)
	}

	err := ValidateFields(s, data, "roughness", "unknown")
	if len(ValidationErrors(err)) != 2 {
		t.Errorf("ValidateFields() = %v, want 2 errors", err)
	}
}

func TestValidationError_String(t *testing.T) {
	tests := []struct {
		err  *ValidationError
		want string
	}{
		{
			&ValidationError{Kind: KindRequired, Key: "norm", Reason: "required"},
			`field "norm": required`,
		},
		{
			&ValidationError{Kind: KindNotInSet, Key: "choice", Value: "x", Allowed: []string{"on", "off"}},
			`field "choice": x not in [on, off]`,
		},
		{
			&ValidationError{Kind: KindOutOfRange, Key: "emissivity", Value: 2.0, Min: 0, Max: 1, Inclusive: true},
			`field "emissivity": 2 outside [0, 1]`,
		},
		{
			&ValidationError{Kind: KindNotANumber, Key: "norm", Value: "abc"},
			`field "norm": "abc" is not a number`,
		},
	}

	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("ValidationError.Error() = %q, want %q", got, tt.want)
		}
	}
}

func TestAggregateError_String(t *testing.T) {
	aggr := &AggregateError{
		Errors: []error{
			&ValidationError{Kind: KindRequired, Key: "norm", Reason: "required"},
			&ValidationError{Kind: KindWrongSign, Key: "pressure", Value: -1.0},
		},
	}

	if result := aggr.Error(); !strings.Contains(result, "2 validation errors") {
		t.Errorf("AggregateError.Error() should mention 2 errors, got: %s", result)
	}

	if ValidationErrors(&ValidationError{Key: "norm"}) != nil {
		t.Error("ValidationErrors() on non-aggregate should be nil")
	}
}
