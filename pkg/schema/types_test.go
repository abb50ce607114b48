package schema

import (
	"fmt"
	"testing"
)

func TestTypes(t *testing.T) {
	tests := []struct {
		typ     Type
		name    string
		value   any
		wantErr bool
	}{
		{String(), "string", "hello", false},
		{String(), "string", 42, true},
		{Int(), "int", 42, false},
		{Int(), "int", int64(42), false},
		{Int(), "int", float64(42), false},
		{Int(), "int", float64(42.5), true},
		{Int(), "int", "3", false},
		{Int(), "int", "3.5", true},
		{Float(), "float", 3.14, false},
		{Float(), "float", float32(3.14), false},
		{Float(), "float", 42, false},
		{Float(), "float", "1e-3", false},
		{Float(), "float", "NaN", true},
		{Float(), "float", true, true},
		{Bool(), "bool", true, false},
		{Bool(), "bool", "true", true},
		{Enum("on", "off"), "enum(on|off)", "on", false},
		{Enum("on", "off"), "enum(on|off)", "auto", true},
		{Enum("on", "off"), "enum(on|off)", 1, true},
		{Between(0, 1), "float[0,1]", "0.8", false},
		{Between(0, 1), "float[0,1]", 1.0, false},
		{Between(0, 1), "float[0,1]", "1.2", true},
		{Above(), "float>0", "0", true},
		{Above(), "float>0", 0.1, false},
		{AtLeastZero(), "float>=0", "0", false},
		{AtLeastZero(), "float>=0", -0.1, true},
		{IntBetween(1, 3), "int[1,3]", "2", false},
		{IntBetween(1, 3), "int[1,3]", 3, false},
		{IntBetween(1, 3), "int[1,3]", "1.5", true},
		{IntBetween(1, 3), "int[1,3]", "4", true},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s/%v", tt.name, tt.value), func(t *testing.T) {
			if tt.typ.Name() != tt.name {
				t.Errorf("Name() = %q, want %q", tt.typ.Name(), tt.name)
			}
			err := tt.typ.Validate(tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate(%v) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
		})
	}
}

func TestSliceType(t *testing.T) {
	ratios := Slice(Between(0, 100))

	if ratios.Name() != "[float[0,100]]" {
		t.Errorf("Name() = %q", ratios.Name())
	}
	if err := ratios.Validate([]float64{45, 55}); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
	if err := ratios.Validate([]any{45, "101"}); err == nil {
		t.Error("Validate() should reject an element above 100")
	}
	if err := ratios.Validate("45"); err == nil {
		t.Error("Validate() should reject a non-slice")
	}
}

func TestCustomType(t *testing.T) {
	formula := Custom("formula", func(v any) error {
		s, ok := v.(string)
		if !ok || s == "" {
			return fmt.Errorf("empty formula")
		}
		return nil
	})

	if formula.Name() != "formula" {
		t.Errorf("Name() = %q, want %q", formula.Name(), "formula")
	}
	if err := formula.Validate("u = 1;"); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
	if err := formula.Validate(""); err == nil {
		t.Error("Validate() should reject an empty formula")
	}
}
