package schema

import "errors"

// Schema is a map of field names to their expected types.
// Example: {"norm": Above(), "choice": Enum("norm", "flow1")}
type Schema map[string]Type

// Validate checks if data conforms to the schema.
// Returns an error with all validation failures found.
func Validate(schema Schema, data map[string]any) error {
	if len(schema) == 0 {
		return nil
	}

	var errs []error

	for fieldName, fieldType := range schema {
		value, exists := data[fieldName]
		if !exists {
			errs = append(errs, &ValidationError{
				Kind:   KindRequired,
				Key:    fieldName,
				Reason: "required",
			})
			continue
		}

		if err := fieldType.Validate(value); err != nil {
			errs = append(errs, fieldError(fieldName, value, err))
		}
	}

	if len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}

	return nil
}

// ValidatePresent validates only the fields of data that the schema knows about; absent fields are fine.
// Document checks use it because optional scalars are only materialized on first access.
func ValidatePresent(schema Schema, data map[string]any) error {
	var errs []error

	for fieldName, value := range data {
		fieldType, known := schema[fieldName]
		if !known {
			continue
		}
		if err := fieldType.Validate(value); err != nil {
			errs = append(errs, fieldError(fieldName, value, err))
		}
	}

	if len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}
	return nil
}

// ValidateFields validates only specific fields from data against the schema.
// Missing fields are treated as an error.
func ValidateFields(schema Schema, data map[string]any, fields ...string) error {
	if len(fields) == 0 {
		return nil
	}

	var errs []error

	for _, fieldName := range fields {
		fieldType, exists := schema[fieldName]
		if !exists {
			errs = append(errs, &ValidationError{
				Kind:   KindRequired,
				Key:    fieldName,
				Reason: "not defined in schema",
			})
			continue
		}

		value, fieldExists := data[fieldName]
		if !fieldExists {
			errs = append(errs, &ValidationError{
				Kind:   KindRequired,
				Key:    fieldName,
				Reason: "required",
			})
			continue
		}

		if err := fieldType.Validate(value); err != nil {
			errs = append(errs, fieldError(fieldName, value, err))
		}
	}

	if len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}

	return nil
}

// fieldError keys a type failure by field, keeping the guard's kind when there is one.
func fieldError(key string, value any, err error) error {
	var ve *ValidationError
	if errors.As(err, &ve) {
		cp := *ve
		cp.Key = key
		return &cp
	}
	return &ValidationError{
		Kind:   KindWrongType,
		Key:    key,
		Reason: err.Error(),
		Value:  value,
	}
}
