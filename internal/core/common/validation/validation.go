package validation

import (
	"fmt"
	"regexp"

	errors "github.com/frahmantamala/access-management/internal"
)

type ValidatorFunc func(interface{}) *errors.ValidationError

type FieldValidator struct {
	FieldName  string
	Value      interface{}
	Validators []ValidatorFunc
}

type ValidationBuilder struct {
	fields []FieldValidator
}

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

func NewValidator() *ValidationBuilder {
	return &ValidationBuilder{
		fields: make([]FieldValidator, 0),
	}
}

func (v *ValidationBuilder) Field(name string, value interface{}) *FieldValidator {
	fv := FieldValidator{
		FieldName:  name,
		Value:      value,
		Validators: make([]ValidatorFunc, 0),
	}
	v.fields = append(v.fields, fv)
	return &v.fields[len(v.fields)-1]
}

func (fv *FieldValidator) Required() *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.ValidationError {
		switch v := value.(type) {
		case string:
			if v == "" {
				return fieldError(fv.FieldName, fmt.Sprintf("%s is required", fv.FieldName))
			}
		case int64:
			if v == 0 {
				return fieldError(fv.FieldName, fmt.Sprintf("%s is required", fv.FieldName))
			}
		case *string:
			if v == nil || *v == "" {
				return fieldError(fv.FieldName, fmt.Sprintf("%s is required", fv.FieldName))
			}
		}
		return nil
	})
	return fv
}

func (fv *FieldValidator) Email() *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.ValidationError {
		if v, ok := value.(string); ok && v != "" {
			if !emailPattern.MatchString(v) {
				return fieldError(fv.FieldName, fmt.Sprintf("%s must be a valid email address", fv.FieldName))
			}
		}
		return nil
	})
	return fv
}

func (fv *FieldValidator) MinLength(min int) *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.ValidationError {
		if v, ok := value.(string); ok && v != "" {
			if len(v) < min {
				return fieldError(fv.FieldName, fmt.Sprintf("%s must be at least %d characters", fv.FieldName, min))
			}
		}
		return nil
	})
	return fv
}

func (fv *FieldValidator) Positive() *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.ValidationError {
		if v, ok := value.(int64); ok {
			if v <= 0 {
				return fieldError(fv.FieldName, fmt.Sprintf("%s must be a positive integer", fv.FieldName))
			}
		}
		return nil
	})
	return fv
}

func fieldError(field, message string) *errors.ValidationError {
	return &errors.ValidationError{
		Field:   field,
		Message: message,
		Code:    string(errors.ErrCodeValidationFailed),
	}
}

// Validate runs every registered validator and returns a single
// AppError carrying all field failures, or nil when everything passed.
func (v *ValidationBuilder) Validate() error {
	var collected []errors.ValidationError
	for _, field := range v.fields {
		for _, validator := range field.Validators {
			if vErr := validator(field.Value); vErr != nil {
				collected = append(collected, *vErr)
			}
		}
	}

	if len(collected) == 0 {
		return nil
	}

	return errors.NewValidationError("Validation failed", errors.ErrCodeValidationFailed).
		WithDetails(errors.ValidationErrors{Errors: collected})
}
