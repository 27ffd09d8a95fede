package validator

import (
	"strings"

	validators "github.com/go-playground/validator/v10"
)

// Validator interface
type Validator interface {
	ValidateStruct(inf interface{}) error
}

type validator struct {
	validator *validators.Validate
}

// New Validator func
func New() Validator {
	v := validators.New()
	return &validator{
		validator: v,
	}
}

// ValidateStruct func
func (v *validator) ValidateStruct(inf interface{}) error {
	err := v.validator.Struct(inf)
	if err == nil {
		return nil
	}
	if fields, ok := err.(validators.ValidationErrors); ok {
		reasons := make([]string, 0, len(fields))
		for _, field := range fields {
			reasons = append(reasons, field.Field()+" failed on "+field.Tag())
		}
		return &ValidationError{Reasons: reasons}
	}
	return err
}

// ValidationError struct - collects per-field failures into one error
type ValidationError struct {
	Reasons []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Reasons, ", ")
}
