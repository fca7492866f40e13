package validation

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	return &Validator{
		validate: validator.New(),
	}
}

// Struct validates any tagged request struct.
func (v *Validator) Struct(value any) error {
	err := v.validate.Struct(value)
	if err != nil {
		var invalidErr *validator.InvalidValidationError
		if errors.As(err, &invalidErr) {
			return err
		}
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}
