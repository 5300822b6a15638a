// Package validator adapts go-playground/validator to Echo's Validator
// interface.
package validator

import (
	"github.com/go-playground/validator/v10"

	domainerrors "crm/internal/domain/errors"
)

// echoValidator wraps a validator instance for Echo.
type echoValidator struct {
	validate *validator.Validate
}

// New creates the request validator.
func New() *echoValidator {
	return &echoValidator{validate: validator.New()}
}

// Validate runs struct validation and converts failures into the domain's
// validation error so the error middleware renders a 400 envelope.
func (v *echoValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	return nil
}
