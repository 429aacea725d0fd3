package utils

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "gearguard/pkg/errors"
)

// Validator adapts go-playground/validator to echo's Validator
// interface and turns field errors into a 422 HttpError.
type Validator struct {
	validate *validator.Validate
}

func NewValidator(v *validator.Validate) *Validator {
	return &Validator{validate: v}
}

func (v *Validator) Validate(i interface{}) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperrors.NewHttpError(http.StatusBadRequest, "invalid request payload", err, nil)
	}

	details := make(map[string]interface{}, len(validationErrors))
	var fields []string
	for _, fe := range validationErrors {
		field := strings.ToLower(fe.Field())
		details[field] = fmt.Sprintf("failed on the '%s' rule", fe.Tag())
		fields = append(fields, field)
	}

	return apperrors.NewHttpError(
		http.StatusUnprocessableEntity,
		fmt.Sprintf("validation failed for: %s", strings.Join(fields, ", ")),
		err,
		details,
	)
}
