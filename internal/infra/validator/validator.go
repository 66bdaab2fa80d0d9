// Package validator adapts go-playground/validator to field-addressable errors.
package validator

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	domainerrors "tiktok/internal/domain/errors"
	"tiktok/internal/errors"

	"github.com/go-playground/validator/v10"
)

// Validator validates struct tags and reports failures keyed by JSON field name.
// It satisfies both service.InputValidator and echo.Validator.
type Validator struct {
	validate *validator.Validate
}

// New creates a validator that names fields after their json tags.
func New() *Validator {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}

		return name
	})
	// Registration of a fixed tag with a valid func cannot fail.
	_ = validate.RegisterValidation("maxbytes", maxBytes)

	return &Validator{validate: validate}
}

// maxBytes limits the encoded length of a string, as bcrypt only reads the first 72 bytes.
func maxBytes(fl validator.FieldLevel) bool {
	limit, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}

	return len(fl.Field().String()) <= limit
}

// Validate returns domainerrors.FieldErrors with the first violation of each field.
func (v *Validator) Validate(input any) error {
	err := v.validate.Struct(input)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return errors.Wrap(err, "invalid validation target")
	}

	fieldErrs := make(domainerrors.FieldErrors, len(validationErrs))
	for _, fieldErr := range validationErrs {
		if _, seen := fieldErrs[fieldErr.Field()]; seen {
			continue
		}
		fieldErrs[fieldErr.Field()] = message(fieldErr)
	}

	return fieldErrs
}

func message(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return domainerrors.MsgFieldRequired
	case "email":
		return domainerrors.MsgInvalidEmail
	case "max":
		return fmt.Sprintf("Ensure this field has no more than %s characters.", fieldErr.Param())
	case "maxbytes":
		return fmt.Sprintf("Ensure this field has no more than %s bytes.", fieldErr.Param())
	case "min":
		return fmt.Sprintf("Ensure this field has at least %s characters.", fieldErr.Param())
	case "gt":
		return fmt.Sprintf("Ensure this value is greater than %s.", fieldErr.Param())
	default:
		return "Enter a valid value."
	}
}
