package handler

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/stockroom/stockroom/internal/web/apierror"
)

// NewValidator returns a validator reporting fields by their json name.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}

		return name
	})

	return v
}

// Validate checks s and returns a Validation error naming the first
// failing field.
func Validate(v *validator.Validate, s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return apierror.Wrap(apierror.Unhandled, err)
	}

	fe := validationErrors[0]
	if fe.Tag() == "required" {
		return apierror.Newf(apierror.Validation, "%s is required", fe.Field())
	}

	return apierror.Newf(apierror.Validation, "%s failed validation %q", fe.Field(), fe.Tag())
}
