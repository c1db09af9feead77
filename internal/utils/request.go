package utils

import (
	"errors"
	"net/http"
	"strings"

	appErrors "github.com/Muppalavinisree/vibecommerce/internal/errors"
	"github.com/go-playground/validator/v10"
)

// ParseAndValidate decodes a JSON body into dest and runs struct validation.
// The returned error is always an *AppError.
func ParseAndValidate(r *http.Request, dest any, validate *validator.Validate) error {
	if err := DecodeJSONBody(r, dest); err != nil {
		return DecodeError(err)
	}

	return Validate(dest, validate)
}

// DecodeError maps a DecodeJSONBody failure to an *AppError.
func DecodeError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return appErrors.PayloadTooLargeError("Request body too large").WithError(err)
	}

	if errors.Is(err, ErrEmptyBody) {
		return appErrors.BadRequestError("Request body cannot be empty").WithError(err)
	}

	return appErrors.BadRequestError("Invalid JSON body").WithError(err)
}

func Validate(dest any, validate *validator.Validate) error {
	if err := ValidateStruct(validate, dest); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return appErrors.ValidationError("Validation failed").
				WithDetail(strings.Join(ValidationMessages(validationErrs), "; ")).
				WithError(err)
		}

		return appErrors.InternalError("Failed to validate request").WithError(err)
	}

	return nil
}
