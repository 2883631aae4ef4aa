package dto

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// HandleValidationError converts a gin binding error into an ErrorDetail.
// Validator errors name the offending field; anything else is reported as a
// malformed request body.
func HandleValidationError(err error) *ErrorDetail {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
		first := validationErrs[0]
		detail := NewErrorDetail(ErrorCodeValidationFailed, "Validation failed")
		detail = detail.WithField(lowerFirst(first.Field()))
		detail = detail.WithDetails(validationMessage(first))
		return detail
	}

	detail := NewErrorDetail(ErrorCodeInvalidRequest, "Invalid request format")
	detail = detail.WithDetails(err.Error())
	return detail
}

func validationMessage(fe validator.FieldError) string {
	field := lowerFirst(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "url":
		return fmt.Sprintf("%s must be a valid URL", field)
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed validation on '%s'", field, fe.Tag())
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
