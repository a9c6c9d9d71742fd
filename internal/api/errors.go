package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/pantry-chef/internal/api/shared"
	"github.com/phrazzld/pantry-chef/internal/domain"
	"github.com/phrazzld/pantry-chef/internal/form"
	"github.com/phrazzld/pantry-chef/internal/generation"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes without
// exposing the error types to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, generation.ErrGenerationFailed):
		return http.StatusBadGateway

	case errors.Is(err, form.ErrSubmitInProgress):
		return http.StatusConflict

	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidRecipeMode),
		errors.Is(err, form.ErrInvalidInput):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns the message a client may see for err.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, generation.ErrGenerationFailed):
		return generation.UserMessage

	case errors.Is(err, form.ErrSubmitInProgress):
		return "A request is already in progress"

	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, form.ErrInvalidInput):
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return SanitizeValidationError(validationErrs)
		}
		return "Validation error"

	case errors.Is(err, domain.ErrInvalidRecipeMode):
		return "Invalid mode: invalid value"

	default:
		return "An unexpected error occurred"
	}
}

// HandleAPIError writes the JSON error response for err. A non-empty
// message overrides the safe default.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, message string) {
	status := MapErrorToStatusCode(err)
	if message == "" {
		message = GetSafeErrorMessage(err)
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err)
}

// SanitizeValidationError removes sensitive details from validation errors
// and returns a user-friendly message.
func SanitizeValidationError(err error) string {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
		fe := validationErrs[0]
		return fmt.Sprintf("Invalid %s: %s", fieldName(fe.Field()), getValidationTagMessage(fe.Tag()))
	}
	return "Validation error"
}

// fieldName lower-cases the Go field name to match the form and JSON names.
func fieldName(field string) string {
	switch field {
	case "HealthConditions":
		return "health_conditions"
	default:
		return strings.ToLower(field)
	}
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}
