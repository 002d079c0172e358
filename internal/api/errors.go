package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/phrazzld/rolodex-api/internal/api/shared"
	"github.com/phrazzld/rolodex-api/internal/domain"
	"github.com/phrazzld/rolodex-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	var validationErrs validator.ValidationErrors

	switch {
	case err == nil:
		return http.StatusOK

	case errors.Is(err, shared.ErrRequestTooLarge):
		return http.StatusRequestEntityTooLarge

	// Bad request errors
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, shared.ErrMalformedBody),
		errors.Is(err, store.ErrInvalidEntity),
		errors.As(err, &validationErrs):
		return http.StatusBadRequest

	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	case errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	// The store could not be reached; the next request retries.
	case errors.Is(err, store.ErrConnection):
		return http.StatusServiceUnavailable

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details
// such as driver messages, statement text or column values.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	var (
		validationErr  *domain.ValidationError
		validationErrs validator.ValidationErrors
	)

	switch {
	case errors.Is(err, shared.ErrRequestTooLarge):
		return "Request body too large"

	case errors.Is(err, shared.ErrMalformedBody):
		return "Invalid request body"

	case errors.As(err, &validationErrs):
		return SanitizeValidationError(err)

	case errors.As(err, &validationErr):
		return fmt.Sprintf("Invalid %s: %s", validationErr.Field, validationErr.Message)

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid record data"

	case errors.Is(err, store.ErrNotFound):
		return "Record not found"

	case errors.Is(err, store.ErrDuplicate):
		return "Record already exists"

	case errors.Is(err, store.ErrConnection):
		return "Service temporarily unavailable"

	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError turns validator errors into a user-friendly
// message naming the first invalid field.
func SanitizeValidationError(err error) string {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return "Validation error"
	}

	fe := validationErrs[0]
	if fe.Field() == "" {
		return "Validation error"
	}
	return fmt.Sprintf("Invalid %s: %s", fe.Field(), getValidationTagMessage(fe.Tag()))
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required", "notblank":
		return "required field"
	case "min":
		return "too short"
	case "max":
		return "too long"
	default:
		return "validation failed"
	}
}

// HandleAPIError writes the status code and safe message for err and logs
// the redacted error. For 500 responses a non-empty fallback replaces the
// generic message.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)
	if status == http.StatusInternalServerError && fallback != "" {
		message = fallback
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err)
}
