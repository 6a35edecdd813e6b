package utils

import (
	"errors"
	"net/http"
)

// AppError is a typed failure carrying the HTTP status it maps to.
// Handlers raise these; the response helpers translate them. Anything
// that is not an AppError surfaces as a generic 500.
type AppError struct {
	Status  int
	Message string
}

func (e *AppError) Error() string { return e.Message }

func NewValidationError(msg string) *AppError {
	return &AppError{Status: http.StatusBadRequest, Message: msg}
}

func NewAuthenticationError(msg string) *AppError {
	return &AppError{Status: http.StatusUnauthorized, Message: msg}
}

func NewAuthorizationError(msg string) *AppError {
	return &AppError{Status: http.StatusForbidden, Message: msg}
}

func NewNotFoundError(msg string) *AppError {
	return &AppError{Status: http.StatusNotFound, Message: msg}
}

// Duplicate registrations answer 400, matching the rest of the
// validation failures on that endpoint.
func NewConflictError(msg string) *AppError {
	return &AppError{Status: http.StatusBadRequest, Message: msg}
}

func NewInternalError(msg string) *AppError {
	return &AppError{Status: http.StatusInternalServerError, Message: msg}
}

// AsAppError unwraps err into an AppError if it is one.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
