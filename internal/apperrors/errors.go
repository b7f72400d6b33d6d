package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates that the authenticated user may not perform the requested action.
var ErrForbidden = errors.New("forbidden")

// ErrUnauthorized indicates missing or invalid authentication.
var ErrUnauthorized = errors.New("unauthorized")

// ErrRefreshTokenExpired indicates the presented refresh token is past its expiry.
var ErrRefreshTokenExpired = errors.New("refresh token has expired")

// AppError carries an HTTP status code alongside a message and an optional
// wrapped cause. Handlers serialize it directly.
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates an AppError with an explicit status code.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewInternalServerError wraps an unexpected failure as a 500-level AppError.
func NewInternalServerError(message string, err error) *AppError {
	return &AppError{Code: http.StatusInternalServerError, Message: message, Err: err}
}
