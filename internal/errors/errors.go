package errors

import "net/http"

const (
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeValidation   = "VALIDATION_ERROR"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeForbidden    = "FORBIDDEN"
	ErrCodeInternal     = "INTERNAL_ERROR"
)

type AppError struct {
	Code    string
	Message string
	Cause   error
}

func New(code string, message string, cause error) *AppError {
	return &AppError{Code: code, Message: message, Cause: cause}
}

func (a *AppError) Error() string {
	if a.Cause != nil {
		return a.Message + ": " + a.Cause.Error()
	}
	return a.Message
}

func (a *AppError) Unwrap() error {
	return a.Cause
}

func (a *AppError) MapToHttpCode() int {
	switch a.Code {
	case ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeValidation:
		return http.StatusUnprocessableEntity
	case ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case ErrCodeForbidden:
		return http.StatusForbidden
	case ErrCodeInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
