package utils

import (
	"errors"
	"net/http"
)

// ErrorKind classifies an application error and decides its HTTP status.
type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindValidation
	KindAuth
	KindAuthorization
	KindNotFound
	KindConflict
)

// AppError is the single error type handlers know how to render.
type AppError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

// Status maps the kind onto the HTTP status code clients already rely on.
func (e *AppError) Status() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindAuth:
		return http.StatusUnauthorized
	case KindAuthorization:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Code is the machine-readable counterpart of Status.
func (e *AppError) Code() string {
	switch e.Kind {
	case KindValidation:
		return "VALIDATION_ERROR"
	case KindAuth:
		return "UNAUTHORIZED"
	case KindAuthorization:
		return "FORBIDDEN"
	case KindNotFound:
		return "NOT_FOUND"
	case KindConflict:
		return "CONFLICT"
	default:
		return "INTERNAL_ERROR"
	}
}

func ValidationError(message string) *AppError {
	return &AppError{Kind: KindValidation, Message: message}
}

func AuthError(message string) *AppError {
	return &AppError{Kind: KindAuth, Message: message}
}

func AuthorizationError(message string) *AppError {
	return &AppError{Kind: KindAuthorization, Message: message}
}

func NotFoundError(message string) *AppError {
	return &AppError{Kind: KindNotFound, Message: message}
}

func ConflictError(message string) *AppError {
	return &AppError{Kind: KindConflict, Message: message}
}

func InternalError(message string, err error) *AppError {
	return &AppError{Kind: KindInternal, Message: message, Err: err}
}

// AsAppError returns err as an *AppError, wrapping unknown errors as internal.
func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return InternalError("Internal Server Error", err)
}

// IsKind reports whether err is an AppError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Kind == kind
}
