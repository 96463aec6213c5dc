package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorCode string

const (
	ErrCodeNotFound     ErrorCode = "NOT_FOUND"
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrCodeForbidden    ErrorCode = "FORBIDDEN"
	ErrCodeBadRequest   ErrorCode = "BAD_REQUEST"
	ErrCodeConflict     ErrorCode = "CONFLICT"
	ErrCodeInternal     ErrorCode = "INTERNAL_ERROR"
	ErrCodeValidation   ErrorCode = "VALIDATION_ERROR"
	ErrCodeUpstream     ErrorCode = "UPSTREAM_ERROR"
	ErrCodeTooLarge     ErrorCode = "PAYLOAD_TOO_LARGE"
)

type AppError struct {
	Code       ErrorCode
	Message    string
	HTTPStatus int
	Cause      error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
	}
}

func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
		Cause:      err,
	}
}

// Validation: короткая форма для ошибок клиентской валидации.
func Validation(message string) *AppError {
	return New(ErrCodeValidation, message)
}

func codeToHTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case ErrCodeForbidden:
		return http.StatusForbidden
	case ErrCodeBadRequest, ErrCodeValidation:
		return http.StatusBadRequest
	case ErrCodeConflict:
		return http.StatusConflict
	case ErrCodeUpstream:
		return http.StatusBadGateway
	case ErrCodeTooLarge:
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

func IsNotFound(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == ErrCodeNotFound
}

func IsValidation(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == ErrCodeValidation
}

func IsUnauthorized(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == ErrCodeUnauthorized
}

var (
	ErrJobNotFound         = New(ErrCodeNotFound, "job listing not found")
	ErrProjectNotFound     = New(ErrCodeNotFound, "project not found")
	ErrApplicationNotFound = New(ErrCodeNotFound, "application not found")
	ErrContactNotFound     = New(ErrCodeNotFound, "contact not found")
	ErrSessionNotFound     = New(ErrCodeUnauthorized, "session expired, please log in again")
	ErrUnauthorized        = New(ErrCodeUnauthorized, "authorization required")
	ErrInvalidCredentials  = New(ErrCodeUnauthorized, "Invalid username or password")
	ErrAuditEntryNotFound  = New(ErrCodeNotFound, "audit entry not found")
	ErrNoDialog            = New(ErrCodeConflict, "no dialog is open")
	ErrResumeRequired      = New(ErrCodeValidation, "Please upload your resume")
)
