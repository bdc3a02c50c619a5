package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code is a stable error code for programmatic handling.
type Code string

const (
	CodeValidation         Code = "validation"
	CodeBadRequest         Code = "bad_request"
	CodeConflict           Code = "conflict"
	CodeInvalidID          Code = "invalid_id"
	CodeNotFound           Code = "not_found"
	CodeInvalidCredentials Code = "invalid_credentials"
	CodeUnavailable        Code = "unavailable"
	CodeInternal           Code = "internal"
)

// GenericMessage is the only message a caller ever sees for a server-side failure.
const GenericMessage = "Server error"

// AppError carries a code, a user-facing message and an optional cause.
type AppError struct {
	Code    Code
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *AppError) Unwrap() error { return e.Err }

// New creates a new AppError with code and message.
func New(code Code, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// Wrap wraps an existing error with code and message.
func Wrap(err error, code Code, message string) *AppError {
	if err == nil {
		return New(code, message)
	}
	return &AppError{Code: code, Message: message, Err: err}
}

// IsCode checks if an error has the provided code (through unwrapping).
func IsCode(err error, code Code) bool {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Code == code
	}
	return false
}

// CodeOf returns the code of the first AppError in the chain, or CodeInternal.
func CodeOf(err error) Code {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Code
	}
	return CodeInternal
}

// HTTPStatus maps an error to the status code the API answers with.
func HTTPStatus(err error) int {
	switch CodeOf(err) {
	case CodeValidation, CodeBadRequest, CodeConflict, CodeInvalidID, CodeInvalidCredentials:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage returns the message safe to show to a client. Server-side
// failures never leak their cause.
func PublicMessage(err error) string {
	var ae *AppError
	if errors.As(err, &ae) && HTTPStatus(err) < http.StatusInternalServerError {
		return ae.Message
	}
	return GenericMessage
}
