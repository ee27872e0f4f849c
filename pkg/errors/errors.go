package errors

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	CodeUnauthorized    = "UNAUTHORIZED"
	CodeForbidden       = "FORBIDDEN"
	CodeNotFound        = "NOT_FOUND"
	CodeBookingConflict = "BOOKING_CONFLICT"
	CodePastDate        = "PAST_DATE"
	CodeValidation      = "VALIDATION_ERROR"
	CodeInvalidInput    = "INVALID_INPUT"
	CodeConflict        = "CONFLICT"
	CodeInternal        = "INTERNAL_ERROR"
)

// AppError is the closed set of failures the service surfaces to clients.
// Every variant is produced by one of the constructors below; nothing
// attaches fields after construction.
type AppError struct {
	Code       string            `json:"code"`
	Message    string            `json:"message"`
	HTTPStatus int               `json:"-"`
	Fields     map[string]string `json:"errors,omitempty"`
	Err        error             `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func (e *AppError) StatusCode() int {
	return e.HTTPStatus
}

// ErrorResponse is the wire shape written to clients.
type ErrorResponse struct {
	Message string            `json:"message"`
	Fields  map[string]string `json:"errors,omitempty"`
}

func Unauthorized() *AppError {
	return &AppError{
		Code:       CodeUnauthorized,
		Message:    "Unauthorized",
		HTTPStatus: http.StatusUnauthorized,
	}
}

// InvalidCredentials rejects a login attempt without revealing whether the
// email exists.
func InvalidCredentials() *AppError {
	return &AppError{
		Code:       CodeUnauthorized,
		Message:    "Invalid email or password",
		HTTPStatus: http.StatusUnauthorized,
	}
}

func Forbidden() *AppError {
	return &AppError{
		Code:       CodeForbidden,
		Message:    "Forbidden",
		HTTPStatus: http.StatusForbidden,
	}
}

// NotFound reports an absent resource by kind, e.g. "Listing couldn't be found".
func NotFound(kind string) *AppError {
	return &AppError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s couldn't be found", kind),
		HTTPStatus: http.StatusNotFound,
	}
}

// BookingConflict carries the offending boundary field(s) of a rejected
// date range. Fields is keyed by "startDate" / "endDate".
func BookingConflict(fields map[string]string) *AppError {
	return &AppError{
		Code:       CodeBookingConflict,
		Message:    "Sorry, this listing is already booked for the specified dates",
		HTTPStatus: http.StatusForbidden,
		Fields:     fields,
	}
}

// PastDate rejects a booking whose start is not in the future. Unlike
// BookingConflict it carries no field map.
func PastDate() *AppError {
	return &AppError{
		Code:       CodePastDate,
		Message:    "Bookings may not be made for a past date",
		HTTPStatus: http.StatusForbidden,
	}
}

func Validation(message string, fields map[string]string) *AppError {
	return &AppError{
		Code:       CodeValidation,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
		Fields:     fields,
	}
}

func InvalidInput(message string) *AppError {
	return &AppError{
		Code:       CodeInvalidInput,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

func Conflict(message string) *AppError {
	return &AppError{
		Code:       CodeConflict,
		Message:    message,
		HTTPStatus: http.StatusConflict,
	}
}

func Internal(message string, err error) *AppError {
	return &AppError{
		Code:       CodeInternal,
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// AsAppError converts any error into an AppError, wrapping unknown errors
// as internal so the boundary never leaks raw error strings.
func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal("Internal server error", err)
}
