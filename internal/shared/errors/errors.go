package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Common error types
var (
	ErrNotFound        = errors.New("resource not found")
	ErrBadRequest      = errors.New("bad request")
	ErrValidation      = errors.New("validation error")
	ErrSlotNotFound    = errors.New("slot not found")
	ErrSlotUnavailable = errors.New("slot unavailable")
	ErrInfrastructure  = errors.New("infrastructure error")
	ErrInternal        = errors.New("internal error")
)

// AppError represents an application error with context
type AppError struct {
	Err        error             `json:"-"`
	Message    string            `json:"message"`
	Code       string            `json:"code"`
	HTTPStatus int               `json:"-"`
	Details    map[string]string `json:"details,omitempty"`
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

// NotFound creates a not found error
func NotFound(resource string, id string) *AppError {
	return &AppError{
		Err:        ErrNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		Code:       "NOT_FOUND",
		HTTPStatus: http.StatusNotFound,
		Details:    map[string]string{"resource": resource, "id": id},
	}
}

// BadRequest creates a bad request error
func BadRequest(message string) *AppError {
	return &AppError{
		Err:        ErrBadRequest,
		Message:    message,
		Code:       "BAD_REQUEST",
		HTTPStatus: http.StatusBadRequest,
	}
}

// Validation creates a validation error with field details
func Validation(message string, details map[string]string) *AppError {
	return &AppError{
		Err:        ErrValidation,
		Message:    message,
		Code:       "VALIDATION_ERROR",
		HTTPStatus: http.StatusBadRequest,
		Details:    details,
	}
}

// SlotNotFound reports a reservation against a slot id that does not exist.
// Terminal for the request; the caller must pick a different slot.
func SlotNotFound(slotID string) *AppError {
	return &AppError{
		Err:        ErrSlotNotFound,
		Message:    "time slot not found",
		Code:       "SLOT_NOT_FOUND",
		HTTPStatus: http.StatusNotFound,
		Details:    map[string]string{"slot_id": slotID},
	}
}

// SlotUnavailable reports a reservation against a slot that is already
// booked. Terminal for the request; the caller should re-query available
// slots and pick another one.
func SlotUnavailable(slotID string) *AppError {
	return &AppError{
		Err:        ErrSlotUnavailable,
		Message:    "time slot is no longer available",
		Code:       "SLOT_UNAVAILABLE",
		HTTPStatus: http.StatusConflict,
		Details:    map[string]string{"slot_id": slotID},
	}
}

// Infrastructure creates a store/transport failure error. The whole
// operation aborted without partial effects, so the caller may retry.
func Infrastructure(err error, message string) *AppError {
	return &AppError{
		Err:        fmt.Errorf("%w: %w", ErrInfrastructure, err),
		Message:    message,
		Code:       "INFRASTRUCTURE_ERROR",
		HTTPStatus: http.StatusServiceUnavailable,
	}
}

// Internal creates an internal error
func Internal(err error) *AppError {
	return &AppError{
		Err:        err,
		Message:    "internal server error",
		Code:       "INTERNAL_ERROR",
		HTTPStatus: http.StatusInternalServerError,
	}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) *AppError {
	if appErr, ok := err.(*AppError); ok {
		appErr.Message = fmt.Sprintf("%s: %s", message, appErr.Message)
		return appErr
	}
	return &AppError{
		Err:        err,
		Message:    message,
		Code:       "INTERNAL_ERROR",
		HTTPStatus: http.StatusInternalServerError,
	}
}
