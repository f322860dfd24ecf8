package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/balkashynov/examtt/internal/db"
)

// Error is an API error with its HTTP status
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	Err     error  `json:"-"`
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewError creates an Error
func NewError(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

// WrapError attaches an API code and status to err
func WrapError(err error, code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message, Err: err}
}

var (
	ErrNotFound   = NewError("NOT_FOUND", http.StatusNotFound, "resource not found")
	ErrValidation = NewError("VALIDATION_ERROR", http.StatusBadRequest, "validation failed")
	ErrInternal   = NewError("INTERNAL_ERROR", http.StatusInternalServerError, "internal server error")
)

// FromError converts any error into an *Error.
// Missing sessions become 404; anything unrecognised becomes 500.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	if errors.Is(err, db.ErrSessionNotFound) {
		return WrapError(err, ErrNotFound.Code, ErrNotFound.Status, err.Error())
	}
	return WrapError(err, ErrInternal.Code, ErrInternal.Status, ErrInternal.Message)
}

// withMessage copies err with a different message
func withMessage(err *Error, message string) *Error {
	clone := *err
	clone.Message = message
	return &clone
}
