// Package apperr defines the closed set of business errors the API can
// return. Services build these, the HTTP layer translates them into the
// {success, error, message} envelope.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	CodeEmptyCart         = "EMPTY_CART"
	CodeOutOfStock        = "OUT_OF_STOCK"
	CodeNoBankAccount     = "NO_BANK_ACCOUNT"
	CodePayoutExists      = "PAYOUT_EXISTS"
	CodeInvalidStatus     = "INVALID_STATUS"
	CodeInvalidTransition = "INVALID_TRANSITION"
	CodeInvalidDeduction  = "INVALID_DEDUCTION"
	CodeCannotCancel      = "CANNOT_CANCEL"
	CodeNotPurchased      = "NOT_PURCHASED"
	CodeNotFound          = "NOT_FOUND"
	CodeForbidden         = "FORBIDDEN"
	CodeValidation        = "VALIDATION_ERROR"
	CodeUnauthorized      = "UNAUTHORIZED"
	CodeConflict          = "CONFLICT"
	CodeServer            = "SERVER_ERROR"
)

type Error struct {
	Status  int
	Code    string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func New(status int, code, message string) *Error {
	return &Error{Status: status, Code: code, Message: message}
}

func Validation(code, message string) *Error {
	return New(http.StatusBadRequest, code, message)
}

func NotFound(message string) *Error {
	return New(http.StatusNotFound, CodeNotFound, message)
}

func Forbidden(message string) *Error {
	return New(http.StatusForbidden, CodeForbidden, message)
}

func Unauthorized(message string) *Error {
	return New(http.StatusUnauthorized, CodeUnauthorized, message)
}

func Conflict(code, message string) *Error {
	return New(http.StatusConflict, code, message)
}

// From extracts an *Error from err, or wraps it as a 500 SERVER_ERROR.
func From(err error) *Error {
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	return New(http.StatusInternalServerError, CodeServer, "Internal server error")
}
