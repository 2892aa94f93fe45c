// Package failure carries the HTTP status a business error should be
// answered with. Errors that are not a *Failure are treated as server errors.
package failure

import (
	"errors"
	"net/http"
)

type Failure struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ForbiddenError is returned when the operator's role does not cover the route.
var ForbiddenError = &Failure{Code: http.StatusForbidden, Message: "You don't have the required permissions"}

func (e *Failure) Error() string {
	return e.Message
}

// New builds a Failure answered with code.
func New(code int, message string) error {
	return &Failure{Code: code, Message: message}
}

// BadRequest wraps a decoding or validation error. A nil err stays nil.
func BadRequest(err error) error {
	if err == nil {
		return nil
	}

	return New(http.StatusBadRequest, err.Error())
}

func BadRequestFromString(msg string) error {
	return New(http.StatusBadRequest, msg)
}

func Unauthorized(msg string) error {
	return New(http.StatusUnauthorized, msg)
}

func Forbidden(msg string) error {
	return New(http.StatusForbidden, msg)
}

// NotFound takes the full message, e.g. "reservation not found".
func NotFound(message string) error {
	return New(http.StatusNotFound, message)
}

// Conflict is used for serialization failures the caller may retry.
func Conflict(message string) error {
	return New(http.StatusConflict, message)
}

// Unprocessable is a well-formed request rejected by a business rule.
func Unprocessable(message string) error {
	return New(http.StatusUnprocessableEntity, message)
}

// GetCode returns the status of the first Failure in err's chain, or 500.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}

func IsServerError(err error) bool {
	return GetCode(err) >= http.StatusInternalServerError
}
