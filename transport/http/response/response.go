package response

import (
	"clinic/shared/constant"
	"clinic/shared/failure"
	"clinic/shared/logger"
	"encoding/json"
	"errors"
	"net/http"
)

// Data is the envelope of a successful response carrying a payload.
type Data[T any] struct {
	Success bool `json:"success"`
	Data    *T   `json:"data,omitempty"`
}

type Error struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type Message struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// WithMessage sends a response with a simple text message
func WithMessage(writer http.ResponseWriter, code int, message string) {
	response(writer, code, Message{Success: code < http.StatusBadRequest, Message: message})
}

// WithReport sends a 200 whose success flag is decided by the caller, for
// operations that report an outcome instead of failing.
func WithReport(writer http.ResponseWriter, success bool, message string) {
	response(writer, http.StatusOK, Message{Success: success, Message: message})
}

// WithJSON sends a response containing a JSON object
func WithJSON(writer http.ResponseWriter, code int, jsonPayload any) {
	response(writer, code, Data[any]{Success: true, Data: &jsonPayload})
}

// WithError sends a response with an error message. Server errors keep their
// details in the log.
func WithError(writer http.ResponseWriter, err error) {
	code := failure.GetCode(err)
	message := constant.ResponseErrorInternal

	var fail *failure.Failure
	if !failure.IsServerError(err) && errors.As(err, &fail) {
		message = fail.Message
	} else {
		logger.ErrorWithStack(err)
	}

	response(writer, code, Error{Message: message})
}

// WithRequestLimitExceeded sends a default response for when the request limit is exceeded
func WithRequestLimitExceeded(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusTooManyRequests, constant.ResponseErrorRequestLimitExceeded)
}

// WithPreparingShutdown sends a default response for when the server is preparing to shut down
func WithPreparingShutdown(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorPrepareShutdown)
}

// WithUnhealthy sends a default response for when the server is unhealthy
func WithUnhealthy(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorUnhealthy)
}

func response(writer http.ResponseWriter, code int, payload any) {
	response, err := json.Marshal(payload)
	if err != nil {
		logger.ErrorWithStack(err)

		return
	}

	writer.Header().Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	writer.WriteHeader(code)
	_, err = writer.Write(response)

	if err != nil {
		logger.ErrorWithStack(err)
	}
}
