package errors

import (
	stderrors "errors"
	"time"
)

type ErrorHandler struct {
	logger Logger
}

type Logger interface {
	Error(msg string, fields map[string]interface{})
}

func NewErrorHandler(logger Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// Handle normalizes err, logs it and returns the caller-facing status and error.
func (h *ErrorHandler) Handle(operation string, err error) (int, *StandardError) {
	stdErr := Normalize(err)
	status := HTTPStatus(stdErr.Code, stdErr.StatusCode)

	if h.logger != nil {
		h.logger.Error("Operation failed", map[string]interface{}{
			"operation":     operation,
			"errorCode":     string(stdErr.Code),
			"message":       stdErr.Message,
			"details":       stdErr.Details,
			"status":        status,
			"retryable":     stdErr.Retryable,
			"errorCategory": GetErrorCategory(stdErr.Code),
		})
	}
	return status, stdErr
}

// Normalize converts any error into a StandardError.
func Normalize(err error) *StandardError {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr
	}
	details := ""
	if err != nil {
		details = err.Error()
	}
	return &StandardError{
		Code:      ErrCodeInternalError,
		Message:   "Unexpected error",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}
