package errors

import (
	"fmt"
	"net/http"
	"strings"
	"time"
)

type ErrorCode string

const (
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"

	ErrCodeDownstreamError ErrorCode = "DOWNSTREAM_ERROR"
	ErrCodeTransportError  ErrorCode = "TRANSPORT_ERROR"
	ErrCodePartialFailure  ErrorCode = "PARTIAL_FAILURE"

	ErrCodeOperationDisabled ErrorCode = "OPERATION_DISABLED"
	ErrCodeAuthTokenFailed   ErrorCode = "AUTH_TOKEN_FAILED"
	ErrCodeInternalError     ErrorCode = "INTERNAL_ERROR"
)

type StandardError struct {
	Code       ErrorCode              `json:"code"`
	Message    string                 `json:"message"`
	Details    string                 `json:"details,omitempty"`
	StatusCode int                    `json:"statusCode,omitempty"`
	Retryable  bool                   `json:"retryable"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
	Timestamp  time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

func NewValidationError(message, details string) *StandardError {
	return &StandardError{
		Code:       ErrCodeValidationFailed,
		Message:    message,
		Details:    details,
		StatusCode: http.StatusBadRequest,
		Retryable:  false,
		Timestamp:  time.Now().UTC(),
	}
}

// NewRequiredFieldError reports a blank or missing field before any downstream call.
func NewRequiredFieldError(field string) *StandardError {
	return NewValidationError(fmt.Sprintf("%s is required", field), fmt.Sprintf("field: %s", field))
}

func NewDownstreamError(step string, statusCode int, message string) *StandardError {
	return &StandardError{
		Code:       ErrCodeDownstreamError,
		Message:    message,
		Details:    fmt.Sprintf("step: %s, status: %d", step, statusCode),
		StatusCode: statusCode,
		Retryable:  statusCode >= http.StatusInternalServerError,
		Timestamp:  time.Now().UTC(),
	}
}

func NewTransportError(step string, err error) *StandardError {
	details := fmt.Sprintf("step: %s", step)
	if err != nil {
		details = fmt.Sprintf("step: %s, error: %s", step, err.Error())
	}
	return &StandardError{
		Code:       ErrCodeTransportError,
		Message:    "Failed to reach the engineering data service",
		Details:    details,
		StatusCode: http.StatusBadGateway,
		Retryable:  true,
		Timestamp:  time.Now().UTC(),
	}
}

func NewOperationDisabledError(operation string) *StandardError {
	return &StandardError{
		Code:       ErrCodeOperationDisabled,
		Message:    fmt.Sprintf("Operation '%s' is disabled", operation),
		StatusCode: http.StatusServiceUnavailable,
		Retryable:  false,
		Timestamp:  time.Now().UTC(),
	}
}

func NewAuthTokenError(err error) *StandardError {
	return &StandardError{
		Code:       ErrCodeAuthTokenFailed,
		Message:    "Failed to obtain an access token for the engineering data service",
		Details:    err.Error(),
		StatusCode: http.StatusBadGateway,
		Retryable:  true,
		Timestamp:  time.Now().UTC(),
	}
}

func NewInternalError(operation string, cause interface{}) *StandardError {
	return &StandardError{
		Code:       ErrCodeInternalError,
		Message:    fmt.Sprintf("Unexpected error during %s", operation),
		Details:    fmt.Sprintf("%v", cause),
		StatusCode: http.StatusInternalServerError,
		Retryable:  false,
		Timestamp:  time.Now().UTC(),
	}
}

// HTTPStatus maps an error code and an optional downstream status to the
// status returned to the caller. Downstream 4xx/5xx statuses are mirrored.
func HTTPStatus(code ErrorCode, downstreamStatus int) int {
	if downstreamStatus >= http.StatusBadRequest && downstreamStatus <= 599 {
		return downstreamStatus
	}
	switch code {
	case ErrCodeValidationFailed:
		return http.StatusBadRequest
	case ErrCodeTransportError, ErrCodeAuthTokenFailed:
		return http.StatusBadGateway
	case ErrCodeOperationDisabled:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func IsRetryableErrorCode(code ErrorCode) bool {
	switch code {
	case ErrCodeTransportError, ErrCodeAuthTokenFailed:
		return true
	default:
		return false
	}
}

func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "VALIDATION"):
		return "VALIDATION"
	case strings.Contains(codeStr, "DOWNSTREAM"), strings.Contains(codeStr, "PARTIAL"):
		return "DOWNSTREAM"
	case strings.Contains(codeStr, "TRANSPORT"), strings.Contains(codeStr, "AUTH"):
		return "TRANSPORT"
	default:
		return "OTHER"
	}
}
