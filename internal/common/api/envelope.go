// Package api holds the gin glue shared by every operation handler: the
// response envelope, request decoding and middleware.
package api

import (
	"net/http"

	"engdata-admin/internal/common/errors"
	"engdata-admin/internal/saga"

	"github.com/gin-gonic/gin"
)

// Envelope is the body of every operation response, success or failure.
type Envelope struct {
	Success bool              `json:"success"`
	Status  int               `json:"status"`
	Code    errors.ErrorCode  `json:"code,omitempty"`
	Message string            `json:"message"`
	Data    interface{}       `json:"data,omitempty"`
	Steps   []saga.StepRecord `json:"steps,omitempty"`
}

// FromComposite converts a saga result into the caller-facing envelope.
func FromComposite(c *saga.Composite) Envelope {
	if c == nil {
		return Envelope{
			Success: false,
			Status:  http.StatusInternalServerError,
			Code:    errors.ErrCodeInternalError,
			Message: "Operation produced no result",
		}
	}
	status := c.StatusCode
	if status == 0 {
		status = http.StatusInternalServerError
	}
	env := Envelope{
		Success: c.Success,
		Status:  status,
		Code:    c.Code,
		Message: c.Message,
		Steps:   c.Steps,
	}
	if len(c.Data) > 0 {
		env.Data = c.Data
	}
	return env
}

// Respond writes the composite as an envelope using its status code.
func Respond(c *gin.Context, composite *saga.Composite) {
	env := FromComposite(composite)
	c.JSON(env.Status, env)
}

// Reject writes the envelope for a request refused before any step ran.
func Reject(c *gin.Context, operation string, err *errors.StandardError) {
	env := FromComposite(saga.Rejected(operation, err))
	c.AbortWithStatusJSON(env.Status, env)
}
