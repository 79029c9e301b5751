package api

import (
	"net/http"
	"time"

	"engdata-admin/internal/common/config"
	"engdata-admin/internal/common/errors"
	"engdata-admin/internal/common/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	RequestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
)

// RequestID propagates the caller's X-Request-ID or assigns a new one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// GetRequestID returns the ID assigned by RequestID, or "".
func GetRequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

func AccessLog(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := map[string]interface{}{
			"method":     c.Request.Method,
			"path":       c.FullPath(),
			"status":     c.Writer.Status(),
			"durationMs": time.Since(start).Milliseconds(),
			"requestId":  GetRequestID(c),
		}
		switch {
		case c.Writer.Status() >= http.StatusInternalServerError:
			log.Error("HTTP request failed", fields)
		case c.Writer.Status() >= http.StatusBadRequest:
			log.Warn("HTTP request rejected", fields)
		default:
			log.Info("HTTP request", fields)
		}
	}
}

// MaxBodySize caps the request body at limit bytes.
func MaxBodySize(limit int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limit > 0 && c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		}
		c.Next()
	}
}

// RequireEnabled answers 503 when the operation is switched off in config.
func RequireEnabled(cfg *config.Config, operation string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !config.IsWorkflowEnabled(cfg, operation) {
			Reject(c, operation, errors.NewOperationDisabledError(operation))
			return
		}
		c.Next()
	}
}
