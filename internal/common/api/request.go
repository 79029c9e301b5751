package api

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"engdata-admin/internal/common/downstream"
	"engdata-admin/internal/common/errors"
	"engdata-admin/internal/common/validation"

	"github.com/gin-gonic/gin"
)

const multipartMemory = 32 << 20

// BindJSON validates the request body against schema and decodes it into dst.
// An empty body is validated as "{}".
func BindJSON(c *gin.Context, dst interface{}, schema validation.JSONSchema) *errors.StandardError {
	var raw []byte
	if c.Request.Body != nil {
		var err error
		raw, err = io.ReadAll(c.Request.Body)
		if err != nil {
			return errors.NewValidationError("Failed to read request body", err.Error())
		}
	}

	result := validation.ValidateJSON(raw, schema)
	if !result.Valid {
		first := result.Errors[0]
		if first.Code == "REQUIRED" {
			stdErr := errors.NewRequiredFieldError(first.Field)
			stdErr.Details = result.Summary()
			return stdErr
		}
		return errors.NewValidationError(fmt.Sprintf("%s: %s", first.Field, first.Message), result.Summary())
	}

	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return errors.NewValidationError("Malformed JSON body", err.Error())
	}
	return nil
}

// FormFile reads an uploaded file. It returns nil without error when the field
// is absent or the request is not multipart.
func FormFile(c *gin.Context, field string) (*downstream.FilePart, error) {
	header, err := c.FormFile(field)
	if err != nil {
		if stderrors.Is(err, http.ErrMissingFile) || stderrors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", field, err)
	}

	f, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", field, err)
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", field, err)
	}

	return &downstream.FilePart{
		Field:       "file",
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Content:     content,
	}, nil
}

// OptionalForm returns a pointer to a form value, or nil when the caller did
// not send the field at all.
func OptionalForm(c *gin.Context, key string) *string {
	value, ok := c.GetPostForm(key)
	if !ok {
		return nil
	}
	return &value
}

// TrimmedForm returns the trimmed form value for key.
func TrimmedForm(c *gin.Context, key string) string {
	return strings.TrimSpace(c.PostForm(key))
}

// ExtraForm returns the first value of every submitted text field not listed
// in known, or nil when there is none.
func ExtraForm(c *gin.Context, known map[string]bool) map[string]string {
	if c.Request.PostForm == nil {
		_ = c.Request.ParseMultipartForm(multipartMemory)
	}
	var extra map[string]string
	for key, values := range c.Request.PostForm {
		if known[key] || len(values) == 0 {
			continue
		}
		if extra == nil {
			extra = make(map[string]string)
		}
		extra[key] = values[0]
	}
	return extra
}
