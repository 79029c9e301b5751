package saga

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"time"

	"engdata-admin/internal/common/downstream"
	"engdata-admin/internal/common/errors"
	"engdata-admin/internal/models"
)

// StepResult is the normalized outcome of one step.
type StepResult struct {
	Success    bool                   `json:"success"`
	ResourceID string                 `json:"resource_id,omitempty"`
	Message    string                 `json:"message,omitempty"`
	StatusCode int                    `json:"status_code,omitempty"`
	Code       errors.ErrorCode       `json:"code,omitempty"`
	Response   map[string]interface{} `json:"-"`
	Err        error                  `json:"-"`
}

// InvokeFunc performs a step. It receives the IDs produced so far.
type InvokeFunc func(ctx context.Context, sc *Context) StepResult

// RequestFunc builds a downstream request from the IDs produced so far.
type RequestFunc func(sc *Context) downstream.Request

// Step describes one unit of a saga.
type Step struct {
	Name string
	// Done is the wording used in composed messages when the step succeeded,
	// e.g. "site-info created". Defaults to "<Name> succeeded".
	Done     string
	Required bool
	// IDKey names the context key that receives the step's ResourceID.
	IDKey  string
	Invoke InvokeFunc
}

func (s Step) doneLabel() string {
	if s.Done != "" {
		return s.Done
	}
	return s.Name + " succeeded"
}

// FromResult converts a downstream result into a StepResult, extracting the
// resource ID under idKey when the call succeeded.
func FromResult(res *downstream.Result, idKey string) StepResult {
	if res == nil {
		return StepResult{Message: downstream.DefaultErrorMessage, Code: errors.ErrCodeInternalError}
	}
	out := StepResult{
		Success:    res.OK,
		Message:    res.Message,
		StatusCode: res.StatusCode,
		Response:   res.Data,
	}
	if res.OK {
		if idKey != "" {
			out.ResourceID = res.ID(idKey)
		}
		return out
	}
	out.Err = res.Err
	var stdErr *errors.StandardError
	switch {
	case stderrors.As(res.Err, &stdErr):
		out.Code = stdErr.Code
	case res.Err != nil:
		out.Code = errors.ErrCodeTransportError
	default:
		out.Code = errors.ErrCodeDownstreamError
	}
	if out.Message == "" {
		out.Message = downstream.DefaultErrorMessage
	}
	return out
}

// Call returns an InvokeFunc that issues the request built by build and maps
// the response, extracting the ID under idKey.
func Call(caller downstream.Caller, idKey string, build RequestFunc) InvokeFunc {
	return func(ctx context.Context, sc *Context) StepResult {
		return FromResult(caller.Call(ctx, build(sc)), idKey)
	}
}

// UploadStep is the optional "<kind> upload" step posting file to path. The
// stored file's ID is read from the response's file_id.
func UploadStep(caller downstream.Caller, kind, path string, file downstream.FilePart) Step {
	return Step{
		Name: kind + " upload",
		Done: kind + " uploaded",
		Invoke: Call(caller, models.FileIDKey, func(*Context) downstream.Request {
			return downstream.Request{
				Method: http.MethodPost,
				Path:   path,
				Form:   downstream.SingleFile(file, nil),
			}
		}),
	}
}

func missingIDResult(step Step, res StepResult) StepResult {
	res.Success = false
	res.StatusCode = http.StatusBadGateway
	res.Code = errors.ErrCodeDownstreamError
	res.Message = fmt.Sprintf("%s response did not include %s", step.Name, step.IDKey)
	return res
}

// stepError describes a failed step as a StandardError for the error handler.
func stepError(name string, res StepResult) *errors.StandardError {
	var stdErr *errors.StandardError
	switch {
	case stderrors.As(res.Err, &stdErr):
		return stdErr
	case res.Code == errors.ErrCodeTransportError:
		return errors.NewTransportError(name, res.Err)
	case res.Code == errors.ErrCodeDownstreamError || res.Code == "":
		return errors.NewDownstreamError(name, res.StatusCode, res.Message)
	default:
		return &errors.StandardError{
			Code:       res.Code,
			Message:    res.Message,
			Details:    fmt.Sprintf("step: %s", name),
			StatusCode: res.StatusCode,
			Retryable:  errors.IsRetryableErrorCode(res.Code),
			Timestamp:  time.Now().UTC(),
		}
	}
}
