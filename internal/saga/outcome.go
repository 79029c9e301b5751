package saga

import (
	"fmt"
	"net/http"
	"strings"

	"engdata-admin/internal/common/downstream"
	"engdata-admin/internal/common/errors"
)

// StepRecord pairs a step name with its result, in execution order.
type StepRecord struct {
	Name     string     `json:"name"`
	Required bool       `json:"required"`
	Result   StepResult `json:"result"`

	done string
}

// Composite is the single envelope returned for an entire saga.
type Composite struct {
	Operation  string                 `json:"operation"`
	Success    bool                   `json:"success"`
	StatusCode int                    `json:"status"`
	Code       errors.ErrorCode       `json:"code,omitempty"`
	Message    string                 `json:"message"`
	Steps      []StepRecord           `json:"steps,omitempty"`
	Data       map[string]interface{} `json:"data,omitempty"`
}

// StepOutcome is the caller-facing summary of one optional step.
type StepOutcome struct {
	Success    bool   `json:"success"`
	Message    string `json:"message,omitempty"`
	ResourceID string `json:"file_id,omitempty"`
}

// Step returns the record for the named step, if it ran.
func (c *Composite) Step(name string) (StepRecord, bool) {
	for _, rec := range c.Steps {
		if rec.Name == name {
			return rec, true
		}
	}
	return StepRecord{}, false
}

// Failures returns the records of every step that did not succeed.
func (c *Composite) Failures() []StepRecord {
	var out []StepRecord
	for _, rec := range c.Steps {
		if !rec.Result.Success {
			out = append(out, rec)
		}
	}
	return out
}

// Outcomes maps caller-facing keys (e.g. file kinds) to the outcome of the
// step named by each value. Steps that never ran are omitted.
func (c *Composite) Outcomes(stepNames map[string]string) map[string]StepOutcome {
	out := make(map[string]StepOutcome)
	for key, name := range stepNames {
		rec, ok := c.Step(name)
		if !ok {
			continue
		}
		out[key] = StepOutcome{
			Success:    rec.Result.Success,
			Message:    rec.Result.Message,
			ResourceID: rec.Result.ResourceID,
		}
	}
	return out
}

// Rejected builds the composite for a request refused before any step ran.
func Rejected(operation string, err *errors.StandardError) *Composite {
	return &Composite{
		Operation:  operation,
		Success:    false,
		StatusCode: errors.HTTPStatus(err.Code, err.StatusCode),
		Code:       err.Code,
		Message:    err.Message,
	}
}

// aggregateFailure surfaces only the terminal required failure; earlier
// successes are neither undone nor reported as failures.
func aggregateFailure(def Definition, records []StepRecord, failed StepRecord, sc *Context) *Composite {
	msg := failed.Result.Message
	if msg == "" {
		msg = downstream.DefaultErrorMessage
	}
	code := failed.Result.Code
	if code == "" {
		code = errors.ErrCodeDownstreamError
	}
	return &Composite{
		Operation:  def.Operation,
		Success:    false,
		StatusCode: errors.HTTPStatus(code, failed.Result.StatusCode),
		Code:       code,
		Message:    msg,
		Steps:      records,
		Data:       idData(sc),
	}
}

func aggregateSuccess(def Definition, records []StepRecord, sc *Context) *Composite {
	composite := &Composite{
		Operation:  def.Operation,
		Success:    true,
		StatusCode: http.StatusOK,
		Steps:      records,
		Data:       idData(sc),
	}

	var done, failed []string
	for _, rec := range records {
		if rec.Result.Success {
			done = append(done, rec.done)
			continue
		}
		reason := rec.Result.Message
		if reason == "" {
			reason = downstream.DefaultErrorMessage
		}
		failed = append(failed, fmt.Sprintf("%s failed: %s", rec.Name, reason))
	}

	if len(failed) == 0 {
		composite.Message = def.successMessage()
		return composite
	}

	composite.Code = errors.ErrCodePartialFailure
	if len(done) == 0 {
		composite.Message = strings.Join(failed, "; ")
	} else {
		composite.Message = strings.Join(done, ", ") + " / " + strings.Join(failed, "; ")
	}
	return composite
}

func idData(sc *Context) map[string]interface{} {
	data := make(map[string]interface{}, sc.Len())
	for k, v := range sc.IDs() {
		data[k] = v
	}
	return data
}
