package saga

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"engdata-admin/internal/common/downstream"
	"engdata-admin/internal/common/errors"
	"engdata-admin/internal/common/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stepSpy produces a step that records invocations and the context it saw.
type stepSpy struct {
	calls int
	seen  map[string]string
}

func (s *stepSpy) step(name, idKey string, required bool, result StepResult) Step {
	return Step{
		Name:     name,
		Done:     name + " done",
		Required: required,
		IDKey:    idKey,
		Invoke: func(_ context.Context, sc *Context) StepResult {
			s.calls++
			s.seen = sc.IDs()
			return result
		},
	}
}

func ok(id string) StepResult {
	return StepResult{Success: true, ResourceID: id, StatusCode: http.StatusOK}
}

func fail(status int, message string) StepResult {
	return StepResult{Success: false, StatusCode: status, Message: message, Code: errors.ErrCodeDownstreamError}
}

type recorderSpy struct {
	operation string
	outcome   string
	steps     int
}

func (r *recorderSpy) RecordRun(_ context.Context, operation, outcome string, steps int, _ time.Duration) {
	r.operation, r.outcome, r.steps = operation, outcome, steps
}

func newTestOrchestrator(t *testing.T) *Orchestrator {
	return NewOrchestrator(logger.NewTestLogger(t))
}

func TestOrchestrator_Run_FullSuccessMergesIDs(t *testing.T) {
	spies := []*stepSpy{{}, {}, {}}
	def := Definition{
		Operation:      "create-thing",
		SuccessMessage: "Thing created successfully",
		Steps: []Step{
			spies[0].step("client create", "client_id", true, ok("C1")),
			spies[1].step("site-info create", "site_id", true, ok("S1")),
			spies[2].step("project create", "project_id", true, ok("P1")),
		},
	}

	rec := &recorderSpy{}
	o := NewOrchestrator(logger.NewTestLogger(t), WithRecorder(rec))
	result := o.Run(context.Background(), def)

	require.NotNil(t, result)
	assert.True(t, result.Success)
	assert.Equal(t, http.StatusOK, result.StatusCode)
	assert.Empty(t, result.Code)
	assert.Equal(t, "Thing created successfully", result.Message)
	assert.Equal(t, map[string]interface{}{
		"client_id":  "C1",
		"site_id":    "S1",
		"project_id": "P1",
	}, result.Data)
	require.Len(t, result.Steps, 3)
	assert.Equal(t, "client create", result.Steps[0].Name)
	assert.Equal(t, "project create", result.Steps[2].Name)

	assert.Equal(t, "create-thing", rec.operation)
	assert.Equal(t, "succeeded", rec.outcome)
	assert.Equal(t, 3, rec.steps)
}

func TestOrchestrator_Run_RequiredFailureStopsLaterSteps(t *testing.T) {
	for k := 0; k < 4; k++ {
		t.Run(fmt.Sprintf("step %d fails", k+1), func(t *testing.T) {
			spies := make([]*stepSpy, 4)
			steps := make([]Step, 4)
			for i := range spies {
				spies[i] = &stepSpy{}
				res := ok(fmt.Sprintf("ID%d", i+1))
				if i == k {
					res = fail(http.StatusConflict, fmt.Sprintf("step %d rejected", i+1))
				}
				steps[i] = spies[i].step(fmt.Sprintf("step %d", i+1), fmt.Sprintf("id_%d", i+1), true, res)
			}

			result := newTestOrchestrator(t).Run(context.Background(), Definition{Operation: "op", Steps: steps})

			assert.False(t, result.Success)
			assert.Equal(t, fmt.Sprintf("step %d rejected", k+1), result.Message)
			assert.Equal(t, http.StatusConflict, result.StatusCode)
			assert.Equal(t, errors.ErrCodeDownstreamError, result.Code)
			assert.Len(t, result.Steps, k+1)

			for i, spy := range spies {
				if i <= k {
					assert.Equal(t, 1, spy.calls, "step %d should run once", i+1)
				} else {
					assert.Equal(t, 0, spy.calls, "step %d must not run", i+1)
				}
			}
		})
	}
}

func TestOrchestrator_Run_ContextHoldsOnlyPriorIDs(t *testing.T) {
	spies := []*stepSpy{{}, {}, {}, {}}
	def := Definition{
		Operation: "op",
		Steps: []Step{
			spies[0].step("a", "a_id", true, ok("A")),
			spies[1].step("b", "b_id", true, ok("B")),
			spies[2].step("c", "c_id", false, fail(http.StatusBadRequest, "bad c")),
			spies[3].step("d", "d_id", true, ok("D")),
		},
	}

	result := newTestOrchestrator(t).Run(context.Background(), def)
	require.True(t, result.Success)

	assert.Empty(t, spies[0].seen)
	assert.Equal(t, map[string]string{"a_id": "A"}, spies[1].seen)
	assert.Equal(t, map[string]string{"a_id": "A", "b_id": "B"}, spies[2].seen)
	// the failed optional step contributes nothing
	assert.Equal(t, map[string]string{"a_id": "A", "b_id": "B"}, spies[3].seen)
	assert.NotContains(t, result.Data, "c_id")
}

func TestOrchestrator_Run_OptionalFailureNeverFlipsSuccess(t *testing.T) {
	for failing := 1; failing <= 3; failing++ {
		t.Run(fmt.Sprintf("optional %d fails", failing), func(t *testing.T) {
			steps := []Step{(&stepSpy{}).step("primary", "primary_id", true, ok("P"))}
			for i := 1; i <= 3; i++ {
				res := ok(fmt.Sprintf("F%d", i))
				if i == failing {
					res = fail(http.StatusInternalServerError, "disk full")
				}
				steps = append(steps, (&stepSpy{}).step(fmt.Sprintf("upload %d", i), "", false, res))
			}

			result := newTestOrchestrator(t).Run(context.Background(), Definition{Operation: "op", Steps: steps})

			assert.True(t, result.Success)
			assert.Equal(t, http.StatusOK, result.StatusCode)
			assert.Equal(t, errors.ErrCodePartialFailure, result.Code)
			assert.Contains(t, result.Message, fmt.Sprintf("upload %d failed: disk full", failing))
			assert.Len(t, result.Steps, 4)
		})
	}
}

func TestOrchestrator_Run_ComposedMessage(t *testing.T) {
	def := Definition{
		Operation: "op",
		Steps: []Step{
			{Name: "site-info create", Done: "site-info created", Required: true, IDKey: "site_id",
				Invoke: func(context.Context, *Context) StepResult { return ok("S1") }},
			{Name: "attachment upload", Required: false,
				Invoke: func(context.Context, *Context) StepResult {
					return fail(http.StatusRequestEntityTooLarge, "file too large")
				}},
			{Name: "thumbnail upload", Required: false,
				Invoke: func(context.Context, *Context) StepResult { return ok("") }},
		},
	}

	result := newTestOrchestrator(t).Run(context.Background(), def)

	assert.True(t, result.Success)
	assert.Equal(t, "site-info created, thumbnail upload succeeded / attachment upload failed: file too large", result.Message)
}

func TestOrchestrator_Run_RequiredStepWithoutIDFails(t *testing.T) {
	second := &stepSpy{}
	def := Definition{
		Operation: "op",
		Steps: []Step{
			(&stepSpy{}).step("preset create", "preset_id", true, ok("")),
			second.step("thumbnail upload", "thumbnail_id", false, ok("T1")),
		},
	}

	result := newTestOrchestrator(t).Run(context.Background(), def)

	assert.False(t, result.Success)
	assert.Equal(t, "preset create response did not include preset_id", result.Message)
	assert.Equal(t, http.StatusBadGateway, result.StatusCode)
	assert.Equal(t, 0, second.calls)
	assert.Empty(t, result.Data)
}

func TestOrchestrator_Run_FailureKeepsEarlierIDsInData(t *testing.T) {
	def := Definition{
		Operation: "op",
		Steps: []Step{
			(&stepSpy{}).step("client create", "client_id", true, ok("C1")),
			(&stepSpy{}).step("project create", "project_id", true, fail(http.StatusUnprocessableEntity, "name taken")),
		},
	}

	result := newTestOrchestrator(t).Run(context.Background(), def)

	assert.False(t, result.Success)
	assert.Equal(t, "name taken", result.Message)
	assert.Equal(t, map[string]interface{}{"client_id": "C1"}, result.Data)
}

func TestOrchestrator_Run_RecoversFromPanic(t *testing.T) {
	after := &stepSpy{}
	def := Definition{
		Operation: "explode",
		Steps: []Step{
			(&stepSpy{}).step("first", "first_id", true, ok("X")),
			{Name: "boom", Required: true, Invoke: func(context.Context, *Context) StepResult {
				var m map[string]int
				m["x"] = 1
				return ok("")
			}},
			after.step("after", "", false, ok("")),
		},
	}

	var result *Composite
	assert.NotPanics(t, func() {
		result = newTestOrchestrator(t).Run(context.Background(), def)
	})

	require.NotNil(t, result)
	assert.False(t, result.Success)
	assert.Equal(t, errors.ErrCodeInternalError, result.Code)
	assert.Equal(t, http.StatusInternalServerError, result.StatusCode)
	assert.Equal(t, "Unexpected error during explode", result.Message)
	assert.Equal(t, 0, after.calls)
}

func TestOrchestrator_Run_TransportFailureMapsToBadGateway(t *testing.T) {
	def := Definition{
		Operation: "op",
		Steps: []Step{{
			Name:     "client create",
			Required: true,
			IDKey:    "client_id",
			Invoke: func(context.Context, *Context) StepResult {
				return FromResult(&downstream.Result{Err: assert.AnError, Message: downstream.TransportErrorMessage}, "client_id")
			},
		}},
	}

	result := newTestOrchestrator(t).Run(context.Background(), def)

	assert.False(t, result.Success)
	assert.Equal(t, errors.ErrCodeTransportError, result.Code)
	assert.Equal(t, http.StatusBadGateway, result.StatusCode)
	assert.Equal(t, downstream.TransportErrorMessage, result.Message)
}

func TestOrchestrator_Run_TokenFailureKeepsAuthCode(t *testing.T) {
	tokenErr := fmt.Errorf("failed to obtain token: %w", errors.NewAuthTokenError(assert.AnError))
	def := Definition{
		Operation: "delete-preset",
		Steps: []Step{{
			Name:     "preset delete",
			Required: true,
			Invoke: func(context.Context, *Context) StepResult {
				return FromResult(&downstream.Result{Err: tokenErr, Message: downstream.TokenErrorMessage}, "")
			},
		}},
	}

	result := newTestOrchestrator(t).Run(context.Background(), def)

	assert.False(t, result.Success)
	assert.Equal(t, errors.ErrCodeAuthTokenFailed, result.Code)
	assert.Equal(t, http.StatusBadGateway, result.StatusCode)
	assert.Equal(t, downstream.TokenErrorMessage, result.Message)
}

func TestStepError(t *testing.T) {
	authErr := errors.NewAuthTokenError(assert.AnError)

	tests := []struct {
		name          string
		res           StepResult
		wantCode      errors.ErrorCode
		wantRetryable bool
		wantStatus    int
	}{
		{"downstream 4xx", fail(http.StatusConflict, "Preset name already exists"), errors.ErrCodeDownstreamError, false, http.StatusConflict},
		{"downstream 5xx", fail(http.StatusServiceUnavailable, "maintenance"), errors.ErrCodeDownstreamError, true, http.StatusServiceUnavailable},
		{"transport", StepResult{Code: errors.ErrCodeTransportError, Err: assert.AnError}, errors.ErrCodeTransportError, true, http.StatusBadGateway},
		{"wrapped auth", StepResult{Code: errors.ErrCodeAuthTokenFailed, Err: fmt.Errorf("wrap: %w", authErr)}, errors.ErrCodeAuthTokenFailed, true, http.StatusBadGateway},
		{"internal", StepResult{Code: errors.ErrCodeInternalError, Message: "boom"}, errors.ErrCodeInternalError, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := stepError("preset create", tt.res)
			assert.Equal(t, tt.wantCode, got.Code)
			assert.Equal(t, tt.wantRetryable, got.Retryable)
			assert.Equal(t, tt.wantStatus, got.StatusCode)
		})
	}
}

func TestFromResult(t *testing.T) {
	tests := []struct {
		name string
		in   *downstream.Result
		want StepResult
	}{
		{
			name: "success extracts keyed id",
			in:   &downstream.Result{OK: true, StatusCode: 201, Data: map[string]interface{}{"preset_id": "P9"}},
			want: StepResult{Success: true, ResourceID: "P9", StatusCode: 201, Response: map[string]interface{}{"preset_id": "P9"}},
		},
		{
			name: "downstream error keeps message",
			in:   &downstream.Result{StatusCode: 404, Message: "Preset not found", Data: map[string]interface{}{"message": "Preset not found"}},
			want: StepResult{StatusCode: 404, Message: "Preset not found", Code: errors.ErrCodeDownstreamError, Response: map[string]interface{}{"message": "Preset not found"}},
		},
		{
			name: "nil result",
			in:   nil,
			want: StepResult{Message: downstream.DefaultErrorMessage, Code: errors.ErrCodeInternalError},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FromResult(tt.in, "preset_id"))
		})
	}
}

func TestComposite_Outcomes(t *testing.T) {
	c := &Composite{Steps: []StepRecord{
		{Name: "equipment update", Required: true, Result: ok("E1")},
		{Name: "model upload", Result: ok("M1")},
		{Name: "thumbnail upload", Result: fail(http.StatusBadRequest, "unsupported format")},
	}}

	out := c.Outcomes(map[string]string{
		"model":     "model upload",
		"thumbnail": "thumbnail upload",
		"symbol":    "symbol upload",
	})

	assert.Equal(t, map[string]StepOutcome{
		"model":     {Success: true, ResourceID: "M1"},
		"thumbnail": {Success: false, Message: "unsupported format"},
	}, out)
	assert.Len(t, c.Failures(), 1)
}

func TestRejected(t *testing.T) {
	c := Rejected("delete-preset", errors.NewRequiredFieldError("preset_id"))

	assert.False(t, c.Success)
	assert.Equal(t, http.StatusBadRequest, c.StatusCode)
	assert.Equal(t, errors.ErrCodeValidationFailed, c.Code)
	assert.Equal(t, "preset_id is required", c.Message)
	assert.Empty(t, c.Steps)
}
