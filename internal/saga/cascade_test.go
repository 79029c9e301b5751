package saga

import (
	"context"
	"net/http"
	"testing"

	"engdata-admin/internal/common/downstream"
	"engdata-admin/internal/common/downstream/downstreamtest"
	"engdata-admin/internal/common/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type deleteSpy struct {
	ids     []string
	results map[string]StepResult
}

func (d *deleteSpy) fn(ctx context.Context, id string) StepResult {
	d.ids = append(d.ids, id)
	if res, ok := d.results[id]; ok {
		return res
	}
	return StepResult{Success: true, StatusCode: http.StatusNoContent}
}

func primary(result StepResult, calls *int) Step {
	return Step{
		Name: "equipment delete",
		Done: "equipment deleted",
		Invoke: func(context.Context, *Context) StepResult {
			*calls++
			return result
		},
	}
}

func TestCascade_PrimaryFailureSkipsDependents(t *testing.T) {
	var primaryCalls int
	spy := &deleteSpy{}
	c := Cascade{
		Operation: "delete-equipment",
		Primary:   primary(fail(http.StatusNotFound, "Equipment not found"), &primaryCalls),
		Dependents: []Dependent{
			{Name: "model", ID: "M1", Delete: spy.fn},
			{Name: "thumbnail", ID: "T1", Delete: spy.fn},
		},
	}

	result := newTestOrchestrator(t).RunCascade(context.Background(), c)

	assert.False(t, result.Success)
	assert.Equal(t, "Equipment not found", result.Message)
	assert.Equal(t, http.StatusNotFound, result.StatusCode)
	assert.Equal(t, 1, primaryCalls)
	assert.Empty(t, spy.ids)
}

func TestCascade_OneCallPerNonBlankDependent(t *testing.T) {
	var primaryCalls int
	spy := &deleteSpy{}
	c := Cascade{
		Operation:      "delete-equipment",
		SuccessMessage: "Equipment deleted successfully",
		Primary:        primary(StepResult{Success: true, StatusCode: http.StatusOK}, &primaryCalls),
		Dependents: []Dependent{
			{Name: "model", ID: "M1", Delete: spy.fn},
			{Name: "thumbnail", ID: "", Delete: spy.fn},
			{Name: "symbol", ID: "   ", Delete: spy.fn},
			{Name: "formula", ID: "F1", Delete: spy.fn},
		},
	}

	result := newTestOrchestrator(t).RunCascade(context.Background(), c)

	assert.True(t, result.Success)
	assert.Equal(t, "Equipment deleted successfully", result.Message)
	assert.Equal(t, []string{"M1", "F1"}, spy.ids)
	require.Len(t, result.Steps, 3)
	assert.Equal(t, "model delete", result.Steps[1].Name)
	assert.Equal(t, "M1", result.Steps[1].Result.ResourceID)
	assert.Equal(t, "formula delete", result.Steps[2].Name)
}

func TestCascade_DependentFailureIsListed(t *testing.T) {
	var primaryCalls int
	spy := &deleteSpy{results: map[string]StepResult{
		"T1": fail(http.StatusInternalServerError, "storage unavailable"),
	}}
	c := Cascade{
		Operation: "delete-equipment",
		Primary:   primary(StepResult{Success: true, StatusCode: http.StatusOK}, &primaryCalls),
		Dependents: []Dependent{
			{Name: "thumbnail", ID: "T1", Delete: spy.fn},
			{Name: "model", ID: "M1", Delete: spy.fn},
		},
	}

	result := newTestOrchestrator(t).RunCascade(context.Background(), c)

	assert.True(t, result.Success)
	assert.Equal(t, errors.ErrCodePartialFailure, result.Code)
	assert.Equal(t, "equipment deleted, model deleted / thumbnail delete failed: storage unavailable", result.Message)
	assert.Equal(t, []string{"T1", "M1"}, spy.ids)
}

func TestCascade_DefinitionForcesPrimaryRequired(t *testing.T) {
	c := Cascade{
		Operation: "delete-preset",
		Primary:   Step{Name: "preset delete", Required: false},
		Dependents: []Dependent{
			{Name: "thumbnail", ID: "T1"},
			{Name: "model", ID: ""},
		},
	}

	def := c.Definition()

	require.Len(t, def.Steps, 2)
	assert.True(t, def.Steps[0].Required)
	assert.False(t, def.Steps[1].Required)
	assert.Equal(t, "thumbnail delete", def.Steps[1].Name)
}

func TestUploadStep(t *testing.T) {
	fake := downstreamtest.New()
	fake.OnRoute(http.MethodPost, "/structures/ST1/files/symbol", downstreamtest.Created("file_id", "F7"))

	step := UploadStep(fake, "symbol", "/structures/ST1/files/symbol", downstream.FilePart{Filename: "rack.svg", Content: []byte("<svg/>")})
	res := step.Invoke(context.Background(), newContext())

	assert.Equal(t, "symbol upload", step.Name)
	assert.Equal(t, "symbol uploaded", step.Done)
	assert.False(t, step.Required)
	assert.True(t, res.Success)
	assert.Equal(t, "F7", res.ResourceID)

	reqs := fake.Requests()
	require.Len(t, reqs, 1)
	require.NotNil(t, reqs[0].Form)
	require.Len(t, reqs[0].Form.Files, 1)
	assert.Equal(t, "file", reqs[0].Form.Files[0].Field)
	fake.AssertNumberOfCalls(t, "Call", 1)
}
