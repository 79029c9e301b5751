package saga

import (
	"context"
	"net/http"
	"strings"

	"engdata-admin/internal/common/downstream"
)

// DeleteFunc deletes the dependent artifact identified by id.
type DeleteFunc func(ctx context.Context, id string) StepResult

// Dependent is an artifact the caller asked to remove along with the primary
// resource. The system never discovers dependents on its own.
type Dependent struct {
	Name   string
	ID     string
	Delete DeleteFunc
}

// Cascade deletes a primary resource, then makes one best-effort delete call
// per non-blank dependent ID. Success is decided by the primary delete alone.
type Cascade struct {
	Operation      string
	SuccessMessage string
	Primary        Step
	Dependents     []Dependent
}

// Definition expands the cascade into an ordinary saga: the primary step is
// required, each dependent with a non-blank ID becomes an optional step.
func (c Cascade) Definition() Definition {
	primary := c.Primary
	primary.Required = true

	steps := []Step{primary}
	for _, dep := range c.Dependents {
		id := strings.TrimSpace(dep.ID)
		if id == "" {
			continue
		}
		del := dep.Delete
		steps = append(steps, Step{
			Name:     dep.Name + " delete",
			Done:     dep.Name + " deleted",
			Required: false,
			Invoke: func(ctx context.Context, _ *Context) StepResult {
				res := del(ctx, id)
				if res.Success && res.ResourceID == "" {
					res.ResourceID = id
				}
				return res
			},
		})
	}

	return Definition{
		Operation:      c.Operation,
		SuccessMessage: c.SuccessMessage,
		Steps:          steps,
	}
}

// RunCascade executes a cascade deletion.
func (o *Orchestrator) RunCascade(ctx context.Context, c Cascade) *Composite {
	return o.Run(ctx, c.Definition())
}

// DeleteAt returns a DeleteFunc that issues DELETE against path(id).
func DeleteAt(caller downstream.Caller, path func(id string) string) DeleteFunc {
	return func(ctx context.Context, id string) StepResult {
		return FromResult(caller.Call(ctx, downstream.Request{
			Method: http.MethodDelete,
			Path:   path(id),
		}), "")
	}
}
