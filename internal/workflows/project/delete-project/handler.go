package deleteproject

import (
	"context"
	"net/http"
	"strings"

	"engdata-admin/internal/common/api"
	"engdata-admin/internal/common/downstream"
	"engdata-admin/internal/common/errors"
	"engdata-admin/internal/common/logger"
	"engdata-admin/internal/models"
	"engdata-admin/internal/saga"

	"github.com/gin-gonic/gin"
)

const Operation = "delete-project"

type Handler struct {
	caller       downstream.Caller
	orchestrator *saga.Orchestrator
	logger       logger.Logger
}

func NewHandler(caller downstream.Caller, orchestrator *saga.Orchestrator, log logger.Logger) *Handler {
	return &Handler{
		caller:       caller,
		orchestrator: orchestrator,
		logger:       logger.ForOperation(log, Operation),
	}
}

func (h *Handler) Handle(c *gin.Context) {
	var input Input
	if stdErr := api.BindJSON(c, &input, GetInputSchema()); stdErr != nil {
		api.Reject(c, Operation, stdErr)
		return
	}
	input.ProjectID = c.Param("id")

	api.Respond(c, h.Execute(c.Request.Context(), &input))
}

// Execute deletes the project, then the site-info and client it was created with.
func (h *Handler) Execute(ctx context.Context, input *Input) *saga.Composite {
	if input == nil || strings.TrimSpace(input.ProjectID) == "" {
		return saga.Rejected(Operation, errors.NewRequiredFieldError(models.ProjectIDKey))
	}

	projectID := strings.TrimSpace(input.ProjectID)
	h.logger.Debug("Deleting project", map[string]interface{}{"projectId": projectID})

	return h.orchestrator.RunCascade(ctx, saga.Cascade{
		Operation:      Operation,
		SuccessMessage: "Project deleted successfully",
		Primary: saga.Step{
			Name: "project delete",
			Done: "project deleted",
			Invoke: saga.Call(h.caller, "", func(*saga.Context) downstream.Request {
				return downstream.Request{
					Method: http.MethodDelete,
					Path:   models.ResourcePath(models.ProjectsPath, projectID),
				}
			}),
		},
		Dependents: []saga.Dependent{
			{Name: "site-info", ID: input.SiteID, Delete: saga.DeleteAt(h.caller, h.path(models.SiteInfoPath))},
			{Name: "client", ID: input.ClientID, Delete: saga.DeleteAt(h.caller, h.path(models.ClientsPath))},
		},
	})
}

func (h *Handler) path(collection string) func(string) string {
	return func(id string) string {
		return models.ResourcePath(collection, id)
	}
}
