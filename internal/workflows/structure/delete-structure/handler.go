package deletestructure

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

const Operation = "delete-structure"

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
	input.StructureID = c.Param("id")

	api.Respond(c, h.Execute(c.Request.Context(), &input))
}

func (h *Handler) Execute(ctx context.Context, input *Input) *saga.Composite {
	if input == nil || strings.TrimSpace(input.StructureID) == "" {
		return saga.Rejected(Operation, errors.NewRequiredFieldError(models.StructureIDKey))
	}
	id := strings.TrimSpace(input.StructureID)

	deleteFile := saga.DeleteAt(h.caller, func(fileID string) string {
		return models.ResourcePath(models.FilesPath, fileID)
	})

	return h.orchestrator.RunCascade(ctx, saga.Cascade{
		Operation:      Operation,
		SuccessMessage: "Structure deleted successfully",
		Primary: saga.Step{
			Name: "structure delete",
			Done: "structure deleted",
			Invoke: saga.Call(h.caller, "", func(*saga.Context) downstream.Request {
				return downstream.Request{
					Method: http.MethodDelete,
					Path:   models.ResourcePath(models.StructuresPath, id),
				}
			}),
		},
		Dependents: []saga.Dependent{
			{Name: string(models.FileModel), ID: input.ModelID, Delete: deleteFile},
			{Name: string(models.FileThumbnail), ID: input.ThumbnailID, Delete: deleteFile},
			{Name: string(models.FileSymbol), ID: input.SymbolID, Delete: deleteFile},
		},
	})
}
