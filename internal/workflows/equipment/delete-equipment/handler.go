package deleteequipment

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

const Operation = "delete-equipment"

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
	input.Category = models.EquipmentCategory(c.Param("category"))
	input.EquipmentID = c.Param("id")

	api.Respond(c, h.Execute(c.Request.Context(), &input))
}

// Execute deletes the equipment record, then each attached artifact the caller
// named. Artifact deletes are best effort.
func (h *Handler) Execute(ctx context.Context, input *Input) *saga.Composite {
	if input == nil || strings.TrimSpace(input.EquipmentID) == "" {
		return saga.Rejected(Operation, errors.NewRequiredFieldError(models.EquipmentIDKey))
	}
	category, err := models.ParseEquipmentCategory(string(input.Category))
	if err != nil {
		return saga.Rejected(Operation, errors.NewValidationError(err.Error(), "field: category"))
	}
	id := strings.TrimSpace(input.EquipmentID)

	deleteFile := saga.DeleteAt(h.caller, func(fileID string) string {
		return models.ResourcePath(models.FilesPath, fileID)
	})
	deleteFormula := saga.DeleteAt(h.caller, func(formulaID string) string {
		return models.ResourcePath(models.FormulasPath, formulaID)
	})

	return h.orchestrator.RunCascade(ctx, saga.Cascade{
		Operation:      Operation,
		SuccessMessage: "Equipment deleted successfully",
		Primary: saga.Step{
			Name: "equipment delete",
			Done: "equipment deleted",
			Invoke: saga.Call(h.caller, "", func(*saga.Context) downstream.Request {
				return downstream.Request{
					Method: http.MethodDelete,
					Path:   models.EquipmentItemPath(category, id),
				}
			}),
		},
		Dependents: []saga.Dependent{
			{Name: string(models.FileModel), ID: input.ModelID, Delete: deleteFile},
			{Name: string(models.FileThumbnail), ID: input.ThumbnailID, Delete: deleteFile},
			{Name: string(models.FileSymbol), ID: input.SymbolID, Delete: deleteFile},
			{Name: string(models.FileFormula), ID: input.FormulaID, Delete: deleteFormula},
			{Name: string(models.FileRVT), ID: input.RVTID, Delete: deleteFile},
			{Name: string(models.FileRFA), ID: input.RFAID, Delete: deleteFile},
		},
	})
}
