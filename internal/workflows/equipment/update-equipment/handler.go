package updateequipment

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

const Operation = "update-equipment"

const primaryStep = "equipment update"

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
	input := &Input{
		Category:      models.EquipmentCategory(c.Param("category")),
		EquipmentID:   c.Param("id"),
		Name:          api.OptionalForm(c, "name"),
		Description:   api.OptionalForm(c, "description"),
		EquipmentType: api.OptionalForm(c, "equipment_type"),
		Vendor:        api.OptionalForm(c, "vendor"),
		ModelNumber:   api.OptionalForm(c, "model_number"),
		EquipmentCode: api.OptionalForm(c, "equipment_code"),
		Files:         make(map[models.FileKind]*downstream.FilePart),
	}

	input.Attributes = api.ExtraForm(c, formFields)

	for _, kind := range models.EquipmentFileKinds {
		file, err := api.FormFile(c, string(kind))
		if err != nil {
			api.Reject(c, Operation, errors.NewValidationError("Invalid "+string(kind)+" file", err.Error()))
			return
		}
		if file != nil {
			input.Files[kind] = file
		}
	}

	api.Respond(c, h.Execute(c.Request.Context(), input))
}

// Execute patches the equipment record and then replaces each supplied file.
// File uploads run only after the patch succeeded and never fail the update.
func (h *Handler) Execute(ctx context.Context, input *Input) *saga.Composite {
	if input == nil || strings.TrimSpace(input.EquipmentID) == "" {
		return saga.Rejected(Operation, errors.NewRequiredFieldError(models.EquipmentIDKey))
	}
	category, err := models.ParseEquipmentCategory(string(input.Category))
	if err != nil {
		return saga.Rejected(Operation, errors.NewValidationError(err.Error(), "field: category"))
	}
	id := strings.TrimSpace(input.EquipmentID)
	patch := buildPatch(input)

	steps := []saga.Step{{
		Name:     primaryStep,
		Done:     "equipment updated",
		Required: true,
		Invoke: saga.Call(h.caller, "", func(*saga.Context) downstream.Request {
			return downstream.Request{
				Method: http.MethodPatch,
				Path:   models.EquipmentItemPath(category, id),
				JSON:   patch,
			}
		}),
	}}

	uploads := make(map[string]string)
	for _, kind := range models.EquipmentFileKinds {
		file, ok := input.Files[kind]
		if !ok || file == nil {
			continue
		}
		uploads[string(kind)] = string(kind) + " upload"
		steps = append(steps, saga.UploadStep(h.caller, string(kind), models.EquipmentFilePath(category, id, kind), *file))
	}

	h.logger.Debug("Updating equipment", map[string]interface{}{
		"category":    string(category),
		"equipmentId": id,
		"files":       len(uploads),
	})

	result := h.orchestrator.Run(ctx, saga.Definition{
		Operation:      Operation,
		SuccessMessage: "Equipment updated successfully",
		Steps:          steps,
	})
	if !result.Success {
		return result
	}

	var response map[string]interface{}
	if rec, ok := result.Step(primaryStep); ok {
		response = rec.Result.Response
	}
	result.Data = map[string]interface{}{
		models.EquipmentIDKey: id,
		"response":            response,
		"files":               result.Outcomes(uploads),
	}
	return result
}
