package updatestructure

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

const Operation = "update-structure"

const primaryStep = "structure update"

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
		StructureID:   c.Param("id"),
		Name:          api.OptionalForm(c, "name"),
		Description:   api.OptionalForm(c, "description"),
		StructureType: api.OptionalForm(c, "structure_type"),
		Material:      api.OptionalForm(c, "material"),
		Files:         make(map[models.FileKind]*downstream.FilePart),
	}

	input.Attributes = api.ExtraForm(c, formFields)

	for _, kind := range models.StructureFileKinds {
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

func (h *Handler) Execute(ctx context.Context, input *Input) *saga.Composite {
	if input == nil || strings.TrimSpace(input.StructureID) == "" {
		return saga.Rejected(Operation, errors.NewRequiredFieldError(models.StructureIDKey))
	}
	id := strings.TrimSpace(input.StructureID)
	patch := patchBody{
		Name:          input.Name,
		Description:   input.Description,
		StructureType: input.StructureType,
		Material:      input.Material,
		Attributes:    input.Attributes,
	}

	steps := []saga.Step{{
		Name:     primaryStep,
		Done:     "structure updated",
		Required: true,
		Invoke: saga.Call(h.caller, "", func(*saga.Context) downstream.Request {
			return downstream.Request{
				Method: http.MethodPatch,
				Path:   models.ResourcePath(models.StructuresPath, id),
				JSON:   patch,
			}
		}),
	}}

	uploads := make(map[string]string)
	for _, kind := range models.StructureFileKinds {
		file, ok := input.Files[kind]
		if !ok || file == nil {
			continue
		}
		uploads[string(kind)] = string(kind) + " upload"
		steps = append(steps, saga.UploadStep(h.caller, string(kind), models.StructureFilePath(id, kind), *file))
	}

	result := h.orchestrator.Run(ctx, saga.Definition{
		Operation:      Operation,
		SuccessMessage: "Structure updated successfully",
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
		models.StructureIDKey: id,
		"response":            response,
		"files":               result.Outcomes(uploads),
	}
	return result
}
