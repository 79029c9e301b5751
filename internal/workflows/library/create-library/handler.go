package createlibrary

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

const Operation = "create-library"

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
		Name:        api.TrimmedForm(c, "name"),
		Description: api.TrimmedForm(c, "description"),
		Category:    api.TrimmedForm(c, "category"),
		VendorID:    api.TrimmedForm(c, "vendor_id"),
	}

	var err error
	if input.Model, err = api.FormFile(c, string(models.FileModel)); err != nil {
		api.Reject(c, Operation, errors.NewValidationError("Invalid model file", err.Error()))
		return
	}
	if input.Thumbnail, err = api.FormFile(c, string(models.FileThumbnail)); err != nil {
		api.Reject(c, Operation, errors.NewValidationError("Invalid thumbnail", err.Error()))
		return
	}

	api.Respond(c, h.Execute(c.Request.Context(), input))
}

// Execute creates the library entry, then uploads the model file and the
// thumbnail against it. Both uploads are optional.
func (h *Handler) Execute(ctx context.Context, input *Input) *saga.Composite {
	if input == nil || strings.TrimSpace(input.Name) == "" {
		return saga.Rejected(Operation, errors.NewRequiredFieldError("name"))
	}

	steps := []saga.Step{{
		Name:     "library create",
		Done:     "library created",
		Required: true,
		IDKey:    models.LibraryIDKey,
		Invoke: saga.Call(h.caller, models.LibraryIDKey, func(*saga.Context) downstream.Request {
			return downstream.Request{
				Method: http.MethodPost,
				Path:   models.LibrariesPath,
				JSON: libraryBody{
					Name:        strings.TrimSpace(input.Name),
					Description: input.Description,
					Category:    input.Category,
					VendorID:    input.VendorID,
				},
			}
		}),
	}}

	if input.Model != nil {
		steps = append(steps, h.upload(models.FileModel, models.ModelIDKey, *input.Model))
	}
	if input.Thumbnail != nil {
		steps = append(steps, h.upload(models.FileThumbnail, models.ThumbnailIDKey, *input.Thumbnail))
	}

	return h.orchestrator.Run(ctx, saga.Definition{
		Operation:      Operation,
		SuccessMessage: "Library created successfully",
		Steps:          steps,
	})
}

func (h *Handler) upload(kind models.FileKind, idKey string, file downstream.FilePart) saga.Step {
	return saga.Step{
		Name:  string(kind) + " upload",
		Done:  string(kind) + " uploaded",
		IDKey: idKey,
		Invoke: saga.Call(h.caller, idKey, func(sc *saga.Context) downstream.Request {
			return downstream.Request{
				Method: http.MethodPost,
				Path:   models.SubresourcePath(models.LibrariesPath, sc.ID(models.LibraryIDKey), string(kind)),
				Form:   downstream.SingleFile(file, nil),
			}
		}),
	}
}
