package createpreset

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

const Operation = "create-preset"

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
	thumbnail, err := api.FormFile(c, "thumbnail")
	if err != nil {
		api.Reject(c, Operation, errors.NewValidationError("Invalid thumbnail", err.Error()))
		return
	}

	api.Respond(c, h.Execute(c.Request.Context(), &Input{
		Name:        api.TrimmedForm(c, "name"),
		Description: api.TrimmedForm(c, "description"),
		Category:    api.TrimmedForm(c, "category"),
		Thumbnail:   thumbnail,
	}))
}

// Execute creates the preset master and, when a thumbnail was sent, uploads it
// against the new preset.
func (h *Handler) Execute(ctx context.Context, input *Input) *saga.Composite {
	if input == nil || strings.TrimSpace(input.Name) == "" {
		return saga.Rejected(Operation, errors.NewRequiredFieldError("name"))
	}

	steps := []saga.Step{{
		Name:     "preset create",
		Done:     "preset created",
		Required: true,
		IDKey:    models.PresetIDKey,
		Invoke: saga.Call(h.caller, models.PresetIDKey, func(*saga.Context) downstream.Request {
			return downstream.Request{
				Method: http.MethodPost,
				Path:   models.PresetsPath,
				JSON: presetBody{
					Name:        strings.TrimSpace(input.Name),
					Description: input.Description,
					Category:    input.Category,
				},
			}
		}),
	}}

	if input.Thumbnail != nil {
		thumbnail := *input.Thumbnail
		steps = append(steps, saga.Step{
			Name:  "thumbnail upload",
			Done:  "thumbnail uploaded",
			IDKey: models.ThumbnailIDKey,
			Invoke: saga.Call(h.caller, models.ThumbnailIDKey, func(sc *saga.Context) downstream.Request {
				return downstream.Request{
					Method: http.MethodPost,
					Path:   models.SubresourcePath(models.PresetsPath, sc.ID(models.PresetIDKey), "thumbnail"),
					Form:   downstream.SingleFile(thumbnail, nil),
				}
			}),
		})
	}

	return h.orchestrator.Run(ctx, saga.Definition{
		Operation:      Operation,
		SuccessMessage: "Preset created successfully",
		Steps:          steps,
	})
}
