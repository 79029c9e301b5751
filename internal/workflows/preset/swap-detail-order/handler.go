package swapdetailorder

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

const Operation = "swap-detail-order"

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
	api.Respond(c, h.Execute(c.Request.Context(), &input))
}

// Execute asks the downstream service to exchange the order values of two
// preset details. The resulting order is not verified locally.
func (h *Handler) Execute(ctx context.Context, input *Input) *saga.Composite {
	if stdErr := validate(input); stdErr != nil {
		return saga.Rejected(Operation, stdErr)
	}

	body := Input{
		FirstDetailID:  strings.TrimSpace(input.FirstDetailID),
		SecondDetailID: strings.TrimSpace(input.SecondDetailID),
	}

	return h.orchestrator.Run(ctx, saga.Definition{
		Operation:      Operation,
		SuccessMessage: "Preset detail order swapped successfully",
		Steps: []saga.Step{{
			Name:     "detail order swap",
			Done:     "detail order swapped",
			Required: true,
			Invoke: saga.Call(h.caller, "", func(*saga.Context) downstream.Request {
				return downstream.Request{
					Method: http.MethodPatch,
					Path:   models.PresetDetailSwapPath,
					JSON:   body,
				}
			}),
		}},
	})
}

func validate(input *Input) *errors.StandardError {
	if input == nil {
		return errors.NewValidationError("Request body is required", "")
	}
	first := strings.TrimSpace(input.FirstDetailID)
	second := strings.TrimSpace(input.SecondDetailID)
	switch {
	case first == "":
		return errors.NewRequiredFieldError("first_detail_id")
	case second == "":
		return errors.NewRequiredFieldError("second_detail_id")
	case first == second:
		return errors.NewValidationError("first_detail_id and second_detail_id must differ",
			"field: second_detail_id")
	}
	return nil
}
