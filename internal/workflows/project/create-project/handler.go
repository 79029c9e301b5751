package createproject

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

const Operation = "create-project"

type Handler struct {
	config       *Config
	caller       downstream.Caller
	orchestrator *saga.Orchestrator
	logger       logger.Logger
}

func NewHandler(config *Config, caller downstream.Caller, orchestrator *saga.Orchestrator, log logger.Logger) *Handler {
	if config == nil {
		config = DefaultConfig()
	}
	return &Handler{
		config:       config,
		caller:       caller,
		orchestrator: orchestrator,
		logger:       logger.ForOperation(log, Operation),
	}
}

// Handle reads a multipart project form and runs the creation saga.
func (h *Handler) Handle(c *gin.Context) {
	attachment, err := api.FormFile(c, "attachment")
	if err != nil {
		api.Reject(c, Operation, errors.NewValidationError("Invalid attachment", err.Error()))
		return
	}

	input := &Input{
		Client: ClientInput{
			Name:    api.TrimmedForm(c, "client_name"),
			Email:   api.TrimmedForm(c, "client_email"),
			Phone:   api.TrimmedForm(c, "client_phone"),
			Address: api.TrimmedForm(c, "client_address"),
		},
		Site: SiteInput{
			Name:      api.TrimmedForm(c, "site_name"),
			Address:   api.TrimmedForm(c, "site_address"),
			City:      api.TrimmedForm(c, "site_city"),
			Country:   api.TrimmedForm(c, "site_country"),
			Latitude:  api.OptionalForm(c, "latitude"),
			Longitude: api.OptionalForm(c, "longitude"),
		},
		Project: ProjectInput{
			Name:        api.TrimmedForm(c, "name"),
			Description: api.TrimmedForm(c, "description"),
			StartDate:   api.TrimmedForm(c, "start_date"),
			EndDate:     api.TrimmedForm(c, "end_date"),
		},
		Attachment: attachment,
	}

	api.Respond(c, h.Execute(c.Request.Context(), input))
}

// Execute creates the client, the site-info and the project, links the site
// to the project and finally uploads the optional attachment.
func (h *Handler) Execute(ctx context.Context, input *Input) *saga.Composite {
	if stdErr := validate(input); stdErr != nil {
		h.logger.Warn("Rejected project creation", map[string]interface{}{"error": stdErr.Message})
		return saga.Rejected(Operation, stdErr)
	}
	return h.orchestrator.Run(ctx, h.definition(input))
}

func validate(input *Input) *errors.StandardError {
	if input == nil {
		return errors.NewValidationError("Request body is required", "")
	}
	switch {
	case strings.TrimSpace(input.Client.Name) == "":
		return errors.NewRequiredFieldError("client_name")
	case strings.TrimSpace(input.Site.Name) == "":
		return errors.NewRequiredFieldError("site_name")
	case strings.TrimSpace(input.Project.Name) == "":
		return errors.NewRequiredFieldError("name")
	}
	return nil
}

func (h *Handler) definition(input *Input) saga.Definition {
	steps := []saga.Step{
		{
			Name:     "client create",
			Done:     "client created",
			Required: true,
			IDKey:    models.ClientIDKey,
			Invoke: saga.Call(h.caller, models.ClientIDKey, func(*saga.Context) downstream.Request {
				return downstream.Request{
					Method: http.MethodPost,
					Path:   models.ClientsPath,
					JSON: clientBody{
						Name:    input.Client.Name,
						Email:   input.Client.Email,
						Phone:   input.Client.Phone,
						Address: input.Client.Address,
					},
				}
			}),
		},
		{
			Name:     "site-info create",
			Done:     "site-info created",
			Required: true,
			IDKey:    models.SiteIDKey,
			Invoke: saga.Call(h.caller, models.SiteIDKey, func(*saga.Context) downstream.Request {
				return downstream.Request{
					Method: http.MethodPost,
					Path:   models.SiteInfoPath,
					JSON: siteBody{
						Name:      input.Site.Name,
						Address:   input.Site.Address,
						City:      input.Site.City,
						Country:   input.Site.Country,
						Latitude:  input.Site.Latitude,
						Longitude: input.Site.Longitude,
					},
				}
			}),
		},
		{
			Name:     "project create",
			Done:     "project created",
			Required: true,
			IDKey:    models.ProjectIDKey,
			Invoke: saga.Call(h.caller, models.ProjectIDKey, func(sc *saga.Context) downstream.Request {
				return downstream.Request{
					Method: http.MethodPost,
					Path:   models.ProjectsPath,
					JSON: projectBody{
						Name:        input.Project.Name,
						Description: input.Project.Description,
						StartDate:   input.Project.StartDate,
						EndDate:     input.Project.EndDate,
						ClientID:    sc.ID(models.ClientIDKey),
						SiteID:      sc.ID(models.SiteIDKey),
					},
				}
			}),
		},
		{
			Name:     "site-info link",
			Done:     "site-info linked",
			Required: true,
			Invoke: saga.Call(h.caller, "", func(sc *saga.Context) downstream.Request {
				return downstream.Request{
					Method: http.MethodPatch,
					Path:   models.ResourcePath(models.SiteInfoPath, sc.ID(models.SiteIDKey)),
					JSON:   siteLinkBody{ProjectID: sc.ID(models.ProjectIDKey)},
				}
			}),
		},
	}

	if input.Attachment != nil {
		attachment := *input.Attachment
		steps = append(steps, saga.Step{
			Name:  "attachment upload",
			Done:  "attachment uploaded",
			IDKey: models.AttachmentIDKey,
			Invoke: saga.Call(h.caller, models.FileIDKey, func(sc *saga.Context) downstream.Request {
				return downstream.Request{
					Method: http.MethodPost,
					Path:   models.UploadPath,
					Form: downstream.SingleFile(attachment, map[string]string{
						models.ProjectIDKey: sc.ID(models.ProjectIDKey),
					}),
				}
			}),
		})
	}

	return saga.Definition{
		Operation:      Operation,
		SuccessMessage: h.config.SuccessMessage,
		Steps:          steps,
	}
}
