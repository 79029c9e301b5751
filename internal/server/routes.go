package server

import (
	"net/http"

	"engdata-admin/internal/common/api"
	"engdata-admin/internal/common/config"
	"engdata-admin/pkg/registry"

	deleteequipment "engdata-admin/internal/workflows/equipment/delete-equipment"
	updateequipment "engdata-admin/internal/workflows/equipment/update-equipment"
	createlibrary "engdata-admin/internal/workflows/library/create-library"
	deletelibrary "engdata-admin/internal/workflows/library/delete-library"
	createpreset "engdata-admin/internal/workflows/preset/create-preset"
	deletepreset "engdata-admin/internal/workflows/preset/delete-preset"
	swapdetailorder "engdata-admin/internal/workflows/preset/swap-detail-order"
	createproject "engdata-admin/internal/workflows/project/create-project"
	deleteproject "engdata-admin/internal/workflows/project/delete-project"
	deletestructure "engdata-admin/internal/workflows/structure/delete-structure"
	updatestructure "engdata-admin/internal/workflows/structure/update-structure"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts every operation on rg, typically the /api/v1 group.
// Each route answers 503 when its operation is disabled in cfg.
//
//	POST   /projects                     create-project
//	DELETE /projects/:id                 delete-project
//	POST   /presets                      create-preset
//	DELETE /presets/:id                  delete-preset
//	PATCH  /presets/details/swap-order   swap-detail-order
//	POST   /libraries                    create-library
//	DELETE /libraries/:id                delete-library
//	PATCH  /equipment/:category/:id      update-equipment
//	DELETE /equipment/:category/:id      delete-equipment
//	PATCH  /structures/:id               update-structure
//	DELETE /structures/:id               delete-structure
//	GET    /operations                   operation registry
func RegisterRoutes(rg *gin.RouterGroup, h *Handlers, cfg *config.Config, reg *registry.OperationRegistry) {
	guard := func(operation string) gin.HandlerFunc {
		return api.RequireEnabled(cfg, operation)
	}

	projects := rg.Group("/projects")
	{
		projects.POST("", guard(createproject.Operation), h.CreateProject.Handle)
		projects.DELETE("/:id", guard(deleteproject.Operation), h.DeleteProject.Handle)
	}

	presets := rg.Group("/presets")
	{
		presets.POST("", guard(createpreset.Operation), h.CreatePreset.Handle)
		presets.DELETE("/:id", guard(deletepreset.Operation), h.DeletePreset.Handle)
		presets.PATCH("/details/swap-order", guard(swapdetailorder.Operation), h.SwapDetailOrder.Handle)
	}

	libraries := rg.Group("/libraries")
	{
		libraries.POST("", guard(createlibrary.Operation), h.CreateLibrary.Handle)
		libraries.DELETE("/:id", guard(deletelibrary.Operation), h.DeleteLibrary.Handle)
	}

	equipment := rg.Group("/equipment")
	{
		equipment.PATCH("/:category/:id", guard(updateequipment.Operation), h.UpdateEquipment.Handle)
		equipment.DELETE("/:category/:id", guard(deleteequipment.Operation), h.DeleteEquipment.Handle)
	}

	structures := rg.Group("/structures")
	{
		structures.PATCH("/:id", guard(updatestructure.Operation), h.UpdateStructure.Handle)
		structures.DELETE("/:id", guard(deletestructure.Operation), h.DeleteStructure.Handle)
	}

	rg.GET("/operations", func(c *gin.Context) {
		type entry struct {
			registry.Operation
			Enabled bool `json:"enabled"`
		}
		out := make([]entry, 0, len(reg.Operations))
		for _, op := range reg.Operations {
			out = append(out, entry{Operation: op, Enabled: config.IsWorkflowEnabled(cfg, op.ID)})
		}
		c.JSON(http.StatusOK, gin.H{
			"version":    reg.Version,
			"operations": out,
		})
	})
}
