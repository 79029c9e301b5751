package server

import (
	"engdata-admin/internal/common/downstream"
	"engdata-admin/internal/common/logger"
	"engdata-admin/internal/saga"

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
)

// Handlers bundles one handler per operation.
type Handlers struct {
	CreateProject   *createproject.Handler
	DeleteProject   *deleteproject.Handler
	CreatePreset    *createpreset.Handler
	DeletePreset    *deletepreset.Handler
	SwapDetailOrder *swapdetailorder.Handler
	CreateLibrary   *createlibrary.Handler
	DeleteLibrary   *deletelibrary.Handler
	UpdateEquipment *updateequipment.Handler
	DeleteEquipment *deleteequipment.Handler
	UpdateStructure *updatestructure.Handler
	DeleteStructure *deletestructure.Handler
}

func NewHandlers(caller downstream.Caller, orchestrator *saga.Orchestrator, log logger.Logger) *Handlers {
	return &Handlers{
		CreateProject:   createproject.NewHandler(createproject.DefaultConfig(), caller, orchestrator, log),
		DeleteProject:   deleteproject.NewHandler(caller, orchestrator, log),
		CreatePreset:    createpreset.NewHandler(caller, orchestrator, log),
		DeletePreset:    deletepreset.NewHandler(caller, orchestrator, log),
		SwapDetailOrder: swapdetailorder.NewHandler(caller, orchestrator, log),
		CreateLibrary:   createlibrary.NewHandler(caller, orchestrator, log),
		DeleteLibrary:   deletelibrary.NewHandler(caller, orchestrator, log),
		UpdateEquipment: updateequipment.NewHandler(caller, orchestrator, log),
		DeleteEquipment: deleteequipment.NewHandler(caller, orchestrator, log),
		UpdateStructure: updatestructure.NewHandler(caller, orchestrator, log),
		DeleteStructure: deletestructure.NewHandler(caller, orchestrator, log),
	}
}
