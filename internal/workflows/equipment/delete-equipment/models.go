package deleteequipment

import "engdata-admin/internal/models"

// Input identifies the equipment record and the artifacts attached to it.
type Input struct {
	Category    models.EquipmentCategory `json:"-"`
	EquipmentID string                   `json:"-"`

	ModelID     string `json:"model_id"`
	ThumbnailID string `json:"thumbnail_id"`
	SymbolID    string `json:"symbol_id"`
	FormulaID   string `json:"formula_id"`
	RVTID       string `json:"rvt_id"`
	RFAID       string `json:"rfa_id"`
}
