package updateequipment

import (
	"fmt"
	"strings"

	"engdata-admin/internal/common/downstream"
	"engdata-admin/internal/models"
)

// Input is a partial update of one equipment record. Nil fields are left
// untouched downstream.
type Input struct {
	Category    models.EquipmentCategory
	EquipmentID string

	Name          *string
	Description   *string
	EquipmentType *string
	Vendor        *string
	ModelNumber   *string
	EquipmentCode *string

	// Attributes carries category-specific fields (ratings, dimensions, ...).
	Attributes map[string]string

	Files map[models.FileKind]*downstream.FilePart
}

type patchBody struct {
	Name          *string           `json:"name,omitempty"`
	Description   *string           `json:"description,omitempty"`
	EquipmentType *string           `json:"equipment_type,omitempty"`
	Vendor        *string           `json:"vendor,omitempty"`
	ModelNumber   *string           `json:"model_number,omitempty"`
	EquipmentCode *string           `json:"equipment_code,omitempty"`
	Attributes    map[string]string `json:"attributes,omitempty"`
}

// formFields are the form keys mapped onto typed fields; any other text field
// becomes an attribute.
var formFields = map[string]bool{
	"name":           true,
	"description":    true,
	"equipment_type": true,
	"vendor":         true,
	"model_number":   true,
	"equipment_code": true,
}

// DeriveEquipmentCode returns the code to send: the caller's own non-blank
// code, or "<type>-<vendor>-<model>" when all three parts are present. A blank
// code is never sent, so the stored code is left untouched.
func DeriveEquipmentCode(in *Input) *string {
	if in.EquipmentCode != nil && strings.TrimSpace(*in.EquipmentCode) != "" {
		return in.EquipmentCode
	}
	parts := []*string{in.EquipmentType, in.Vendor, in.ModelNumber}
	values := make([]interface{}, 0, len(parts))
	for _, p := range parts {
		if p == nil || strings.TrimSpace(*p) == "" {
			return nil
		}
		values = append(values, strings.TrimSpace(*p))
	}
	code := fmt.Sprintf("%s-%s-%s", values...)
	return &code
}

func buildPatch(in *Input) patchBody {
	return patchBody{
		Name:          in.Name,
		Description:   in.Description,
		EquipmentType: in.EquipmentType,
		Vendor:        in.Vendor,
		ModelNumber:   in.ModelNumber,
		EquipmentCode: DeriveEquipmentCode(in),
		Attributes:    in.Attributes,
	}
}
