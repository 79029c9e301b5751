package swapdetailorder

import "engdata-admin/internal/common/validation"

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"first_detail_id", "second_detail_id"},
		Properties: map[string]validation.Property{
			"first_detail_id":  validation.IDProperty("Preset detail taking the second detail's order"),
			"second_detail_id": validation.IDProperty("Preset detail taking the first detail's order"),
		},
		AdditionalProperties: false,
	}
}
