package deletestructure

import "engdata-admin/internal/common/validation"

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type: "object",
		Properties: map[string]validation.Property{
			"model_id":     validation.OptionalIDProperty("3D model file"),
			"thumbnail_id": validation.OptionalIDProperty("Thumbnail file"),
			"symbol_id":    validation.OptionalIDProperty("Symbol file"),
		},
		AdditionalProperties: false,
	}
}
