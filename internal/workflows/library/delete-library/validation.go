package deletelibrary

import "engdata-admin/internal/common/validation"

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type: "object",
		Properties: map[string]validation.Property{
			"model_id":     validation.OptionalIDProperty("Model file of the library entry"),
			"thumbnail_id": validation.OptionalIDProperty("Thumbnail file of the library entry"),
		},
		AdditionalProperties: false,
	}
}
