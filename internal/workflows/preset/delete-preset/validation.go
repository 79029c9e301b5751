package deletepreset

import "engdata-admin/internal/common/validation"

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type: "object",
		Properties: map[string]validation.Property{
			"thumbnail_id": validation.OptionalIDProperty("Thumbnail file of the preset"),
		},
		AdditionalProperties: false,
	}
}
