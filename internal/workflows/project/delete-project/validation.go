package deleteproject

import "engdata-admin/internal/common/validation"

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type: "object",
		Properties: map[string]validation.Property{
			"site_id":   validation.OptionalIDProperty("Site-info record created with the project"),
			"client_id": validation.OptionalIDProperty("Client record created with the project"),
		},
		AdditionalProperties: false,
	}
}
