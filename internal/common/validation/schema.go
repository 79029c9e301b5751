package validation

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

type JSONSchema struct {
	Type                 string              `json:"type"`
	Properties           map[string]Property `json:"properties"`
	Required             []string            `json:"required,omitempty"`
	AdditionalProperties bool                `json:"additionalProperties"`
}

type Property struct {
	Type        string              `json:"type,omitempty"`
	Description string              `json:"description,omitempty"`
	Enum        []string            `json:"enum,omitempty"`
	Pattern     *string             `json:"pattern,omitempty"`
	MinLength   *int                `json:"minLength,omitempty"`
	MaxLength   *int                `json:"maxLength,omitempty"`
	Items       *Property           `json:"items,omitempty"`
	Properties  map[string]Property `json:"properties,omitempty"`
	Required    []string            `json:"required,omitempty"`
}

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// Summary joins every error into one human-readable line.
func (r *ValidationResult) Summary() string {
	parts := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		parts = append(parts, fmt.Sprintf("%s: %s", e.Field, e.Message))
	}
	return strings.Join(parts, "; ")
}

// ValidateInput checks a decoded document against schema.
func ValidateInput(input map[string]interface{}, schema JSONSchema) *ValidationResult {
	if input == nil {
		input = map[string]interface{}{}
	}
	return validate(gojsonschema.NewGoLoader(input), schema)
}

// ValidateJSON checks a raw JSON document against schema.
func ValidateJSON(raw []byte, schema JSONSchema) *ValidationResult {
	if len(strings.TrimSpace(string(raw))) == 0 {
		raw = []byte("{}")
	}
	return validate(gojsonschema.NewBytesLoader(raw), schema)
}

func validate(document gojsonschema.JSONLoader, schema JSONSchema) *ValidationResult {
	schemaJSON, err := json.Marshal(schema)
	if err != nil {
		return invalid("$schema", err.Error(), "SCHEMA_ERROR")
	}

	result, err := gojsonschema.Validate(gojsonschema.NewBytesLoader(schemaJSON), document)
	if err != nil {
		return invalid("$", err.Error(), "INVALID_DOCUMENT")
	}

	out := &ValidationResult{Valid: result.Valid()}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if desc.Type() == "required" {
			if prop, ok := desc.Details()["property"].(string); ok {
				field = prop
			}
		}
		out.Errors = append(out.Errors, ValidationError{
			Field:   field,
			Message: desc.Description(),
			Code:    strings.ToUpper(desc.Type()),
		})
	}
	return out
}

func invalid(field, message, code string) *ValidationResult {
	return &ValidationResult{
		Valid:  false,
		Errors: []ValidationError{{Field: field, Message: message, Code: code}},
	}
}

// PathSafeID matches identifiers that fit in one URL path segment.
var PathSafeID = `^[^/?#]*$`

// NonBlankPathSafeID additionally requires one non-space character.
var NonBlankPathSafeID = `^[^/?#]*[^/?#\s][^/?#]*$`

func IntPtr(i int) *int {
	return &i
}

func StringPtr(s string) *string {
	return &s
}

// IDProperty describes a required, non-blank resource identifier.
func IDProperty(description string) Property {
	return Property{
		Type:        "string",
		Description: description,
		Pattern:     StringPtr(NonBlankPathSafeID),
		MaxLength:   IntPtr(128),
	}
}

// OptionalIDProperty describes an identifier that may be blank or null.
func OptionalIDProperty(description string) Property {
	return Property{
		Description: description,
		Pattern:     StringPtr(PathSafeID),
		MaxLength:   IntPtr(128),
	}
}
