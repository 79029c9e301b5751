package updatestructure

import (
	"engdata-admin/internal/common/downstream"
	"engdata-admin/internal/models"
)

type Input struct {
	StructureID string

	Name          *string
	Description   *string
	StructureType *string
	Material      *string
	Attributes    map[string]string

	Files map[models.FileKind]*downstream.FilePart
}

type patchBody struct {
	Name          *string           `json:"name,omitempty"`
	Description   *string           `json:"description,omitempty"`
	StructureType *string           `json:"structure_type,omitempty"`
	Material      *string           `json:"material,omitempty"`
	Attributes    map[string]string `json:"attributes,omitempty"`
}

var formFields = map[string]bool{
	"name":           true,
	"description":    true,
	"structure_type": true,
	"material":       true,
}
