package createpreset

import "engdata-admin/internal/common/downstream"

type Input struct {
	Name        string
	Description string
	Category    string
	Thumbnail   *downstream.FilePart
}

type presetBody struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category,omitempty"`
}
