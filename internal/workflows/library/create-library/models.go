package createlibrary

import "engdata-admin/internal/common/downstream"

// Input describes a 3D library entry and its optional model and thumbnail.
type Input struct {
	Name        string
	Description string
	Category    string
	VendorID    string
	Model       *downstream.FilePart
	Thumbnail   *downstream.FilePart
}

type libraryBody struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category,omitempty"`
	VendorID    string `json:"vendor_id,omitempty"`
}
