package createproject

import "engdata-admin/internal/common/downstream"

type Input struct {
	Client     ClientInput
	Site       SiteInput
	Project    ProjectInput
	Attachment *downstream.FilePart
}

type ClientInput struct {
	Name    string
	Email   string
	Phone   string
	Address string
}

type SiteInput struct {
	Name      string
	Address   string
	City      string
	Country   string
	Latitude  *string
	Longitude *string
}

type ProjectInput struct {
	Name        string
	Description string
	StartDate   string
	EndDate     string
}

type clientBody struct {
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

type siteBody struct {
	Name      string  `json:"site_name"`
	Address   string  `json:"address,omitempty"`
	City      string  `json:"city,omitempty"`
	Country   string  `json:"country,omitempty"`
	Latitude  *string `json:"latitude,omitempty"`
	Longitude *string `json:"longitude,omitempty"`
}

type projectBody struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	StartDate   string `json:"start_date,omitempty"`
	EndDate     string `json:"end_date,omitempty"`
	ClientID    string `json:"client_id"`
	SiteID      string `json:"site_id"`
}

type siteLinkBody struct {
	ProjectID string `json:"project_id"`
}
