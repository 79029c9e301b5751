package deleteproject

// Input identifies the project and the records created alongside it. The
// service never looks dependents up itself; blank IDs are skipped.
type Input struct {
	ProjectID string `json:"-"`
	SiteID    string `json:"site_id"`
	ClientID  string `json:"client_id"`
}
