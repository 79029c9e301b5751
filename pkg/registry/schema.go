// pkg/registry/schema.go
package registry

type OperationRegistry struct {
	Version     string      `json:"version"`
	LastUpdated string      `json:"lastUpdated"`
	Operations  []Operation `json:"operations"`
}

// Operation describes one caller-facing saga.
type Operation struct {
	ID          string     `json:"id"`
	DisplayName string     `json:"displayName"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Method      string     `json:"method"`
	Path        string     `json:"path"`
	ContentType string     `json:"contentType"`
	Steps       []StepInfo `json:"steps"`
	ErrorCodes  []string   `json:"errorCodes"`
	Tags        []string   `json:"tags,omitempty"`
}

type StepInfo struct {
	Name     string `json:"name"`
	Required bool   `json:"required"`
}
