// pkg/registry/registry.go
package registry

import (
	"encoding/json"
	"fmt"
	"os"
)

func LoadRegistry(path string) (*OperationRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var reg OperationRegistry
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("failed to parse registry %s: %w", path, err)
	}
	return &reg, nil
}

// Find returns the operation with the given ID.
func (r *OperationRegistry) Find(id string) (Operation, bool) {
	for _, op := range r.Operations {
		if op.ID == id {
			return op, true
		}
	}
	return Operation{}, false
}

// IDs returns every operation ID in registry order.
func (r *OperationRegistry) IDs() []string {
	ids := make([]string, 0, len(r.Operations))
	for _, op := range r.Operations {
		ids = append(ids, op.ID)
	}
	return ids
}
