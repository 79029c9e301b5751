package registry

const (
	multipartForm = "multipart/form-data"
	jsonBody      = "application/json"
)

var (
	creationErrors = []string{"VALIDATION_FAILED", "DOWNSTREAM_ERROR", "TRANSPORT_ERROR", "PARTIAL_FAILURE", "INTERNAL_ERROR"}
	cascadeErrors  = []string{"VALIDATION_FAILED", "DOWNSTREAM_ERROR", "TRANSPORT_ERROR", "PARTIAL_FAILURE", "INTERNAL_ERROR"}
	singleErrors   = []string{"VALIDATION_FAILED", "DOWNSTREAM_ERROR", "TRANSPORT_ERROR", "INTERNAL_ERROR"}
)

func required(names ...string) []StepInfo {
	out := make([]StepInfo, 0, len(names))
	for _, n := range names {
		out = append(out, StepInfo{Name: n, Required: true})
	}
	return out
}

func optional(names ...string) []StepInfo {
	out := make([]StepInfo, 0, len(names))
	for _, n := range names {
		out = append(out, StepInfo{Name: n})
	}
	return out
}

func concat(parts ...[]StepInfo) []StepInfo {
	var out []StepInfo
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// Default describes every operation the gateway serves. Paths are relative
// to the API prefix.
func Default() *OperationRegistry {
	return &OperationRegistry{
		Version:     "1.0.0",
		LastUpdated: "2026-10-01",
		Operations: []Operation{
			{
				ID:          "create-project",
				DisplayName: "Create project",
				Description: "Creates the client and site-info records, the project referencing both, links the site back to the project and uploads an optional attachment.",
				Category:    "project",
				Method:      "POST",
				Path:        "/projects",
				ContentType: multipartForm,
				Steps: concat(
					required("client create", "site-info create", "project create", "site-info link"),
					optional("attachment upload"),
				),
				ErrorCodes: creationErrors,
				Tags:       []string{"saga", "create"},
			},
			{
				ID:          "delete-project",
				DisplayName: "Delete project",
				Description: "Deletes a project, then its site-info and client records when their IDs are supplied.",
				Category:    "project",
				Method:      "DELETE",
				Path:        "/projects/:id",
				ContentType: jsonBody,
				Steps:       concat(required("project delete"), optional("site-info delete", "client delete")),
				ErrorCodes:  cascadeErrors,
				Tags:        []string{"cascade", "delete"},
			},
			{
				ID:          "create-preset",
				DisplayName: "Create preset",
				Description: "Creates a preset master and uploads its optional thumbnail.",
				Category:    "preset",
				Method:      "POST",
				Path:        "/presets",
				ContentType: multipartForm,
				Steps:       concat(required("preset create"), optional("thumbnail upload")),
				ErrorCodes:  creationErrors,
				Tags:        []string{"saga", "create"},
			},
			{
				ID:          "delete-preset",
				DisplayName: "Delete preset",
				Description: "Deletes a preset master and its thumbnail file.",
				Category:    "preset",
				Method:      "DELETE",
				Path:        "/presets/:id",
				ContentType: jsonBody,
				Steps:       concat(required("preset delete"), optional("thumbnail delete")),
				ErrorCodes:  cascadeErrors,
				Tags:        []string{"cascade", "delete"},
			},
			{
				ID:          "swap-detail-order",
				DisplayName: "Swap preset detail order",
				Description: "Exchanges the order values of two preset details.",
				Category:    "preset",
				Method:      "PATCH",
				Path:        "/presets/details/swap-order",
				ContentType: jsonBody,
				Steps:       required("detail order swap"),
				ErrorCodes:  singleErrors,
			},
			{
				ID:          "create-library",
				DisplayName: "Create library entry",
				Description: "Creates a 3D library entry, then uploads its optional model file and thumbnail.",
				Category:    "library",
				Method:      "POST",
				Path:        "/libraries",
				ContentType: multipartForm,
				Steps:       concat(required("library create"), optional("model upload", "thumbnail upload")),
				ErrorCodes:  creationErrors,
				Tags:        []string{"saga", "create"},
			},
			{
				ID:          "delete-library",
				DisplayName: "Delete library entry",
				Description: "Deletes a library entry and its model and thumbnail files.",
				Category:    "library",
				Method:      "DELETE",
				Path:        "/libraries/:id",
				ContentType: jsonBody,
				Steps:       concat(required("library delete"), optional("model delete", "thumbnail delete")),
				ErrorCodes:  cascadeErrors,
				Tags:        []string{"cascade", "delete"},
			},
			{
				ID:          "update-equipment",
				DisplayName: "Update equipment",
				Description: "Patches a machine, electrical, pipe or measurement record, then replaces each supplied file.",
				Category:    "equipment",
				Method:      "PATCH",
				Path:        "/equipment/:category/:id",
				ContentType: multipartForm,
				Steps: concat(
					required("equipment update"),
					optional("model upload", "thumbnail upload", "symbol upload", "rfa upload", "rvt upload"),
				),
				ErrorCodes: creationErrors,
				Tags:       []string{"saga", "update"},
			},
			{
				ID:          "delete-equipment",
				DisplayName: "Delete equipment",
				Description: "Deletes an equipment record, then its model, thumbnail, symbol, formula, RVT and RFA artifacts.",
				Category:    "equipment",
				Method:      "DELETE",
				Path:        "/equipment/:category/:id",
				ContentType: jsonBody,
				Steps: concat(
					required("equipment delete"),
					optional("model delete", "thumbnail delete", "symbol delete", "formula delete", "rvt delete", "rfa delete"),
				),
				ErrorCodes: cascadeErrors,
				Tags:       []string{"cascade", "delete"},
			},
			{
				ID:          "update-structure",
				DisplayName: "Update structure",
				Description: "Patches a structure, then replaces each supplied file.",
				Category:    "structure",
				Method:      "PATCH",
				Path:        "/structures/:id",
				ContentType: multipartForm,
				Steps:       concat(required("structure update"), optional("model upload", "thumbnail upload", "symbol upload")),
				ErrorCodes:  creationErrors,
				Tags:        []string{"saga", "update"},
			},
			{
				ID:          "delete-structure",
				DisplayName: "Delete structure",
				Description: "Deletes a structure and its model, thumbnail and symbol files.",
				Category:    "structure",
				Method:      "DELETE",
				Path:        "/structures/:id",
				ContentType: jsonBody,
				Steps:       concat(required("structure delete"), optional("model delete", "thumbnail delete", "symbol delete")),
				ErrorCodes:  cascadeErrors,
				Tags:        []string{"cascade", "delete"},
			},
		},
	}
}
