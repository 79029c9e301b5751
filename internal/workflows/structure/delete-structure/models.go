package deletestructure

type Input struct {
	StructureID string `json:"-"`
	ModelID     string `json:"model_id"`
	ThumbnailID string `json:"thumbnail_id"`
	SymbolID    string `json:"symbol_id"`
}
