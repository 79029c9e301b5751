package deletelibrary

type Input struct {
	LibraryID   string `json:"-"`
	ModelID     string `json:"model_id"`
	ThumbnailID string `json:"thumbnail_id"`
}
