package deletepreset

type Input struct {
	PresetID    string `json:"-"`
	ThumbnailID string `json:"thumbnail_id"`
}
