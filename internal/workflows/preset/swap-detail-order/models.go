package swapdetailorder

// Input names the two preset details whose order values are exchanged.
type Input struct {
	FirstDetailID  string `json:"first_detail_id"`
	SecondDetailID string `json:"second_detail_id"`
}
