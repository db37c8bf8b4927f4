package rating

type SubmitRatingRequest struct {
	StylistID int64   `json:"stylist_id" binding:"required"`
	Value     float64 `json:"value"`
}
