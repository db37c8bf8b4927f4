package booking

type CreateBookingRequest struct {
	StylistID     int64  `json:"stylist_id" binding:"required"`
	Date          string `json:"date" binding:"required" validate:"required"`
	Time          string `json:"time" binding:"required" validate:"required"`
	CustomerName  string `json:"customer_name" binding:"required" validate:"required,min=2,max=100"`
	CustomerPhone string `json:"customer_phone" binding:"required" validate:"required"`
	Service       string `json:"service" binding:"required" validate:"required"`

	// Set from the verified token, never from the body. Nil means guest.
	CustomerID *int64 `json:"-"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
