package domain

import "time"

// GuestCustomerID is the sentinel identity recorded for ratings submitted
// without an account. Customer rows use positive auto-increment ids, so the
// sentinel can never collide with a real customer.
const GuestCustomerID int64 = -1

// Rating is immutable once created; each row contributes exactly once to the
// stylist's aggregate.
type Rating struct {
	ID         int64     `json:"id"`
	StylistID  int64     `json:"stylist_id"`
	CustomerID int64     `json:"customer_id"`
	Value      float64   `json:"value"`
	CreatedAt  time.Time `json:"created_at"`
}
