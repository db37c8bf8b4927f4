package domain

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCancelled, BookingCompleted:
		return true
	}
	return false
}

// CanTransition reports whether a booking may move from s to next. Cancelled
// and completed are terminal.
func (s BookingStatus) CanTransition(next BookingStatus) bool {
	switch s {
	case BookingPending, BookingConfirmed:
		return next == BookingCancelled || next == BookingCompleted
	}
	return false
}

// Booking holds a single slot for a stylist. Date and Time are stored as
// "2006-01-02" / "15:04" strings in the server's zone so the
// (stylist_id, date, time) uniqueness key is an exact match on any driver.
type Booking struct {
	ID            int64         `json:"id"`
	Reference     string        `json:"reference" gorm:"uniqueIndex"`
	StylistID     int64         `json:"stylist_id"`
	CustomerID    *int64        `json:"customer_id,omitempty"`
	CustomerName  string        `json:"customer_name"`
	CustomerPhone string        `json:"customer_phone"`
	ServiceName   string        `json:"service"`
	Date          string        `json:"date"`
	Time          string        `json:"time"`
	Status        BookingStatus `json:"status"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
	CancelledAt   *time.Time    `json:"cancelled_at,omitempty"`
}

// IsGuest reports whether the booking was made without an authenticated
// customer.
func (b *Booking) IsGuest() bool { return b.CustomerID == nil }
