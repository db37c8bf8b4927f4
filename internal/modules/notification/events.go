package notification

import (
	"time"

	"salonbook/internal/domain"
)

const (
	EventBookingCreated   = "booking.created"
	EventBookingCancelled = "booking.cancelled"
)

type Event struct {
	Type      string          `json:"type"`
	Timestamp time.Time       `json:"timestamp"`
	Booking   *domain.Booking `json:"booking,omitempty"`
}

func newBookingEvent(eventType string, b *domain.Booking) Event {
	return Event{
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Booking:   b,
	}
}
