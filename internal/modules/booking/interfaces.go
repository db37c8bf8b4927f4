package booking

import (
	"context"

	"salonbook/internal/domain"
)

// BookingRepository is the booking store as the lifecycle consumes it.
// InsertIfFree must be atomic: it either commits the only non-cancelled
// booking for the slot or fails with repository.ErrDuplicateSlot.
type BookingRepository interface {
	InsertIfFree(ctx context.Context, b *domain.Booking) error
	IsSlotFree(ctx context.Context, stylistID int64, date, timeOfDay string) (bool, error)
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByReference(ctx context.Context, reference string) (*domain.Booking, error)
	FindForStylist(ctx context.Context, stylistID int64, date string) ([]domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
}

// StylistDirectory is the slice of the stylist store the lifecycle needs.
type StylistDirectory interface {
	GetByID(ctx context.Context, id int64) (*domain.Stylist, error)
}

// Sender pushes booking events to connected salon operators. Optional and
// best-effort: a nil or slow sender never fails a booking.
type Sender interface {
	BookingCreated(b *domain.Booking)
	BookingCancelled(b *domain.Booking)
}
