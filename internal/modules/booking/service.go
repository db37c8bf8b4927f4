package booking

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"salonbook/internal/domain"
	"salonbook/internal/repository"
	"salonbook/internal/schedule"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

var phoneRe = regexp.MustCompile(`^\+?[0-9][0-9 ()-]{4,19}$`)

type Service struct {
	bookings BookingRepository
	stylists StylistDirectory
	notifs   Sender
}

func NewService(bookings BookingRepository, stylists StylistDirectory, notifs Sender) *Service {
	return &Service{
		bookings: bookings,
		stylists: stylists,
		notifs:   notifs,
	}
}

// AvailableSlots lists the free times for (stylist, date): the generated grid
// minus every slot held by a non-cancelled booking. A closed day is an empty
// list, not an error.
func (s *Service) AvailableSlots(ctx context.Context, stylistID int64, dateStr string) ([]string, error) {
	date, err := time.ParseInLocation(dateLayout, dateStr, time.Local)
	if err != nil {
		return nil, ErrValidation
	}

	stylist, err := s.stylists.GetByID(ctx, stylistID)
	if err != nil {
		return nil, notFoundOr(err)
	}
	if !stylist.IsActive {
		return nil, ErrNotFound
	}

	if !stylist.Availability.IsOpenOn(date) {
		return []string{}, nil
	}

	all, err := schedule.Slots(stylist.Availability, schedule.DefaultIntervalMinutes)
	if err != nil {
		return nil, err
	}

	existing, err := s.bookings.FindForStylist(ctx, stylistID, dateStr)
	if err != nil {
		return nil, err
	}

	taken := make(map[string]bool, len(existing))
	for _, b := range existing {
		if b.Status != domain.BookingCancelled {
			taken[b.Time] = true
		}
	}

	free := make([]string, 0, len(all))
	for _, t := range all {
		if !taken[t] {
			free = append(free, t)
		}
	}
	return free, nil
}

// Create validates the request against the stylist's schedule and commits the
// booking through the atomic insert-if-free path. New bookings are confirmed;
// guest and authenticated flows differ only in CustomerID.
func (s *Service) Create(ctx context.Context, req CreateBookingRequest) (*domain.Booking, error) {
	name := strings.TrimSpace(req.CustomerName)
	if len(name) < 2 {
		return nil, ErrValidation
	}
	if !phoneRe.MatchString(strings.TrimSpace(req.CustomerPhone)) {
		return nil, ErrValidation
	}

	date, err := time.ParseInLocation(dateLayout, req.Date, time.Local)
	if err != nil {
		return nil, ErrValidation
	}
	if _, err := domain.ParseClock(req.Time); err != nil {
		return nil, ErrValidation
	}

	now := time.Now()
	startOfToday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
	if date.Before(startOfToday) {
		return nil, ErrInvalidDate
	}

	stylist, err := s.stylists.GetByID(ctx, req.StylistID)
	if err != nil {
		return nil, notFoundOr(err)
	}
	if !stylist.IsActive {
		return nil, ErrNotFound
	}

	if _, ok := stylist.ServiceByName(req.Service); !ok {
		return nil, ErrValidation
	}

	if !stylist.Availability.IsOpenOn(date) {
		return nil, ErrSlotUnavailable
	}
	slots, err := schedule.Slots(stylist.Availability, schedule.DefaultIntervalMinutes)
	if err != nil {
		return nil, err
	}
	if !schedule.Contains(slots, req.Time) {
		return nil, ErrSlotUnavailable
	}

	// Advisory read so an already-taken slot fails before we mint a booking.
	// Not the guarantee; the insert below is.
	free, err := s.bookings.IsSlotFree(ctx, req.StylistID, req.Date, req.Time)
	if err != nil {
		return nil, err
	}
	if !free {
		return nil, ErrSlotUnavailable
	}

	b := &domain.Booking{
		Reference:     uuid.NewString(),
		StylistID:     req.StylistID,
		CustomerID:    req.CustomerID,
		CustomerName:  name,
		CustomerPhone: strings.TrimSpace(req.CustomerPhone),
		ServiceName:   req.Service,
		Date:          req.Date,
		Time:          req.Time,
		Status:        domain.BookingConfirmed,
	}

	// The storage-side index decides the race: whoever commits first wins,
	// the loser sees the duplicate and reports the slot as taken.
	if err := s.bookings.InsertIfFree(ctx, b); err != nil {
		if errors.Is(err, repository.ErrDuplicateSlot) {
			return nil, ErrSlotUnavailable
		}
		return nil, err
	}

	if s.notifs != nil {
		s.notifs.BookingCreated(b)
	}
	return b, nil
}

// UpdateStatus moves a booking along the lifecycle. Only
// {pending, confirmed} -> {cancelled, completed} is legal; cancelled and
// completed are terminal.
func (s *Service) UpdateStatus(ctx context.Context, id int64, newStatus string) (*domain.Booking, error) {
	next := domain.BookingStatus(newStatus)
	if !next.Valid() {
		return nil, ErrValidation
	}

	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err)
	}

	if !b.Status.CanTransition(next) {
		return nil, ErrInvalidTransition
	}

	// The conditional write loses to whichever writer moved the booking out
	// of the open states first.
	if err := s.bookings.UpdateStatus(ctx, id, next); err != nil {
		if errors.Is(err, repository.ErrStaleStatus) {
			return nil, ErrInvalidTransition
		}
		return nil, notFoundOr(err)
	}

	updated, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err)
	}

	if next == domain.BookingCancelled && s.notifs != nil {
		s.notifs.BookingCancelled(updated)
	}
	return updated, nil
}

// Cancel is UpdateStatus(cancelled) restricted to the booking's own customer
// or an admin. Cancelling frees the slot immediately: the conflict index
// ignores cancelled rows.
func (s *Service) Cancel(ctx context.Context, id, requesterID int64, role string) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err)
	}

	if role != string(domain.RoleAdmin) {
		if b.CustomerID == nil || *b.CustomerID != requesterID {
			return nil, ErrForbidden
		}
	}

	if !b.Status.CanTransition(domain.BookingCancelled) {
		return nil, ErrInvalidTransition
	}

	if err := s.bookings.UpdateStatus(ctx, id, domain.BookingCancelled); err != nil {
		if errors.Is(err, repository.ErrStaleStatus) {
			return nil, ErrInvalidTransition
		}
		return nil, notFoundOr(err)
	}

	updated, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err)
	}

	if s.notifs != nil {
		s.notifs.BookingCancelled(updated)
	}
	return updated, nil
}

// ListForStylist returns the stylist's bookings ordered by (date, time),
// optionally for a single date.
func (s *Service) ListForStylist(ctx context.Context, stylistID int64, dateStr string) ([]domain.Booking, error) {
	if dateStr != "" {
		if _, err := time.ParseInLocation(dateLayout, dateStr, time.Local); err != nil {
			return nil, ErrValidation
		}
	}
	return s.bookings.FindForStylist(ctx, stylistID, dateStr)
}

// GetByReference lets a guest retrieve their booking with the code handed out
// at creation.
func (s *Service) GetByReference(ctx context.Context, reference string) (*domain.Booking, error) {
	b, err := s.bookings.GetByReference(ctx, reference)
	if err != nil {
		return nil, notFoundOr(err)
	}
	return b, nil
}

func notFoundOr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
