package repository

import (
	"context"
	"time"

	"salonbook/internal/domain"

	"gorm.io/gorm"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// InsertIfFree persists the booking and relies on idx_no_double_booking to
// reject a second non-cancelled booking for the same (stylist, date, time).
// The index makes check-then-create safe: two concurrent inserts for one slot
// cannot both commit, whatever the advisory read said.
func (r *BookingRepository) InsertIfFree(ctx context.Context, b *domain.Booking) error {
	if err := r.db.WithContext(ctx).Create(b).Error; err != nil {
		if IsUniqueViolation(err) {
			return ErrDuplicateSlot
		}
		return err
	}
	return nil
}

// IsSlotFree is the read-side conflict check: no non-cancelled booking holds
// the slot. Advisory only; InsertIfFree is what closes the race.
func (r *BookingRepository) IsSlotFree(ctx context.Context, stylistID int64, date, timeOfDay string) (bool, error) {
	var cnt int64
	err := r.db.WithContext(ctx).
		Model(&domain.Booking{}).
		Where("stylist_id = ? AND date = ? AND time = ? AND status <> ?",
			stylistID, date, timeOfDay, domain.BookingCancelled).
		Count(&cnt).Error
	if err != nil {
		return false, err
	}
	return cnt == 0, nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var b domain.Booking
	if err := r.db.WithContext(ctx).First(&b, id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingRepository) GetByReference(ctx context.Context, reference string) (*domain.Booking, error) {
	var b domain.Booking
	if err := r.db.WithContext(ctx).Where("reference = ?", reference).First(&b).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

// FindForStylist returns the stylist's bookings ordered by (date, time),
// optionally restricted to one date.
func (r *BookingRepository) FindForStylist(ctx context.Context, stylistID int64, date string) ([]domain.Booking, error) {
	q := r.db.WithContext(ctx).Where("stylist_id = ?", stylistID)
	if date != "" {
		q = q.Where("date = ?", date)
	}

	var out []domain.Booking
	if err := q.Order("date ASC, time ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateStatus commits the transition only while the row is still in an open
// state. The WHERE clause re-checks the stored status, so a writer racing a
// cancel or complete cannot resurrect a terminal booking whatever its earlier
// read said.
func (r *BookingRepository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	updates := map[string]any{"status": status, "updated_at": time.Now()}
	if status == domain.BookingCancelled {
		now := time.Now()
		updates["cancelled_at"] = &now
	}

	tx := r.db.WithContext(ctx).Model(&domain.Booking{}).
		Where("id = ? AND status IN ?", id,
			[]domain.BookingStatus{domain.BookingPending, domain.BookingConfirmed}).
		Updates(updates)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrStaleStatus
	}
	return nil
}
