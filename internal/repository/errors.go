package repository

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrDuplicateSlot is returned by BookingRepository.InsertIfFree when the
// partial unique index on (stylist_id, date, time) rejects the row.
var ErrDuplicateSlot = errors.New("slot already booked")

// ErrStaleStatus is returned by BookingRepository.UpdateStatus when the
// conditional write matched no row: the booking is gone or already left the
// open states, typically because a concurrent writer got there first.
var ErrStaleStatus = errors.New("booking status changed concurrently")

// IsUniqueViolation recognizes a unique-constraint failure from either driver:
// pgconn carries SQLSTATE 23505, the sqlite driver only a message.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}

	msg := err.Error()
	return strings.Contains(msg, "SQLSTATE 23505") ||
		strings.Contains(msg, "duplicate key value violates unique constraint") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
