package booking

import "errors"

var (
	ErrValidation        = errors.New("validation error")
	ErrInvalidDate       = errors.New("date is in the past")
	ErrSlotUnavailable   = errors.New("slot unavailable")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrForbidden         = errors.New("forbidden")
	ErrNotFound          = errors.New("booking not found")
)
