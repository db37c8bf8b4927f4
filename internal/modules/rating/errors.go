package rating

import "errors"

var (
	ErrValidation = errors.New("rating out of range")
	ErrNotFound   = errors.New("stylist not found")

	// ErrAggregateStale means the rating row committed but the writeback of
	// the stylist's aggregate failed; the recompute endpoint repairs it.
	ErrAggregateStale = errors.New("aggregate recompute failed")
)
