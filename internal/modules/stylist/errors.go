package stylist

import "errors"

var (
	ErrValidation = errors.New("invalid stylist data")
	ErrNotFound   = errors.New("stylist not found")
)
