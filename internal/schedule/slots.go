// Package schedule derives the finite list of bookable times of day from a
// stylist's availability window. It is pure: it knows nothing about existing
// bookings.
package schedule

import (
	"salonbook/internal/domain"
)

// DefaultIntervalMinutes is the slot grid used when the caller does not pick
// one.
const DefaultIntervalMinutes = 60

// Slots expands the daily open window into an ordered list of HH:MM times:
// every multiple of intervalMinutes starting at the window start, including
// the end only when it lands exactly on a multiple. Calling it twice with the
// same inputs yields an identical list.
func Slots(av domain.Availability, intervalMinutes int) ([]string, error) {
	if intervalMinutes <= 0 {
		intervalMinutes = DefaultIntervalMinutes
	}

	start, err := domain.ParseClock(av.Hours.Start)
	if err != nil {
		return nil, err
	}
	end, err := domain.ParseClock(av.Hours.End)
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, (end-start)/intervalMinutes+1)
	for m := start; m <= end; m += intervalMinutes {
		out = append(out, domain.FormatClock(m))
	}
	return out, nil
}

// Contains reports whether t is one of the generated slots.
func Contains(slots []string, t string) bool {
	for _, s := range slots {
		if s == t {
			return true
		}
	}
	return false
}
