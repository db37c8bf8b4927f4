package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidAvailability is returned when a weekly schedule is written with an
// unknown day name or a window whose start is not before its end.
var ErrInvalidAvailability = errors.New("invalid availability")

var weekdayNames = map[string]time.Weekday{
	"Monday":    time.Monday,
	"Tuesday":   time.Tuesday,
	"Wednesday": time.Wednesday,
	"Thursday":  time.Thursday,
	"Friday":    time.Friday,
	"Saturday":  time.Saturday,
	"Sunday":    time.Sunday,
}

type HourRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Availability is a stylist's weekly schedule: the days they take bookings and
// the daily open window. An empty Days list means never bookable.
type Availability struct {
	Days  []string  `json:"days"`
	Hours HourRange `json:"hours"`
}

// Validate is run whenever availability is written, not on reads.
func (a Availability) Validate() error {
	for _, d := range a.Days {
		if _, ok := weekdayNames[d]; !ok {
			return fmt.Errorf("%w: unknown day %q", ErrInvalidAvailability, d)
		}
	}

	start, err := ParseClock(a.Hours.Start)
	if err != nil {
		return fmt.Errorf("%w: start %q", ErrInvalidAvailability, a.Hours.Start)
	}
	end, err := ParseClock(a.Hours.End)
	if err != nil {
		return fmt.Errorf("%w: end %q", ErrInvalidAvailability, a.Hours.End)
	}
	if start >= end {
		return fmt.Errorf("%w: start %s is not before end %s", ErrInvalidAvailability, a.Hours.Start, a.Hours.End)
	}
	return nil
}

// IsOpenOn reports whether the stylist takes bookings on the weekday of date.
func (a Availability) IsOpenOn(date time.Time) bool {
	for _, d := range a.Days {
		if weekdayNames[d] == date.Weekday() {
			return true
		}
	}
	return false
}

// Window returns the daily open hours as HH:MM strings.
func (a Availability) Window() (start, end string) {
	return a.Hours.Start, a.Hours.End
}

// ParseClock converts an HH:MM time of day into minutes since midnight.
func ParseClock(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatClock is the inverse of ParseClock.
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
