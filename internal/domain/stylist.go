package domain

import "time"

// Service is a treatment a stylist offers. Services live embedded on their
// stylist and have no identity of their own; bookings reference them by name
// and price/duration are always read from the current list.
type Service struct {
	Name            string  `json:"name"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"duration_minutes"`
	Description     string  `json:"description,omitempty"`
}

type Stylist struct {
	ID           int64        `json:"id"`
	Name         string       `json:"name"`
	Email        string       `json:"email" gorm:"uniqueIndex"`
	Phone        string       `json:"phone,omitempty"`
	Bio          string       `json:"bio,omitempty"`
	Specialties  []string     `json:"specialties,omitempty" gorm:"serializer:json"`
	Services     []Service    `json:"services" gorm:"serializer:json"`
	Availability Availability `json:"availability" gorm:"serializer:json"`
	ImageURL     string       `json:"image_url,omitempty"`
	Location     string       `json:"location,omitempty"`

	// Rating and ReviewCount are derived from the ratings table. The only
	// write path is StylistRepository.UpdateAggregate; profile updates omit
	// both columns.
	Rating      float64 `json:"rating"`
	ReviewCount int64   `json:"review_count"`

	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *Stylist) ServiceByName(name string) (Service, bool) {
	for _, svc := range s.Services {
		if svc.Name == name {
			return svc, true
		}
	}
	return Service{}, false
}
