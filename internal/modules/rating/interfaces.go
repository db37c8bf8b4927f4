package rating

import (
	"context"

	"salonbook/internal/domain"
)

type RatingStore interface {
	Insert(ctx context.Context, r *domain.Rating) error
	AverageAndCountFor(ctx context.Context, stylistID int64) (float64, int64, error)
}

// StylistStore is the aggregator's slice of the stylist store. UpdateAggregate
// is the only write path for rating and review_count.
type StylistStore interface {
	GetByID(ctx context.Context, id int64) (*domain.Stylist, error)
	UpdateAggregate(ctx context.Context, id int64, rating float64, reviewCount int64) error
}
