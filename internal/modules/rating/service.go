package rating

import (
	"context"
	"errors"
	"fmt"
	"math"

	"salonbook/internal/domain"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service struct {
	ratings  RatingStore
	stylists StylistStore
	log      *zap.Logger
}

func NewService(ratings RatingStore, stylists StylistStore, log *zap.Logger) *Service {
	return &Service{
		ratings:  ratings,
		stylists: stylists,
		log:      log,
	}
}

// Submit persists the rating and recomputes the stylist's aggregate. A nil
// customerID records the guest sentinel so the row still names an identity.
// If the rating committed but the recompute failed the aggregate is stale,
// which is logged and reported as ErrAggregateStale rather than rolled back:
// Recompute repairs it at any later point.
func (s *Service) Submit(ctx context.Context, stylistID int64, customerID *int64, value float64) (*domain.Rating, error) {
	if value < 0 || value > 5 {
		return nil, ErrValidation
	}

	if _, err := s.stylists.GetByID(ctx, stylistID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	cid := domain.GuestCustomerID
	if customerID != nil {
		cid = *customerID
	}

	r := &domain.Rating{
		StylistID:  stylistID,
		CustomerID: cid,
		Value:      value,
	}
	if err := s.ratings.Insert(ctx, r); err != nil {
		return nil, err
	}

	if _, _, err := s.Recompute(ctx, stylistID); err != nil {
		s.log.Error("rating committed but aggregate writeback failed",
			zap.Int64("stylist_id", stylistID),
			zap.Error(err),
		)
		return r, fmt.Errorf("%w: %v", ErrAggregateStale, err)
	}
	return r, nil
}

// Recompute re-derives the aggregate from every rating row for the stylist
// and writes it back. Idempotent: safe to run any number of times, including
// as repair after a partial Submit.
func (s *Service) Recompute(ctx context.Context, stylistID int64) (float64, int64, error) {
	avg, count, err := s.ratings.AverageAndCountFor(ctx, stylistID)
	if err != nil {
		return 0, 0, err
	}

	rounded := math.Round(avg*100) / 100

	if err := s.stylists.UpdateAggregate(ctx, stylistID, rounded, count); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, 0, ErrNotFound
		}
		return 0, 0, err
	}
	return rounded, count, nil
}
