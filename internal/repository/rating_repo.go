package repository

import (
	"context"

	"salonbook/internal/domain"

	"gorm.io/gorm"
)

type RatingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) *RatingRepository {
	return &RatingRepository{db: db}
}

func (r *RatingRepository) Insert(ctx context.Context, rating *domain.Rating) error {
	return r.db.WithContext(ctx).Create(rating).Error
}

// AverageAndCountFor scans every rating for the stylist in one query. A full
// scan-and-average rather than an incremental running mean: no drift, and the
// per-stylist row count stays small.
func (r *RatingRepository) AverageAndCountFor(ctx context.Context, stylistID int64) (float64, int64, error) {
	var row struct {
		Avg float64
		Cnt int64
	}

	err := r.db.WithContext(ctx).
		Model(&domain.Rating{}).
		Select("COALESCE(AVG(value), 0) AS avg, COUNT(*) AS cnt").
		Where("stylist_id = ?", stylistID).
		Scan(&row).Error
	if err != nil {
		return 0, 0, err
	}
	return row.Avg, row.Cnt, nil
}
