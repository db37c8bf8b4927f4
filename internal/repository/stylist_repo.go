package repository

import (
	"context"

	"salonbook/internal/domain"

	"gorm.io/gorm"
)

type StylistFilters struct {
	Specialty string
	Limit     int
	Offset    int
}

type StylistRepository struct {
	db *gorm.DB
}

func NewStylistRepository(db *gorm.DB) *StylistRepository {
	return &StylistRepository{db: db}
}

func (r *StylistRepository) GetAll(ctx context.Context, f StylistFilters) ([]domain.Stylist, int64, error) {
	var stylists []domain.Stylist
	var total int64

	q := r.db.WithContext(ctx).
		Model(&domain.Stylist{}).
		Where("is_active = ?", true)

	if f.Specialty != "" {
		q = q.Where("specialties LIKE ?", "%"+f.Specialty+"%")
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Order("id ASC").Limit(f.Limit).Offset(f.Offset).Find(&stylists).Error
	return stylists, total, err
}

func (r *StylistRepository) GetByID(ctx context.Context, id int64) (*domain.Stylist, error) {
	var s domain.Stylist
	if err := r.db.WithContext(ctx).First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *StylistRepository) Create(ctx context.Context, s *domain.Stylist) error {
	return r.db.WithContext(ctx).Create(s).Error
}

// Update writes the profile but never the derived aggregate: rating and
// review_count stay whatever the aggregator last computed.
func (r *StylistRepository) Update(ctx context.Context, s *domain.Stylist) error {
	return r.db.WithContext(ctx).
		Model(s).
		Omit("rating", "review_count", "created_at").
		Select("*").
		Updates(s).Error
}

// UpdateAggregate is the sole write path for the derived rating fields.
func (r *StylistRepository) UpdateAggregate(ctx context.Context, id int64, rating float64, reviewCount int64) error {
	tx := r.db.WithContext(ctx).
		Model(&domain.Stylist{}).
		Where("id = ?", id).
		Updates(map[string]any{"rating": rating, "review_count": reviewCount})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
