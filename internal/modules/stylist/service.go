package stylist

import (
	"context"
	"errors"
	"strings"

	"salonbook/internal/domain"
	"salonbook/internal/repository"

	"gorm.io/gorm"
)

// StylistStore is the catalog's view of the stylist repository. Note the
// absence of UpdateAggregate: the catalog cannot touch the derived rating
// fields, and the repository's Update omits their columns besides.
type StylistStore interface {
	GetAll(ctx context.Context, f repository.StylistFilters) ([]domain.Stylist, int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Stylist, error)
	Create(ctx context.Context, s *domain.Stylist) error
	Update(ctx context.Context, s *domain.Stylist) error
}

type Service struct {
	stylists StylistStore
}

func NewService(stylists StylistStore) *Service {
	return &Service{stylists: stylists}
}

func (s *Service) List(ctx context.Context, f repository.StylistFilters) ([]domain.Stylist, int64, error) {
	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 20
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	return s.stylists.GetAll(ctx, f)
}

func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Stylist, error) {
	stylist, err := s.stylists.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return stylist, nil
}

func (s *Service) Create(ctx context.Context, req CreateStylistRequest) (*domain.Stylist, error) {
	if err := validateProfile(req); err != nil {
		return nil, err
	}

	stylist := &domain.Stylist{
		Name:         strings.TrimSpace(req.Name),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:        req.Phone,
		Bio:          req.Bio,
		Specialties:  req.Specialties,
		Services:     req.Services,
		Availability: req.Availability,
		ImageURL:     req.ImageURL,
		Location:     req.Location,
		IsActive:     true,
	}

	if err := s.stylists.Create(ctx, stylist); err != nil {
		return nil, err
	}
	return stylist, nil
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateStylistRequest) (*domain.Stylist, error) {
	if err := validateProfile(req); err != nil {
		return nil, err
	}

	stylist, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	stylist.Name = strings.TrimSpace(req.Name)
	stylist.Email = strings.ToLower(strings.TrimSpace(req.Email))
	stylist.Phone = req.Phone
	stylist.Bio = req.Bio
	stylist.Specialties = req.Specialties
	stylist.Services = req.Services
	stylist.Availability = req.Availability
	stylist.ImageURL = req.ImageURL
	stylist.Location = req.Location

	if err := s.stylists.Update(ctx, stylist); err != nil {
		return nil, err
	}
	return stylist, nil
}

// UpdateAvailability is the write path where InvalidAvailability is enforced;
// reads trust what was stored.
func (s *Service) UpdateAvailability(ctx context.Context, id int64, av domain.Availability) (*domain.Stylist, error) {
	if err := av.Validate(); err != nil {
		return nil, err
	}

	stylist, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	stylist.Availability = av
	if err := s.stylists.Update(ctx, stylist); err != nil {
		return nil, err
	}
	return stylist, nil
}

// Deactivate is the soft delete: the stylist drops out of listings and stops
// taking bookings but keeps their history.
func (s *Service) Deactivate(ctx context.Context, id int64) error {
	stylist, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	stylist.IsActive = false
	return s.stylists.Update(ctx, stylist)
}

func validateProfile(req CreateStylistRequest) error {
	if err := req.Availability.Validate(); err != nil {
		return err
	}

	for _, svc := range req.Services {
		if strings.TrimSpace(svc.Name) == "" {
			return ErrValidation
		}
		if svc.Price < 0 {
			return ErrValidation
		}
		if svc.DurationMinutes <= 0 {
			return ErrValidation
		}
	}
	return nil
}
