package stylist

import "salonbook/internal/domain"

type CreateStylistRequest struct {
	Name         string              `json:"name" binding:"required" validate:"required,min=2,max=100"`
	Email        string              `json:"email" binding:"required" validate:"required,email"`
	Phone        string              `json:"phone"`
	Bio          string              `json:"bio"`
	Specialties  []string            `json:"specialties"`
	Services     []domain.Service    `json:"services"`
	Availability domain.Availability `json:"availability"`
	ImageURL     string              `json:"image_url"`
	Location     string              `json:"location"`
}

type UpdateStylistRequest = CreateStylistRequest

type UpdateAvailabilityRequest struct {
	Availability domain.Availability `json:"availability"`
}
