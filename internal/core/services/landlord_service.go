package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"crossroads-renthub/internal/adapters/persistence/models"
	"crossroads-renthub/internal/adapters/persistence/repositories"
	"crossroads-renthub/internal/core/domain"
	"crossroads-renthub/internal/pkg/pagination"

	"gorm.io/gorm"
)

// Landlord service errors
var (
	ErrLandlordNameRequired  = fmt.Errorf("%w: landlord name is required", domain.ErrValidation)
	ErrLandlordEmailRequired = fmt.Errorf("%w: landlord email is required", domain.ErrValidation)
	ErrLandlordEmailTaken    = fmt.Errorf("landlord email %w", domain.ErrDuplicateEntry)
)

// LandlordService manages property owners
type LandlordService struct {
	landlordRepo *repositories.LandlordRepository
	houseRepo    *repositories.HouseRepository
}

// NewLandlordService creates a new landlord service
func NewLandlordService(landlordRepo *repositories.LandlordRepository, houseRepo *repositories.HouseRepository) *LandlordService {
	return &LandlordService{
		landlordRepo: landlordRepo,
		houseRepo:    houseRepo,
	}
}

// CreateLandlordInput represents create landlord input
type CreateLandlordInput struct {
	Name    string `json:"name"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email"`
	Address string `json:"address,omitempty"`
}

// Create creates a landlord
func (s *LandlordService) Create(ctx context.Context, input *CreateLandlordInput) (*models.Landlord, error) {
	if input.Name == "" {
		return nil, ErrLandlordNameRequired
	}
	if input.Email == "" {
		return nil, ErrLandlordEmailRequired
	}

	landlord := &models.Landlord{
		Name:     input.Name,
		Phone:    input.Phone,
		Email:    strings.ToLower(input.Email),
		Address:  input.Address,
		IsActive: true,
	}

	if err := s.landlordRepo.Create(ctx, landlord); err != nil {
		if isDuplicateKeyError(err) {
			return nil, ErrLandlordEmailTaken
		}
		return nil, err
	}
	return landlord, nil
}

// UpdateLandlordInput represents update landlord input; nil fields are unchanged
type UpdateLandlordInput struct {
	Name     *string `json:"name,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Email    *string `json:"email,omitempty"`
	Address  *string `json:"address,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}

// Update applies a partial update to a landlord
func (s *LandlordService) Update(ctx context.Context, id uint, input *UpdateLandlordInput) (*models.Landlord, error) {
	landlord, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, ErrLandlordNameRequired
		}
		landlord.Name = *input.Name
	}
	if input.Email != nil {
		if *input.Email == "" {
			return nil, ErrLandlordEmailRequired
		}
		landlord.Email = strings.ToLower(*input.Email)
	}
	if input.Phone != nil {
		landlord.Phone = *input.Phone
	}
	if input.Address != nil {
		landlord.Address = *input.Address
	}
	if input.IsActive != nil {
		landlord.IsActive = *input.IsActive
	}

	if err := s.landlordRepo.Update(ctx, landlord); err != nil {
		if isDuplicateKeyError(err) {
			return nil, ErrLandlordEmailTaken
		}
		return nil, err
	}
	return landlord, nil
}

// Delete removes a landlord; their houses survive with no owner reference
func (s *LandlordService) Delete(ctx context.Context, id uint) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.landlordRepo.Delete(ctx, id)
}

// GetByID gets a landlord by ID
func (s *LandlordService) GetByID(ctx context.Context, id uint) (*models.Landlord, error) {
	landlord, err := s.landlordRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLandlordNotFound
		}
		return nil, err
	}
	return landlord, nil
}

// LandlordSummary pairs a landlord with their portfolio counts
type LandlordSummary struct {
	Landlord       *models.Landlord `json:"landlord"`
	TotalHouses    int64            `json:"total_houses"`
	OccupiedHouses int64            `json:"occupied_houses"`
}

// GetSummary returns a landlord with house occupancy counts
func (s *LandlordService) GetSummary(ctx context.Context, id uint) (*LandlordSummary, error) {
	landlord, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	total, err := s.houseRepo.CountByLandlord(ctx, id, nil)
	if err != nil {
		return nil, err
	}
	occupied := true
	occupiedCount, err := s.houseRepo.CountByLandlord(ctx, id, &occupied)
	if err != nil {
		return nil, err
	}

	return &LandlordSummary{
		Landlord:       landlord,
		TotalHouses:    total,
		OccupiedHouses: occupiedCount,
	}, nil
}

// ListLandlordsOutput represents list landlords output
type ListLandlordsOutput struct {
	Landlords  []*models.Landlord `json:"landlords"`
	Total      int64              `json:"total"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	TotalPages int                `json:"total_pages"`
}

// List lists landlords
func (s *LandlordService) List(ctx context.Context, page, limit int) (*ListLandlordsOutput, error) {
	p := pagination.Normalize(page, limit)
	landlords, total, err := s.landlordRepo.List(ctx, p.Offset, p.Limit)
	if err != nil {
		return nil, err
	}

	return &ListLandlordsOutput{
		Landlords:  landlords,
		Total:      total,
		Page:       p.Page,
		Limit:      p.Limit,
		TotalPages: pagination.Pages(total, p.Limit),
	}, nil
}
