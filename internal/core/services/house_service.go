package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"crossroads-renthub/internal/adapters/persistence/models"
	"crossroads-renthub/internal/adapters/persistence/repositories"
	"crossroads-renthub/internal/core/domain"
	"crossroads-renthub/internal/pkg/pagination"

	"gorm.io/gorm"
)

// House service errors
var (
	ErrLandlordNotFound   = fmt.Errorf("landlord %w", domain.ErrNotFound)
	ErrNonPositivePrice   = fmt.Errorf("%w: house price must be positive", domain.ErrValidation)
	ErrLocationRequired   = fmt.Errorf("%w: house location is required", domain.ErrValidation)
	ErrHouseStillOccupied = fmt.Errorf("%w: house has active tenants", domain.ErrValidation)
)

// HouseService manages the house inventory. Occupancy is never set here
// directly; it is owned by the occupancy synchronizer.
type HouseService struct {
	houseRepo    *repositories.HouseRepository
	tenantRepo   *repositories.TenantRepository
	landlordRepo *repositories.LandlordRepository
	occupancy    *OccupancyService
}

// NewHouseService creates a new house service
func NewHouseService(
	houseRepo *repositories.HouseRepository,
	tenantRepo *repositories.TenantRepository,
	landlordRepo *repositories.LandlordRepository,
	occupancy *OccupancyService,
) *HouseService {
	return &HouseService{
		houseRepo:    houseRepo,
		tenantRepo:   tenantRepo,
		landlordRepo: landlordRepo,
		occupancy:    occupancy,
	}
}

// CreateHouseInput represents create house input
type CreateHouseInput struct {
	Name                   string `json:"name"`
	Price                  int64  `json:"price"`
	Location               string `json:"location"`
	Model                  string `json:"model,omitempty"`
	ElectricityMeterNumber string `json:"electricity_meter_number,omitempty"`
	WaterMeterNumber       string `json:"water_meter_number,omitempty"`
	Bedrooms               uint   `json:"bedrooms,omitempty"`
	Bathrooms              uint   `json:"bathrooms,omitempty"`
	SquareFootage          *uint  `json:"square_footage,omitempty"`
	Description            string `json:"description,omitempty"`
	Amenities              string `json:"amenities,omitempty"`
	LandlordID             *uint  `json:"landlord_id,omitempty"`
}

// Create creates a house
func (s *HouseService) Create(ctx context.Context, input *CreateHouseInput) (*models.House, error) {
	if input.Price <= 0 {
		return nil, ErrNonPositivePrice
	}
	if input.Location == "" {
		return nil, ErrLocationRequired
	}
	if input.LandlordID != nil {
		if _, err := s.landlordRepo.GetByID(ctx, *input.LandlordID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrLandlordNotFound
			}
			return nil, err
		}
	}

	house := &models.House{
		Name:                   input.Name,
		Price:                  input.Price,
		Location:               input.Location,
		Model:                  input.Model,
		ElectricityMeterNumber: input.ElectricityMeterNumber,
		WaterMeterNumber:       input.WaterMeterNumber,
		Bedrooms:               input.Bedrooms,
		Bathrooms:              input.Bathrooms,
		SquareFootage:          input.SquareFootage,
		Description:            input.Description,
		Amenities:              input.Amenities,
		IsActive:               true,
		LandlordID:             input.LandlordID,
	}
	if house.Name == "" {
		house.Name = "Unnamed Property"
	}
	if house.Model == "" {
		house.Model = models.HouseTypeApartment
	}
	if house.Bedrooms == 0 {
		house.Bedrooms = 1
	}
	if house.Bathrooms == 0 {
		house.Bathrooms = 1
	}

	if err := s.houseRepo.Create(ctx, house); err != nil {
		return nil, err
	}
	return house, nil
}

// UpdateHouseInput represents update house input; nil fields are unchanged.
// IsOccupied is deliberately absent.
type UpdateHouseInput struct {
	Name                   *string `json:"name,omitempty"`
	Price                  *int64  `json:"price,omitempty"`
	Location               *string `json:"location,omitempty"`
	Model                  *string `json:"model,omitempty"`
	ElectricityMeterNumber *string `json:"electricity_meter_number,omitempty"`
	WaterMeterNumber       *string `json:"water_meter_number,omitempty"`
	Bedrooms               *uint   `json:"bedrooms,omitempty"`
	Bathrooms              *uint   `json:"bathrooms,omitempty"`
	SquareFootage          *uint   `json:"square_footage,omitempty"`
	Description            *string `json:"description,omitempty"`
	Amenities              *string `json:"amenities,omitempty"`
	IsActive               *bool   `json:"is_active,omitempty"`
	LandlordID             *uint   `json:"landlord_id,omitempty"`
}

// Update applies a partial update to a house
func (s *HouseService) Update(ctx context.Context, id uint, input *UpdateHouseInput) (*models.House, error) {
	house, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Price != nil {
		if *input.Price <= 0 {
			return nil, ErrNonPositivePrice
		}
		house.Price = *input.Price
	}
	if input.Location != nil {
		if *input.Location == "" {
			return nil, ErrLocationRequired
		}
		house.Location = *input.Location
	}
	if input.LandlordID != nil {
		if _, err := s.landlordRepo.GetByID(ctx, *input.LandlordID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrLandlordNotFound
			}
			return nil, err
		}
		house.LandlordID = input.LandlordID
	}
	if input.Name != nil {
		house.Name = *input.Name
	}
	if input.Model != nil {
		house.Model = *input.Model
	}
	if input.ElectricityMeterNumber != nil {
		house.ElectricityMeterNumber = *input.ElectricityMeterNumber
	}
	if input.WaterMeterNumber != nil {
		house.WaterMeterNumber = *input.WaterMeterNumber
	}
	if input.Bedrooms != nil {
		house.Bedrooms = *input.Bedrooms
	}
	if input.Bathrooms != nil {
		house.Bathrooms = *input.Bathrooms
	}
	if input.SquareFootage != nil {
		house.SquareFootage = input.SquareFootage
	}
	if input.Description != nil {
		house.Description = *input.Description
	}
	if input.Amenities != nil {
		house.Amenities = *input.Amenities
	}
	if input.IsActive != nil {
		house.IsActive = *input.IsActive
	}

	if err := s.houseRepo.Update(ctx, house); err != nil {
		return nil, err
	}
	return house, nil
}

// Delete removes a house. Tenants still pointing at it are detached first
// so their records survive with no assigned house.
func (s *HouseService) Delete(ctx context.Context, id uint) error {
	house, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	active, err := s.tenantRepo.CountActiveByHouse(ctx, house.ID)
	if err != nil {
		return err
	}
	if active > 0 {
		return ErrHouseStillOccupied
	}

	if err := s.tenantRepo.ClearHouseRefs(ctx, house.ID); err != nil {
		log.Printf("⚠️ Failed to detach tenants from house %d: %v", house.ID, err)
	}
	return s.houseRepo.Delete(ctx, house.ID)
}

// GetByID gets a house by ID
func (s *HouseService) GetByID(ctx context.Context, id uint) (*models.House, error) {
	house, err := s.houseRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHouseNotFound
		}
		return nil, err
	}
	return house, nil
}

// ListHousesOutput represents list houses output
type ListHousesOutput struct {
	Houses     []*models.House `json:"houses"`
	Total      int64           `json:"total"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"total_pages"`
}

// List lists houses
func (s *HouseService) List(ctx context.Context, page, limit int) (*ListHousesOutput, error) {
	p := pagination.Normalize(page, limit)
	houses, total, err := s.houseRepo.List(ctx, p.Offset, p.Limit)
	if err != nil {
		return nil, err
	}

	return &ListHousesOutput{
		Houses:     houses,
		Total:      total,
		Page:       p.Page,
		Limit:      p.Limit,
		TotalPages: pagination.Pages(total, p.Limit),
	}, nil
}

// Resync recomputes a house's occupancy flag from its active tenants
func (s *HouseService) Resync(ctx context.Context, id uint) (*models.House, error) {
	if err := s.occupancy.Resync(ctx, id); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id)
}
