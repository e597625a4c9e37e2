package services

import (
	"context"
	"errors"
	"fmt"

	"crossroads-renthub/internal/adapters/persistence/repositories"
	"crossroads-renthub/internal/core/domain"
	"crossroads-renthub/internal/pkg/lockmap"

	"gorm.io/gorm"
)

// Occupancy errors
var (
	ErrHouseNotFound = fmt.Errorf("house %w", domain.ErrNotFound)
)

// OccupancyService maintains the house occupancy invariant: a house is
// occupied iff at least one tenant with active status references it.
// All occupancy writes in the process go through this service, serialized
// per house.
type OccupancyService struct {
	houseRepo  *repositories.HouseRepository
	tenantRepo *repositories.TenantRepository
	locks      *lockmap.LockMap
}

// NewOccupancyService creates a new occupancy service
func NewOccupancyService(
	houseRepo *repositories.HouseRepository,
	tenantRepo *repositories.TenantRepository,
) *OccupancyService {
	return &OccupancyService{
		houseRepo:  houseRepo,
		tenantRepo: tenantRepo,
		locks:      lockmap.New(),
	}
}

func houseKey(houseID uint) string {
	return fmt.Sprintf("house:%d", houseID)
}

// Resync recounts the house's active tenants and persists the derived flag
// only when it changed. Safe to call repeatedly.
func (s *OccupancyService) Resync(ctx context.Context, houseID uint) error {
	s.locks.Lock(houseKey(houseID))
	defer s.locks.Unlock(houseKey(houseID))

	house, err := s.houseRepo.GetByID(ctx, houseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrHouseNotFound
		}
		return err
	}

	active, err := s.tenantRepo.CountActiveByHouse(ctx, houseID)
	if err != nil {
		return err
	}

	occupied := active > 0
	if house.IsOccupied == occupied {
		return nil
	}
	return s.houseRepo.SetOccupied(ctx, houseID, occupied)
}

// MarkOccupied forces the house occupied without a recount. A payment for a
// tenant of the house implies active tenancy.
func (s *OccupancyService) MarkOccupied(ctx context.Context, houseID uint) error {
	s.locks.Lock(houseKey(houseID))
	defer s.locks.Unlock(houseKey(houseID))

	house, err := s.houseRepo.GetByID(ctx, houseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrHouseNotFound
		}
		return err
	}

	if house.IsOccupied {
		return nil
	}
	return s.houseRepo.SetOccupied(ctx, houseID, true)
}
