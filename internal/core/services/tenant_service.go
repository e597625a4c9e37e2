package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"crossroads-renthub/internal/adapters/persistence/models"
	"crossroads-renthub/internal/adapters/persistence/repositories"
	"crossroads-renthub/internal/core/domain"
	"crossroads-renthub/internal/pkg/pagination"

	"gorm.io/gorm"
)

// Tenant service errors
var (
	ErrInvalidTenantStatus = fmt.Errorf("%w: unknown tenant status", domain.ErrValidation)
	ErrTenantNameRequired  = fmt.Errorf("%w: tenant name is required", domain.ErrValidation)
	ErrInvalidLeaseWindow  = fmt.Errorf("%w: lease start date must be before lease end date", domain.ErrValidation)
	ErrHouseIDRequired     = fmt.Errorf("%w: house id is required", domain.ErrValidation)
)

// TenantService manages tenant records. Every mutation that can change
// which houses hold active tenants ends with an occupancy resync of the
// affected house(s).
type TenantService struct {
	tenantRepo *repositories.TenantRepository
	houseRepo  *repositories.HouseRepository
	occupancy  *OccupancyService
}

// NewTenantService creates a new tenant service
func NewTenantService(
	tenantRepo *repositories.TenantRepository,
	houseRepo *repositories.HouseRepository,
	occupancy *OccupancyService,
) *TenantService {
	return &TenantService{
		tenantRepo: tenantRepo,
		houseRepo:  houseRepo,
		occupancy:  occupancy,
	}
}

// CreateTenantInput represents create tenant input
type CreateTenantInput struct {
	UserID                *uint      `json:"user_id,omitempty"`
	Name                  string     `json:"name"`
	Phone                 string     `json:"phone"`
	Email                 string     `json:"email"`
	NationalID            string     `json:"national_id,omitempty"`
	HouseID               *uint      `json:"house_id,omitempty"`
	Status                string     `json:"status,omitempty"`
	LeaseStartDate        *time.Time `json:"lease_start_date,omitempty"`
	LeaseEndDate          *time.Time `json:"lease_end_date,omitempty"`
	EmergencyContactName  string     `json:"emergency_contact_name,omitempty"`
	EmergencyContactPhone string     `json:"emergency_contact_phone,omitempty"`
	Occupation            string     `json:"occupation,omitempty"`
	Employer              string     `json:"employer,omitempty"`
	MonthlyIncome         *int64     `json:"monthly_income,omitempty"`
}

func (in *CreateTenantInput) validate() error {
	if in.Name == "" {
		return ErrTenantNameRequired
	}
	if in.Status == "" {
		in.Status = string(domain.TenantActive)
	}
	if !domain.TenantStatus(in.Status).Valid() {
		return ErrInvalidTenantStatus
	}
	if in.LeaseStartDate != nil && in.LeaseEndDate != nil && !in.LeaseStartDate.Before(*in.LeaseEndDate) {
		return ErrInvalidLeaseWindow
	}
	return nil
}

// Create creates a tenant and resyncs the assigned house, if any
func (s *TenantService) Create(ctx context.Context, input *CreateTenantInput) (*models.Tenant, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	if input.HouseID != nil {
		if _, err := s.houseRepo.GetByID(ctx, *input.HouseID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrHouseNotFound
			}
			return nil, err
		}
	}

	tenant := &models.Tenant{
		UserID:                input.UserID,
		Name:                  input.Name,
		Phone:                 input.Phone,
		Email:                 input.Email,
		NationalID:            input.NationalID,
		HouseID:               input.HouseID,
		Status:                input.Status,
		LeaseStartDate:        input.LeaseStartDate,
		LeaseEndDate:          input.LeaseEndDate,
		EmergencyContactName:  input.EmergencyContactName,
		EmergencyContactPhone: input.EmergencyContactPhone,
		Occupation:            input.Occupation,
		Employer:              input.Employer,
		MonthlyIncome:         input.MonthlyIncome,
	}

	if err := s.tenantRepo.Create(ctx, tenant); err != nil {
		return nil, err
	}

	s.resync(ctx, tenant.HouseID)
	return tenant, nil
}

// UpdateTenantInput represents update tenant input; nil fields are unchanged
type UpdateTenantInput struct {
	Name                  *string    `json:"name,omitempty"`
	Phone                 *string    `json:"phone,omitempty"`
	Email                 *string    `json:"email,omitempty"`
	NationalID            *string    `json:"national_id,omitempty"`
	HouseID               *uint      `json:"house_id,omitempty"`
	ClearHouse            bool       `json:"clear_house,omitempty"`
	Status                *string    `json:"status,omitempty"`
	LeaseStartDate        *time.Time `json:"lease_start_date,omitempty"`
	LeaseEndDate          *time.Time `json:"lease_end_date,omitempty"`
	EmergencyContactName  *string    `json:"emergency_contact_name,omitempty"`
	EmergencyContactPhone *string    `json:"emergency_contact_phone,omitempty"`
	Occupation            *string    `json:"occupation,omitempty"`
	Employer              *string    `json:"employer,omitempty"`
	MonthlyIncome         *int64     `json:"monthly_income,omitempty"`
}

// Update applies a partial update and resyncs both the former and the
// new house when the assignment or status changed.
func (s *TenantService) Update(ctx context.Context, id uint, input *UpdateTenantInput) (*models.Tenant, error) {
	tenant, err := s.tenantRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTenantNotFound
		}
		return nil, err
	}

	oldHouseID := tenant.HouseID

	if input.Status != nil {
		if !domain.TenantStatus(*input.Status).Valid() {
			return nil, ErrInvalidTenantStatus
		}
		tenant.Status = *input.Status
	}
	if input.Name != nil {
		if *input.Name == "" {
			return nil, ErrTenantNameRequired
		}
		tenant.Name = *input.Name
	}
	if input.Phone != nil {
		tenant.Phone = *input.Phone
	}
	if input.Email != nil {
		tenant.Email = *input.Email
	}
	if input.NationalID != nil {
		tenant.NationalID = *input.NationalID
	}
	if input.ClearHouse {
		tenant.HouseID = nil
		tenant.House = nil
	} else if input.HouseID != nil {
		if _, err := s.houseRepo.GetByID(ctx, *input.HouseID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrHouseNotFound
			}
			return nil, err
		}
		tenant.HouseID = input.HouseID
		tenant.House = nil
	}
	if input.LeaseStartDate != nil {
		tenant.LeaseStartDate = input.LeaseStartDate
	}
	if input.LeaseEndDate != nil {
		tenant.LeaseEndDate = input.LeaseEndDate
	}
	if tenant.LeaseStartDate != nil && tenant.LeaseEndDate != nil && !tenant.LeaseStartDate.Before(*tenant.LeaseEndDate) {
		return nil, ErrInvalidLeaseWindow
	}
	if input.EmergencyContactName != nil {
		tenant.EmergencyContactName = *input.EmergencyContactName
	}
	if input.EmergencyContactPhone != nil {
		tenant.EmergencyContactPhone = *input.EmergencyContactPhone
	}
	if input.Occupation != nil {
		tenant.Occupation = *input.Occupation
	}
	if input.Employer != nil {
		tenant.Employer = *input.Employer
	}
	if input.MonthlyIncome != nil {
		tenant.MonthlyIncome = input.MonthlyIncome
	}

	if err := s.tenantRepo.Update(ctx, tenant); err != nil {
		return nil, err
	}

	// Resync both sides of a move; a single resync covers in-place changes.
	s.resync(ctx, oldHouseID)
	if !sameHouse(oldHouseID, tenant.HouseID) {
		s.resync(ctx, tenant.HouseID)
	}
	return s.GetByID(ctx, id)
}

// Deactivate flips a tenant's status to inactive, keeping the record and
// its payment history, then resyncs the house
func (s *TenantService) Deactivate(ctx context.Context, id uint) (*models.Tenant, error) {
	return s.setStatus(ctx, id, domain.TenantInactive)
}

// Activate flips a tenant's status back to active and resyncs the house
func (s *TenantService) Activate(ctx context.Context, id uint) (*models.Tenant, error) {
	return s.setStatus(ctx, id, domain.TenantActive)
}

func (s *TenantService) setStatus(ctx context.Context, id uint, status domain.TenantStatus) (*models.Tenant, error) {
	tenant, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if tenant.Status == string(status) {
		return tenant, nil
	}
	tenant.Status = string(status)

	if err := s.tenantRepo.Update(ctx, tenant); err != nil {
		return nil, err
	}

	s.resync(ctx, tenant.HouseID)
	return tenant, nil
}

// AssignHouse moves a tenant to a house. A houseID is mandatory here;
// vacating a tenant goes through UnassignHouse instead, so an empty
// request body can never silently clear an assignment. Both the previous
// and the new house are resynced.
func (s *TenantService) AssignHouse(ctx context.Context, tenantID uint, houseID *uint) (*models.Tenant, error) {
	if houseID == nil {
		return nil, ErrHouseIDRequired
	}
	if _, err := s.houseRepo.GetByID(ctx, *houseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHouseNotFound
		}
		return nil, err
	}
	return s.rebindHouse(ctx, tenantID, houseID)
}

// UnassignHouse clears a tenant's house reference and resyncs the
// vacated house.
func (s *TenantService) UnassignHouse(ctx context.Context, tenantID uint) (*models.Tenant, error) {
	return s.rebindHouse(ctx, tenantID, nil)
}

func (s *TenantService) rebindHouse(ctx context.Context, tenantID uint, houseID *uint) (*models.Tenant, error) {
	tenant, err := s.GetByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	oldHouseID := tenant.HouseID
	tenant.HouseID = houseID
	tenant.House = nil

	if err := s.tenantRepo.Update(ctx, tenant); err != nil {
		return nil, err
	}

	s.resync(ctx, oldHouseID)
	if !sameHouse(oldHouseID, houseID) {
		s.resync(ctx, houseID)
	}
	return s.GetByID(ctx, tenantID)
}

// Delete removes a tenant permanently and resyncs the vacated house
func (s *TenantService) Delete(ctx context.Context, id uint) error {
	tenant, err := s.tenantRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTenantNotFound
		}
		return err
	}

	houseID := tenant.HouseID
	if err := s.tenantRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.resync(ctx, houseID)
	return nil
}

// GetByID gets a tenant by ID
func (s *TenantService) GetByID(ctx context.Context, id uint) (*models.Tenant, error) {
	tenant, err := s.tenantRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTenantNotFound
		}
		return nil, err
	}
	return tenant, nil
}

// GetByUserID gets the tenant profile linked to a user account
func (s *TenantService) GetByUserID(ctx context.Context, userID uint) (*models.Tenant, error) {
	tenant, err := s.tenantRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTenantNotFound
		}
		return nil, err
	}
	return tenant, nil
}

// GetAssignedHouse returns the house a tenant currently rents
func (s *TenantService) GetAssignedHouse(ctx context.Context, tenantID uint) (*models.House, error) {
	tenant, err := s.GetByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if tenant.HouseID == nil {
		return nil, ErrHouseNotFound
	}
	house, err := s.houseRepo.GetByID(ctx, *tenant.HouseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHouseNotFound
		}
		return nil, err
	}
	return house, nil
}

// ListTenantsOutput represents list tenants output
type ListTenantsOutput struct {
	Tenants    []*models.Tenant `json:"tenants"`
	Total      int64            `json:"total"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	TotalPages int              `json:"total_pages"`
}

// List lists tenants
func (s *TenantService) List(ctx context.Context, page, limit int) (*ListTenantsOutput, error) {
	p := pagination.Normalize(page, limit)
	tenants, total, err := s.tenantRepo.List(ctx, p.Offset, p.Limit)
	if err != nil {
		return nil, err
	}

	return &ListTenantsOutput{
		Tenants:    tenants,
		Total:      total,
		Page:       p.Page,
		Limit:      p.Limit,
		TotalPages: pagination.Pages(total, p.Limit),
	}, nil
}

func (s *TenantService) resync(ctx context.Context, houseID *uint) {
	if houseID == nil {
		return
	}
	if err := s.occupancy.Resync(ctx, *houseID); err != nil {
		log.Printf("⚠️ Occupancy resync failed for house %d: %v", *houseID, err)
	}
}

func sameHouse(a, b *uint) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
