package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"crossroads-renthub/internal/adapters/persistence/models"
	"crossroads-renthub/internal/adapters/persistence/repositories"
	"crossroads-renthub/internal/core/domain"
	"crossroads-renthub/internal/pkg/pagination"

	"gorm.io/gorm"
)

// Charge service errors
var (
	ErrChargeNotFound     = fmt.Errorf("charge %w", domain.ErrNotFound)
	ErrInvalidChargeType  = fmt.Errorf("%w: unknown charge type", domain.ErrValidation)
	ErrNonPositiveCharge  = fmt.Errorf("%w: charge amount must be positive", domain.ErrValidation)
	ErrTenantNotHoused    = fmt.Errorf("%w: tenant has no assigned house to charge against", domain.ErrValidation)
	ErrChargeAlreadyPaid  = fmt.Errorf("%w: charge is already settled", domain.ErrValidation)
	ErrInvalidChargeDue   = fmt.Errorf("%w: due date cannot be before charge date", domain.ErrValidation)
)

// ChargeService manages one-off charges billed to tenants outside the
// rent ledger (utilities, repairs, penalties).
type ChargeService struct {
	chargeRepo *repositories.ChargeRepository
	tenantRepo *repositories.TenantRepository
	now        func() time.Time
}

// NewChargeService creates a new charge service
func NewChargeService(chargeRepo *repositories.ChargeRepository, tenantRepo *repositories.TenantRepository) *ChargeService {
	return &ChargeService{
		chargeRepo: chargeRepo,
		tenantRepo: tenantRepo,
		now:        time.Now,
	}
}

// CreateChargeInput represents create charge input
type CreateChargeInput struct {
	TenantID    uint       `json:"tenant_id"`
	ChargeType  string     `json:"charge_type"`
	Amount      int64      `json:"amount"`
	Description string     `json:"description,omitempty"`
	ChargeDate  *time.Time `json:"charge_date,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

// Create bills a charge against a tenant's current house
func (s *ChargeService) Create(ctx context.Context, input *CreateChargeInput) (*models.Charge, error) {
	if !models.ValidChargeType(input.ChargeType) {
		return nil, ErrInvalidChargeType
	}
	if input.Amount <= 0 {
		return nil, ErrNonPositiveCharge
	}

	tenant, err := s.tenantRepo.GetByID(ctx, input.TenantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTenantNotFound
		}
		return nil, err
	}
	if tenant.HouseID == nil {
		return nil, ErrTenantNotHoused
	}

	chargeDate := s.now()
	if input.ChargeDate != nil {
		chargeDate = *input.ChargeDate
	}
	if input.DueDate != nil && input.DueDate.Before(chargeDate) {
		return nil, ErrInvalidChargeDue
	}

	charge := &models.Charge{
		TenantID:    tenant.ID,
		HouseID:     *tenant.HouseID,
		ChargeType:  input.ChargeType,
		Amount:      input.Amount,
		Description: input.Description,
		ChargeDate:  chargeDate,
		DueDate:     input.DueDate,
	}

	if err := s.chargeRepo.Create(ctx, charge); err != nil {
		return nil, err
	}
	return charge, nil
}

// MarkPaid settles an outstanding charge
func (s *ChargeService) MarkPaid(ctx context.Context, id uint) (*models.Charge, error) {
	charge, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if charge.IsPaid {
		return nil, ErrChargeAlreadyPaid
	}

	paid := s.now()
	charge.IsPaid = true
	charge.PaidDate = &paid

	if err := s.chargeRepo.Update(ctx, charge); err != nil {
		return nil, err
	}
	return charge, nil
}

// GetByID gets a charge by ID
func (s *ChargeService) GetByID(ctx context.Context, id uint) (*models.Charge, error) {
	charge, err := s.chargeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChargeNotFound
		}
		return nil, err
	}
	return charge, nil
}

// ListByTenant lists a tenant's charges
func (s *ChargeService) ListByTenant(ctx context.Context, tenantID uint) ([]*models.Charge, error) {
	if _, err := s.tenantRepo.GetByID(ctx, tenantID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTenantNotFound
		}
		return nil, err
	}
	return s.chargeRepo.ListByTenant(ctx, tenantID)
}

// ListOverdue lists unpaid charges past their due date
func (s *ChargeService) ListOverdue(ctx context.Context) ([]*models.Charge, error) {
	return s.chargeRepo.ListOverdue(ctx, s.now())
}

// ListChargesOutput represents list charges output
type ListChargesOutput struct {
	Charges    []*models.Charge `json:"charges"`
	Total      int64            `json:"total"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	TotalPages int              `json:"total_pages"`
}

// List lists charges
func (s *ChargeService) List(ctx context.Context, page, limit int) (*ListChargesOutput, error) {
	p := pagination.Normalize(page, limit)
	charges, total, err := s.chargeRepo.List(ctx, p.Offset, p.Limit)
	if err != nil {
		return nil, err
	}

	return &ListChargesOutput{
		Charges:    charges,
		Total:      total,
		Page:       p.Page,
		Limit:      p.Limit,
		TotalPages: pagination.Pages(total, p.Limit),
	}, nil
}
