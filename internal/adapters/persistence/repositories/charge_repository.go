package repositories

import (
	"context"
	"time"

	"crossroads-renthub/internal/adapters/persistence/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ChargeRepository handles charge data access
type ChargeRepository struct {
	db *gorm.DB
}

// NewChargeRepository creates a new charge repository
func NewChargeRepository(db *gorm.DB) *ChargeRepository {
	return &ChargeRepository{db: db}
}

// Create appends a new charge record
func (r *ChargeRepository) Create(ctx context.Context, charge *models.Charge) error {
	return r.db.WithContext(ctx).Create(charge).Error
}

// GetByID gets a charge by ID with tenant and house preloaded
func (r *ChargeRepository) GetByID(ctx context.Context, id uint) (*models.Charge, error) {
	var charge models.Charge
	err := r.db.WithContext(ctx).
		Preload("Tenant").
		Preload("House").
		First(&charge, id).Error
	if err != nil {
		return nil, err
	}
	return &charge, nil
}

// List lists charges ordered by charge date descending with pagination
func (r *ChargeRepository) List(ctx context.Context, offset, limit int) ([]*models.Charge, int64, error) {
	var charges []*models.Charge
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Charge{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Preload("Tenant").
		Preload("House").
		Order("charge_date DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&charges).Error

	return charges, total, err
}

// ListByTenant lists a tenant's charges ordered by charge date descending
func (r *ChargeRepository) ListByTenant(ctx context.Context, tenantID uint) ([]*models.Charge, error) {
	var charges []*models.Charge
	err := r.db.WithContext(ctx).
		Preload("House").
		Where("tenant_id = ?", tenantID).
		Order("charge_date DESC, id DESC").
		Find(&charges).Error
	return charges, err
}

// ListOverdue lists unpaid charges whose due date has passed
func (r *ChargeRepository) ListOverdue(ctx context.Context, asOf time.Time) ([]*models.Charge, error) {
	var charges []*models.Charge
	err := r.db.WithContext(ctx).
		Preload("Tenant").
		Where("is_paid = ?", false).
		Where("due_date IS NOT NULL AND due_date < ?", asOf).
		Order("due_date ASC").
		Find(&charges).Error
	return charges, err
}

// Update persists a charge's own columns, leaving preloaded associations alone
func (r *ChargeRepository) Update(ctx context.Context, charge *models.Charge) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(charge).Error
}
