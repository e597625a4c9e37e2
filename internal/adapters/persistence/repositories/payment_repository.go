package repositories

import (
	"context"

	"crossroads-renthub/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// PaymentRepository handles payment ledger data access.
//
// Payment history ordering is part of the ledger contract: payment_date
// descending with id descending as the tie-break, so the most recently
// inserted record wins on equal dates.
type PaymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// Create appends a new payment record
func (r *PaymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

// GetByID gets a payment by ID with tenant preloaded
func (r *PaymentRepository) GetByID(ctx context.Context, id uint) (*models.Payment, error) {
	var payment models.Payment
	err := r.db.WithContext(ctx).
		Preload("Tenant").
		First(&payment, id).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

// ListByTenant lists a tenant's payments in ledger order
func (r *PaymentRepository) ListByTenant(ctx context.Context, tenantID uint) ([]*models.Payment, error) {
	var payments []*models.Payment
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("payment_date DESC, id DESC").
		Find(&payments).Error
	return payments, err
}

// List lists all payments in ledger order with pagination
func (r *PaymentRepository) List(ctx context.Context, offset, limit int) ([]*models.Payment, int64, error) {
	var payments []*models.Payment
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Payment{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Preload("Tenant").
		Order("payment_date DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&payments).Error

	return payments, total, err
}

// LastForTenant returns the tenant's most recent payment in ledger order,
// or nil when the tenant has no payment history.
func (r *PaymentRepository) LastForTenant(ctx context.Context, tenantID uint) (*models.Payment, error) {
	var payment models.Payment
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("payment_date DESC, id DESC").
		First(&payment).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &payment, nil
}

// Totals holds aggregate sums over a payment subset
type Totals struct {
	TotalPaid        int64
	TotalBalance     int64
	TotalOverpayment int64
}

// SumAll sums paid/balance/overpayment over all payments
func (r *PaymentRepository) SumAll(ctx context.Context) (*Totals, error) {
	return r.sum(ctx, r.db.WithContext(ctx).Model(&models.Payment{}))
}

// SumByTenant sums paid/balance/overpayment over one tenant's payments
func (r *PaymentRepository) SumByTenant(ctx context.Context, tenantID uint) (*Totals, error) {
	return r.sum(ctx, r.db.WithContext(ctx).Model(&models.Payment{}).Where("tenant_id = ?", tenantID))
}

func (r *PaymentRepository) sum(_ context.Context, q *gorm.DB) (*Totals, error) {
	var totals Totals
	err := q.Select(
		"COALESCE(SUM(amount_paid), 0) AS total_paid, " +
			"COALESCE(SUM(balance_due), 0) AS total_balance, " +
			"COALESCE(SUM(overpayment), 0) AS total_overpayment",
	).Scan(&totals).Error
	if err != nil {
		return nil, err
	}
	return &totals, nil
}

// CountByTenant counts a tenant's payments
func (r *PaymentRepository) CountByTenant(ctx context.Context, tenantID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Payment{}).
		Where("tenant_id = ?", tenantID).
		Count(&count).Error
	return count, err
}
