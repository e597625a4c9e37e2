package repositories

import (
	"context"
	"time"

	"crossroads-renthub/internal/adapters/persistence/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TenantRepository handles tenant data access
type TenantRepository struct {
	db *gorm.DB
}

// NewTenantRepository creates a new tenant repository
func NewTenantRepository(db *gorm.DB) *TenantRepository {
	return &TenantRepository{db: db}
}

// Create creates a new tenant
func (r *TenantRepository) Create(ctx context.Context, tenant *models.Tenant) error {
	return r.db.WithContext(ctx).Create(tenant).Error
}

// GetByID gets a tenant by ID with house preloaded
func (r *TenantRepository) GetByID(ctx context.Context, id uint) (*models.Tenant, error) {
	var tenant models.Tenant
	err := r.db.WithContext(ctx).
		Preload("House").
		First(&tenant, id).Error
	if err != nil {
		return nil, err
	}
	return &tenant, nil
}

// GetByUserID resolves the tenant profile owned by an authentication principal
func (r *TenantRepository) GetByUserID(ctx context.Context, userID uint) (*models.Tenant, error) {
	var tenant models.Tenant
	err := r.db.WithContext(ctx).
		Preload("House").
		Where("user_id = ?", userID).
		First(&tenant).Error
	if err != nil {
		return nil, err
	}
	return &tenant, nil
}

// List lists tenants ordered by name with pagination
func (r *TenantRepository) List(ctx context.Context, offset, limit int) ([]*models.Tenant, int64, error) {
	var tenants []*models.Tenant
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Tenant{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Preload("House").
		Order("name ASC").
		Offset(offset).
		Limit(limit).
		Find(&tenants).Error

	return tenants, total, err
}

// Update persists a tenant's own columns. Associations are omitted so a
// stale preloaded House cannot re-write house_id after an unassign or move.
func (r *TenantRepository) Update(ctx context.Context, tenant *models.Tenant) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(tenant).Error
}

// Delete hard deletes a tenant. Payments cascade; the house reference on the
// record itself is already severed by the store-level constraint.
func (r *TenantRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Tenant{}, id).Error
}

// CountActiveByHouse counts tenants with active status referencing a house
func (r *TenantRepository) CountActiveByHouse(ctx context.Context, houseID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Tenant{}).
		Where("house_id = ? AND status = ?", houseID, "active").
		Count(&count).Error
	return count, err
}

// Count counts all tenants
func (r *TenantRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Tenant{}).Count(&count).Error
	return count, err
}

// ListExpiringLeases lists tenants whose lease ends within [from, to]
func (r *TenantRepository) ListExpiringLeases(ctx context.Context, from, to time.Time) ([]*models.Tenant, error) {
	var tenants []*models.Tenant
	err := r.db.WithContext(ctx).
		Preload("House").
		Where("status = ?", "active").
		Where("lease_end_date IS NOT NULL").
		Where("lease_end_date BETWEEN ? AND ?", from, to).
		Find(&tenants).Error
	return tenants, err
}

// ClearHouseRefs nulls the house reference on all tenants of a house
func (r *TenantRepository) ClearHouseRefs(ctx context.Context, houseID uint) error {
	return r.db.WithContext(ctx).
		Model(&models.Tenant{}).
		Where("house_id = ?", houseID).
		Update("house_id", nil).Error
}
