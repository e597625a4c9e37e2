package repositories

import (
	"context"

	"crossroads-renthub/internal/adapters/persistence/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MaintenanceRepository handles maintenance request data access
type MaintenanceRepository struct {
	db *gorm.DB
}

// NewMaintenanceRepository creates a new maintenance repository
func NewMaintenanceRepository(db *gorm.DB) *MaintenanceRepository {
	return &MaintenanceRepository{db: db}
}

// Create creates a new maintenance request
func (r *MaintenanceRepository) Create(ctx context.Context, req *models.MaintenanceRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

// GetByID gets a maintenance request by ID with tenant preloaded
func (r *MaintenanceRepository) GetByID(ctx context.Context, id uint) (*models.MaintenanceRequest, error) {
	var req models.MaintenanceRequest
	err := r.db.WithContext(ctx).
		Preload("Tenant").
		First(&req, id).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// List lists maintenance requests newest first with pagination
func (r *MaintenanceRepository) List(ctx context.Context, offset, limit int) ([]*models.MaintenanceRequest, int64, error) {
	var reqs []*models.MaintenanceRequest
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.MaintenanceRequest{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Preload("Tenant").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&reqs).Error

	return reqs, total, err
}

// ListByTenant lists a tenant's maintenance requests newest first
func (r *MaintenanceRepository) ListByTenant(ctx context.Context, tenantID uint) ([]*models.MaintenanceRequest, error) {
	var reqs []*models.MaintenanceRequest
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("created_at DESC").
		Find(&reqs).Error
	return reqs, err
}

// Update persists a request's own columns, leaving preloaded associations alone
func (r *MaintenanceRepository) Update(ctx context.Context, req *models.MaintenanceRequest) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(req).Error
}

// DeviceRepository handles push device registration data access
type DeviceRepository struct {
	db *gorm.DB
}

// NewDeviceRepository creates a new device repository
func NewDeviceRepository(db *gorm.DB) *DeviceRepository {
	return &DeviceRepository{db: db}
}

// Upsert registers a push token for a user, replacing any previous token
func (r *DeviceRepository) Upsert(ctx context.Context, userID uint, token string) error {
	device := &models.Device{UserID: userID, ExpoPushToken: token}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"expo_push_token"}),
		}).
		Create(device).Error
}

// GetByUserID gets the device registered for a user
func (r *DeviceRepository) GetByUserID(ctx context.Context, userID uint) (*models.Device, error) {
	var device models.Device
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&device).Error
	if err != nil {
		return nil, err
	}
	return &device, nil
}
