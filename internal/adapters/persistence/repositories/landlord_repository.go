package repositories

import (
	"context"

	"crossroads-renthub/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// LandlordRepository handles landlord data access
type LandlordRepository struct {
	db *gorm.DB
}

// NewLandlordRepository creates a new landlord repository
func NewLandlordRepository(db *gorm.DB) *LandlordRepository {
	return &LandlordRepository{db: db}
}

// Create creates a new landlord
func (r *LandlordRepository) Create(ctx context.Context, landlord *models.Landlord) error {
	return r.db.WithContext(ctx).Create(landlord).Error
}

// GetByID gets a landlord by ID
func (r *LandlordRepository) GetByID(ctx context.Context, id uint) (*models.Landlord, error) {
	var landlord models.Landlord
	err := r.db.WithContext(ctx).First(&landlord, id).Error
	if err != nil {
		return nil, err
	}
	return &landlord, nil
}

// List lists landlords ordered by name with pagination
func (r *LandlordRepository) List(ctx context.Context, offset, limit int) ([]*models.Landlord, int64, error) {
	var landlords []*models.Landlord
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Landlord{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Order("name ASC").
		Offset(offset).
		Limit(limit).
		Find(&landlords).Error

	return landlords, total, err
}

// Update updates a landlord
func (r *LandlordRepository) Update(ctx context.Context, landlord *models.Landlord) error {
	return r.db.WithContext(ctx).Save(landlord).Error
}

// Delete hard deletes a landlord. Houses survive with the reference cleared.
func (r *LandlordRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Landlord{}, id).Error
}
