package repositories

import (
	"context"

	"crossroads-renthub/internal/adapters/persistence/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// HouseRepository handles house data access
type HouseRepository struct {
	db *gorm.DB
}

// NewHouseRepository creates a new house repository
func NewHouseRepository(db *gorm.DB) *HouseRepository {
	return &HouseRepository{db: db}
}

// Create creates a new house
func (r *HouseRepository) Create(ctx context.Context, house *models.House) error {
	return r.db.WithContext(ctx).Create(house).Error
}

// GetByID gets a house by ID with landlord preloaded
func (r *HouseRepository) GetByID(ctx context.Context, id uint) (*models.House, error) {
	var house models.House
	err := r.db.WithContext(ctx).
		Preload("Landlord").
		First(&house, id).Error
	if err != nil {
		return nil, err
	}
	return &house, nil
}

// List lists houses ordered by name with pagination
func (r *HouseRepository) List(ctx context.Context, offset, limit int) ([]*models.House, int64, error) {
	var houses []*models.House
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.House{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Preload("Landlord").
		Order("name ASC").
		Offset(offset).
		Limit(limit).
		Find(&houses).Error

	return houses, total, err
}

// Update persists a house's own columns, leaving preloaded associations alone
func (r *HouseRepository) Update(ctx context.Context, house *models.House) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(house).Error
}

// SetOccupied writes the derived occupancy flag as a single column update
func (r *HouseRepository) SetOccupied(ctx context.Context, id uint, occupied bool) error {
	return r.db.WithContext(ctx).
		Model(&models.House{}).
		Where("id = ?", id).
		Update("is_occupied", occupied).Error
}

// Delete hard deletes a house
func (r *HouseRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.House{}, id).Error
}

// Count counts all houses
func (r *HouseRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.House{}).Count(&count).Error
	return count, err
}

// CountByLandlord counts a landlord's houses, optionally by occupancy
func (r *HouseRepository) CountByLandlord(ctx context.Context, landlordID uint, occupied *bool) (int64, error) {
	var count int64
	q := r.db.WithContext(ctx).Model(&models.House{}).Where("landlord_id = ?", landlordID)
	if occupied != nil {
		q = q.Where("is_occupied = ?", *occupied)
	}
	err := q.Count(&count).Error
	return count, err
}

// CountOccupied counts houses by occupancy flag
func (r *HouseRepository) CountOccupied(ctx context.Context, occupied bool) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.House{}).
		Where("is_occupied = ?", occupied).
		Count(&count).Error
	return count, err
}
