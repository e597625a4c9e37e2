package repositories

import (
	"context"

	"crossroads-renthub/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// DocumentRepository handles document metadata data access. The file bytes
// themselves live in external storage owned by the surrounding layers.
type DocumentRepository struct {
	db *gorm.DB
}

// NewDocumentRepository creates a new document repository
func NewDocumentRepository(db *gorm.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

// Create creates a new document record
func (r *DocumentRepository) Create(ctx context.Context, doc *models.Document) error {
	return r.db.WithContext(ctx).Create(doc).Error
}

// GetByID gets a document by ID
func (r *DocumentRepository) GetByID(ctx context.Context, id uint) (*models.Document, error) {
	var doc models.Document
	err := r.db.WithContext(ctx).First(&doc, id).Error
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// List lists documents newest first with pagination
func (r *DocumentRepository) List(ctx context.Context, offset, limit int) ([]*models.Document, int64, error) {
	var docs []*models.Document
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Document{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&docs).Error

	return docs, total, err
}

// ListByTenant lists a tenant's documents newest first
func (r *DocumentRepository) ListByTenant(ctx context.Context, tenantID uint) ([]*models.Document, error) {
	var docs []*models.Document
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("created_at DESC").
		Find(&docs).Error
	return docs, err
}

// Update updates a document record
func (r *DocumentRepository) Update(ctx context.Context, doc *models.Document) error {
	return r.db.WithContext(ctx).Save(doc).Error
}

// Delete hard deletes a document record
func (r *DocumentRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Document{}, id).Error
}
