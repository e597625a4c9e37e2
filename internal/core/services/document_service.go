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

// Document service errors
var (
	ErrDocumentNotFound    = fmt.Errorf("document %w", domain.ErrNotFound)
	ErrInvalidDocumentType = fmt.Errorf("%w: unknown document type", domain.ErrValidation)
	ErrDocumentUnanchored  = fmt.Errorf("%w: document needs a tenant or a house", domain.ErrValidation)
	ErrFilePathRequired    = fmt.Errorf("%w: file path is required", domain.ErrValidation)
)

// DocumentService tracks document metadata. File contents live in external
// storage; only the path and attributes are recorded here.
type DocumentService struct {
	documentRepo *repositories.DocumentRepository
	tenantRepo   *repositories.TenantRepository
	houseRepo    *repositories.HouseRepository
}

// NewDocumentService creates a new document service
func NewDocumentService(
	documentRepo *repositories.DocumentRepository,
	tenantRepo *repositories.TenantRepository,
	houseRepo *repositories.HouseRepository,
) *DocumentService {
	return &DocumentService{
		documentRepo: documentRepo,
		tenantRepo:   tenantRepo,
		houseRepo:    houseRepo,
	}
}

// CreateDocumentInput represents create document input
type CreateDocumentInput struct {
	TenantID     *uint      `json:"tenant_id,omitempty"`
	HouseID      *uint      `json:"house_id,omitempty"`
	DocumentType string     `json:"document_type"`
	Title        string     `json:"title"`
	FilePath     string     `json:"file_path"`
	FileSize     *uint      `json:"file_size,omitempty"`
	ExpiryDate   *time.Time `json:"expiry_date,omitempty"`
	Description  string     `json:"description,omitempty"`
}

// Create records document metadata against a tenant and/or house
func (s *DocumentService) Create(ctx context.Context, input *CreateDocumentInput) (*models.Document, error) {
	if !models.ValidDocumentType(input.DocumentType) {
		return nil, ErrInvalidDocumentType
	}
	if input.TenantID == nil && input.HouseID == nil {
		return nil, ErrDocumentUnanchored
	}
	if input.FilePath == "" {
		return nil, ErrFilePathRequired
	}

	if input.TenantID != nil {
		if _, err := s.tenantRepo.GetByID(ctx, *input.TenantID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrTenantNotFound
			}
			return nil, err
		}
	}
	if input.HouseID != nil {
		if _, err := s.houseRepo.GetByID(ctx, *input.HouseID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrHouseNotFound
			}
			return nil, err
		}
	}

	doc := &models.Document{
		TenantID:     input.TenantID,
		HouseID:      input.HouseID,
		DocumentType: input.DocumentType,
		Title:        input.Title,
		FilePath:     input.FilePath,
		FileSize:     input.FileSize,
		ExpiryDate:   input.ExpiryDate,
		Description:  input.Description,
	}

	if err := s.documentRepo.Create(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Verify marks a document as checked by a manager
func (s *DocumentService) Verify(ctx context.Context, id uint, verifiedBy string) (*models.Document, error) {
	doc, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	doc.IsVerified = true
	doc.VerifiedBy = verifiedBy

	if err := s.documentRepo.Update(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// GetByID gets a document by ID
func (s *DocumentService) GetByID(ctx context.Context, id uint) (*models.Document, error) {
	doc, err := s.documentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDocumentNotFound
		}
		return nil, err
	}
	return doc, nil
}

// ListByTenant lists a tenant's documents
func (s *DocumentService) ListByTenant(ctx context.Context, tenantID uint) ([]*models.Document, error) {
	if _, err := s.tenantRepo.GetByID(ctx, tenantID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTenantNotFound
		}
		return nil, err
	}
	return s.documentRepo.ListByTenant(ctx, tenantID)
}

// ListDocumentsOutput represents list documents output
type ListDocumentsOutput struct {
	Documents  []*models.Document `json:"documents"`
	Total      int64              `json:"total"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	TotalPages int                `json:"total_pages"`
}

// List lists documents
func (s *DocumentService) List(ctx context.Context, page, limit int) (*ListDocumentsOutput, error) {
	p := pagination.Normalize(page, limit)
	documents, total, err := s.documentRepo.List(ctx, p.Offset, p.Limit)
	if err != nil {
		return nil, err
	}

	return &ListDocumentsOutput{
		Documents:  documents,
		Total:      total,
		Page:       p.Page,
		Limit:      p.Limit,
		TotalPages: pagination.Pages(total, p.Limit),
	}, nil
}

// Delete removes document metadata
func (s *DocumentService) Delete(ctx context.Context, id uint) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.documentRepo.Delete(ctx, id)
}
