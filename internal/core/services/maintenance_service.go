package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"crossroads-renthub/internal/adapters/persistence/models"
	"crossroads-renthub/internal/adapters/persistence/repositories"
	"crossroads-renthub/internal/core/domain"
	"crossroads-renthub/internal/pkg/pagination"

	"gorm.io/gorm"
)

// Maintenance service errors
var (
	ErrRequestNotFound          = fmt.Errorf("maintenance request %w", domain.ErrNotFound)
	ErrInvalidRequestStatus     = fmt.Errorf("%w: unknown maintenance status", domain.ErrValidation)
	ErrDescriptionRequired      = fmt.Errorf("%w: description is required", domain.ErrValidation)
	ErrPushTokenRequired        = fmt.Errorf("%w: expo push token is required", domain.ErrValidation)
)

// MaintenanceService manages maintenance requests and the devices that
// receive status notifications.
type MaintenanceService struct {
	requestRepo *repositories.MaintenanceRepository
	deviceRepo  *repositories.DeviceRepository
	tenantRepo  *repositories.TenantRepository
	notifier    Notifier
}

// NewMaintenanceService creates a new maintenance service
func NewMaintenanceService(
	requestRepo *repositories.MaintenanceRepository,
	deviceRepo *repositories.DeviceRepository,
	tenantRepo *repositories.TenantRepository,
	notifier Notifier,
) *MaintenanceService {
	return &MaintenanceService{
		requestRepo: requestRepo,
		deviceRepo:  deviceRepo,
		tenantRepo:  tenantRepo,
		notifier:    notifier,
	}
}

// CreateRequestInput represents create maintenance request input
type CreateRequestInput struct {
	TenantID    uint   `json:"tenant_id"`
	Description string `json:"description"`
	Notes       string `json:"notes,omitempty"`
}

// Create files a new maintenance request for a tenant
func (s *MaintenanceService) Create(ctx context.Context, input *CreateRequestInput) (*models.MaintenanceRequest, error) {
	if input.Description == "" {
		return nil, ErrDescriptionRequired
	}

	tenant, err := s.tenantRepo.GetByID(ctx, input.TenantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTenantNotFound
		}
		return nil, err
	}

	request := &models.MaintenanceRequest{
		TenantID:    tenant.ID,
		Description: input.Description,
		Notes:       input.Notes,
		Status:      string(domain.MaintenancePending),
	}

	if err := s.requestRepo.Create(ctx, request); err != nil {
		return nil, err
	}
	return request, nil
}

// UpdateRequestInput represents update maintenance request input;
// nil fields are unchanged.
type UpdateRequestInput struct {
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty"`
	Notes       *string `json:"notes,omitempty"`
}

// Update applies a partial update. When the status field is supplied and
// the value actually changed, the tenant's registered device is pushed a
// status notification. Notification failures never fail the update.
func (s *MaintenanceService) Update(ctx context.Context, id uint, input *UpdateRequestInput) (*models.MaintenanceRequest, error) {
	request, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}

	statusChanged := false
	if input.Status != nil {
		if !domain.MaintenanceStatus(*input.Status).Valid() {
			return nil, ErrInvalidRequestStatus
		}
		statusChanged = request.Status != *input.Status
		request.Status = *input.Status
	}
	if input.Description != nil {
		if *input.Description == "" {
			return nil, ErrDescriptionRequired
		}
		request.Description = *input.Description
	}
	if input.Notes != nil {
		request.Notes = *input.Notes
	}

	if err := s.requestRepo.Update(ctx, request); err != nil {
		return nil, err
	}

	if statusChanged {
		s.notifyStatus(ctx, request)
	}
	return request, nil
}

// notifyStatus pushes the new status to the requesting tenant's device
func (s *MaintenanceService) notifyStatus(ctx context.Context, request *models.MaintenanceRequest) {
	if s.notifier == nil {
		return
	}

	tenant, err := s.tenantRepo.GetByID(ctx, request.TenantID)
	if err != nil || tenant.UserID == nil {
		return
	}

	device, err := s.deviceRepo.GetByUserID(ctx, *tenant.UserID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("⚠️ Device lookup failed for user %d: %v", *tenant.UserID, err)
		}
		return
	}

	body := fmt.Sprintf("Your request status is now: %s", request.Status)
	if err := s.notifier.SendPush(device.ExpoPushToken, "Maintenance Update", body); err != nil {
		log.Printf("⚠️ Error sending maintenance push notification: %v", err)
	}
}

// GetByID gets a maintenance request by ID
func (s *MaintenanceService) GetByID(ctx context.Context, id uint) (*models.MaintenanceRequest, error) {
	request, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}
	return request, nil
}

// ListByTenant lists a tenant's maintenance requests
func (s *MaintenanceService) ListByTenant(ctx context.Context, tenantID uint) ([]*models.MaintenanceRequest, error) {
	if _, err := s.tenantRepo.GetByID(ctx, tenantID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTenantNotFound
		}
		return nil, err
	}
	return s.requestRepo.ListByTenant(ctx, tenantID)
}

// ListRequestsOutput represents list maintenance requests output
type ListRequestsOutput struct {
	Requests   []*models.MaintenanceRequest `json:"requests"`
	Total      int64                        `json:"total"`
	Page       int                          `json:"page"`
	Limit      int                          `json:"limit"`
	TotalPages int                          `json:"total_pages"`
}

// List lists maintenance requests
func (s *MaintenanceService) List(ctx context.Context, page, limit int) (*ListRequestsOutput, error) {
	p := pagination.Normalize(page, limit)
	requests, total, err := s.requestRepo.List(ctx, p.Offset, p.Limit)
	if err != nil {
		return nil, err
	}

	return &ListRequestsOutput{
		Requests:   requests,
		Total:      total,
		Page:       p.Page,
		Limit:      p.Limit,
		TotalPages: pagination.Pages(total, p.Limit),
	}, nil
}

// RegisterDevice stores or replaces the Expo push token for a user's device
func (s *MaintenanceService) RegisterDevice(ctx context.Context, userID uint, expoPushToken string) error {
	if expoPushToken == "" {
		return ErrPushTokenRequired
	}
	return s.deviceRepo.Upsert(ctx, userID, expoPushToken)
}
