package handlers

import (
	"errors"
	"strconv"

	"crossroads-renthub/internal/core/services"
	"crossroads-renthub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// MaintenanceHandler handles maintenance request endpoints
type MaintenanceHandler struct {
	maintenanceService *services.MaintenanceService
	tenantService      *services.TenantService
	policy             *services.Policy
}

// NewMaintenanceHandler creates a new maintenance handler
func NewMaintenanceHandler(
	maintenanceService *services.MaintenanceService,
	tenantService *services.TenantService,
	policy *services.Policy,
) *MaintenanceHandler {
	return &MaintenanceHandler{
		maintenanceService: maintenanceService,
		tenantService:      tenantService,
		policy:             policy,
	}
}

// CreateRequestBody represents create maintenance request body
type CreateRequestBody struct {
	TenantID    uint   `json:"tenant_id,omitempty"`
	Description string `json:"description"`
	Notes       string `json:"notes,omitempty"`
}

// RegisterDeviceRequest represents device registration body
type RegisterDeviceRequest struct {
	ExpoPushToken string `json:"expo_push_token"`
}

// Create handles filing a maintenance request
// @Summary Create maintenance request
// @Description File a maintenance request; tenants file for themselves
// @Tags Maintenance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateRequestBody true "Request data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /maintenance [post]
func (h *MaintenanceHandler) Create(c *fiber.Ctx) error {
	var req CreateRequestBody
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	tenantID := req.TenantID

	// A tenant caller always files against their own record
	role, _ := c.Locals("role").(string)
	if !h.policy.IsManager(role) {
		userID, _ := c.Locals("userID").(uint)
		tenant, err := h.tenantService.GetByUserID(c.Context(), userID)
		if err != nil {
			return response.NotFound(c, "No tenant record linked to this account")
		}
		tenantID = tenant.ID
	}
	if tenantID == 0 {
		return response.BadRequest(c, "Tenant ID is required")
	}

	input := &services.CreateRequestInput{
		TenantID:    tenantID,
		Description: req.Description,
		Notes:       req.Notes,
	}

	request, err := h.maintenanceService.Create(c.Context(), input)
	if err != nil {
		if errors.Is(err, services.ErrTenantNotFound) {
			return response.NotFound(c, "Tenant not found")
		}
		return response.FromError(c, err, "Failed to create maintenance request")
	}

	return response.Created(c, "Maintenance request created successfully", request)
}

// List handles listing maintenance requests
// @Summary List maintenance requests
// @Description List maintenance requests with pagination (Manager only)
// @Tags Maintenance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Response
// @Router /maintenance [get]
func (h *MaintenanceHandler) List(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)

	result, err := h.maintenanceService.List(c.Context(), page, limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list maintenance requests")
	}

	return response.Success(c, "Maintenance requests retrieved successfully", result)
}

// Get handles fetching a maintenance request
// @Summary Get maintenance request
// @Description Get a maintenance request by ID
// @Tags Maintenance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Request ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /maintenance/{id} [get]
func (h *MaintenanceHandler) Get(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid request ID")
	}

	request, err := h.maintenanceService.GetByID(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, services.ErrRequestNotFound) {
			return response.NotFound(c, "Maintenance request not found")
		}
		return response.InternalServerError(c, "Failed to get maintenance request")
	}

	return response.Success(c, "Maintenance request retrieved successfully", request)
}

// Update handles updating a maintenance request
// @Summary Update maintenance request
// @Description Update a request; a status change notifies the tenant's device (Manager only)
// @Tags Maintenance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Request ID"
// @Param body body services.UpdateRequestInput true "Fields to update"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /maintenance/{id} [put]
func (h *MaintenanceHandler) Update(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid request ID")
	}

	var input services.UpdateRequestInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	request, err := h.maintenanceService.Update(c.Context(), uint(id), &input)
	if err != nil {
		if errors.Is(err, services.ErrRequestNotFound) {
			return response.NotFound(c, "Maintenance request not found")
		}
		return response.FromError(c, err, "Failed to update maintenance request")
	}

	return response.Success(c, "Maintenance request updated successfully", request)
}

// ListByTenant handles listing a tenant's maintenance requests
// @Summary List tenant maintenance requests
// @Description List maintenance requests filed by a tenant
// @Tags Maintenance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Tenant ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /tenants/{id}/maintenance [get]
func (h *MaintenanceHandler) ListByTenant(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid tenant ID")
	}

	// Tenants may only read their own requests
	role, _ := c.Locals("role").(string)
	if !h.policy.IsManager(role) {
		userID, _ := c.Locals("userID").(uint)
		tenant, err := h.tenantService.GetByUserID(c.Context(), userID)
		if err != nil || tenant.ID != uint(id) {
			return response.Forbidden(c, "You can only view your own requests")
		}
	}

	requests, err := h.maintenanceService.ListByTenant(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, services.ErrTenantNotFound) {
			return response.NotFound(c, "Tenant not found")
		}
		return response.InternalServerError(c, "Failed to list maintenance requests")
	}

	return response.Success(c, "Maintenance requests retrieved successfully", requests)
}

// RegisterDevice handles Expo push token registration
// @Summary Register device
// @Description Register or replace the Expo push token for the current user
// @Tags Maintenance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body RegisterDeviceRequest true "Device data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /devices [post]
func (h *MaintenanceHandler) RegisterDevice(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req RegisterDeviceRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.maintenanceService.RegisterDevice(c.Context(), userID, req.ExpoPushToken); err != nil {
		return response.FromError(c, err, "Failed to register device")
	}

	return response.Success(c, "Device registered successfully", nil)
}
