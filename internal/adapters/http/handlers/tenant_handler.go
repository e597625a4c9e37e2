package handlers

import (
	"errors"
	"strconv"

	"crossroads-renthub/internal/adapters/persistence/models"
	"crossroads-renthub/internal/core/services"
	"crossroads-renthub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// TenantHandler handles tenant endpoints
type TenantHandler struct {
	tenantService *services.TenantService
	policy        *services.Policy
}

// NewTenantHandler creates a new tenant handler
func NewTenantHandler(tenantService *services.TenantService, policy *services.Policy) *TenantHandler {
	return &TenantHandler{
		tenantService: tenantService,
		policy:        policy,
	}
}

// Create handles tenant creation
// @Summary Create tenant
// @Description Register a new tenant (Manager only)
// @Tags Tenants
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateTenantInput true "Tenant data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /tenants [post]
func (h *TenantHandler) Create(c *fiber.Ctx) error {
	var input services.CreateTenantInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	tenant, err := h.tenantService.Create(c.Context(), &input)
	if err != nil {
		if errors.Is(err, services.ErrHouseNotFound) {
			return response.NotFound(c, "House not found")
		}
		return response.FromError(c, err, "Failed to create tenant")
	}

	return response.Created(c, "Tenant created successfully", tenant.ToResponse())
}

// List handles tenant listing
// @Summary List tenants
// @Description List tenants with pagination (Manager only)
// @Tags Tenants
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Response
// @Router /tenants [get]
func (h *TenantHandler) List(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)

	result, err := h.tenantService.List(c.Context(), page, limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list tenants")
	}

	return response.Success(c, "Tenants retrieved successfully", result)
}

// Get handles fetching a tenant by ID
// @Summary Get tenant
// @Description Get a tenant by ID; tenants can only read their own record
// @Tags Tenants
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Tenant ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /tenants/{id} [get]
func (h *TenantHandler) Get(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid tenant ID")
	}

	tenant, err := h.tenantService.GetByID(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, services.ErrTenantNotFound) {
			return response.NotFound(c, "Tenant not found")
		}
		return response.InternalServerError(c, "Failed to get tenant")
	}

	if !h.canView(c, tenant) {
		return response.Forbidden(c, "You can only view your own record")
	}

	return response.Success(c, "Tenant retrieved successfully", tenant.ToResponse())
}

// GetHouse handles fetching a tenant's assigned house
// @Summary Get tenant's house
// @Description Get the house currently assigned to a tenant
// @Tags Tenants
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Tenant ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /tenants/{id}/house [get]
func (h *TenantHandler) GetHouse(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid tenant ID")
	}

	tenant, err := h.tenantService.GetByID(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, services.ErrTenantNotFound) {
			return response.NotFound(c, "Tenant not found")
		}
		return response.InternalServerError(c, "Failed to get tenant")
	}
	if !h.canView(c, tenant) {
		return response.Forbidden(c, "You can only view your own record")
	}

	house, err := h.tenantService.GetAssignedHouse(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, services.ErrHouseNotFound) {
			return response.NotFound(c, "Tenant has no assigned house")
		}
		return response.InternalServerError(c, "Failed to get house")
	}

	return response.Success(c, "House retrieved successfully", house.ToResponse())
}

// Update handles tenant updates
// @Summary Update tenant
// @Description Update a tenant's details (Manager only)
// @Tags Tenants
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Tenant ID"
// @Param body body services.UpdateTenantInput true "Fields to update"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /tenants/{id} [put]
func (h *TenantHandler) Update(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid tenant ID")
	}

	var input services.UpdateTenantInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	tenant, err := h.tenantService.Update(c.Context(), uint(id), &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTenantNotFound):
			return response.NotFound(c, "Tenant not found")
		case errors.Is(err, services.ErrHouseNotFound):
			return response.NotFound(c, "House not found")
		default:
			return response.FromError(c, err, "Failed to update tenant")
		}
	}

	return response.Success(c, "Tenant updated successfully", tenant.ToResponse())
}

// Deactivate handles tenant deactivation
// @Summary Deactivate tenant
// @Description Mark a tenant inactive and resync their house (Manager only)
// @Tags Tenants
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Tenant ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /tenants/{id} [delete]
func (h *TenantHandler) Deactivate(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid tenant ID")
	}

	tenant, err := h.tenantService.Deactivate(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, services.ErrTenantNotFound) {
			return response.NotFound(c, "Tenant not found")
		}
		return response.InternalServerError(c, "Failed to deactivate tenant")
	}

	return response.Success(c, "Tenant deactivated successfully", tenant.ToResponse())
}

// Activate handles tenant reactivation
// @Summary Activate tenant
// @Description Mark a tenant active and resync their house (Manager only)
// @Tags Tenants
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Tenant ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /tenants/{id}/activate [patch]
func (h *TenantHandler) Activate(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid tenant ID")
	}

	tenant, err := h.tenantService.Activate(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, services.ErrTenantNotFound) {
			return response.NotFound(c, "Tenant not found")
		}
		return response.InternalServerError(c, "Failed to activate tenant")
	}

	return response.Success(c, "Tenant activated successfully", tenant.ToResponse())
}

// AssignHouseRequest is the payload for house assignment
type AssignHouseRequest struct {
	HouseID *uint `json:"house_id"`
}

// AssignHouse handles moving a tenant between houses
// @Summary Assign house
// @Description Assign a tenant to a house; house_id is required (Manager only)
// @Tags Tenants
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Tenant ID"
// @Param body body AssignHouseRequest true "House assignment"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /tenants/{id}/assign-house [patch]
func (h *TenantHandler) AssignHouse(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid tenant ID")
	}

	var req AssignHouseRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	tenant, err := h.tenantService.AssignHouse(c.Context(), uint(id), req.HouseID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTenantNotFound):
			return response.NotFound(c, "Tenant not found")
		case errors.Is(err, services.ErrHouseNotFound):
			return response.NotFound(c, "House not found")
		default:
			return response.FromError(c, err, "Failed to assign house")
		}
	}

	return response.Success(c, "House assigned successfully", tenant.ToResponse())
}

// UnassignHouse handles vacating a tenant from their house
// @Summary Unassign house
// @Description Clear a tenant's house assignment (Manager only)
// @Tags Tenants
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Tenant ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /tenants/{id}/unassign-house [patch]
func (h *TenantHandler) UnassignHouse(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid tenant ID")
	}

	tenant, err := h.tenantService.UnassignHouse(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, services.ErrTenantNotFound) {
			return response.NotFound(c, "Tenant not found")
		}
		return response.FromError(c, err, "Failed to unassign house")
	}

	return response.Success(c, "House unassigned successfully", tenant.ToResponse())
}

// Delete handles permanent tenant removal
// @Summary Delete tenant permanently
// @Description Permanently remove a tenant and their history (Manager only)
// @Tags Tenants
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Tenant ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /tenants/{id}/hard [delete]
func (h *TenantHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid tenant ID")
	}

	if err := h.tenantService.Delete(c.Context(), uint(id)); err != nil {
		if errors.Is(err, services.ErrTenantNotFound) {
			return response.NotFound(c, "Tenant not found")
		}
		return response.InternalServerError(c, "Failed to delete tenant")
	}

	return response.Success(c, "Tenant deleted successfully", nil)
}

// Me handles fetching the tenant record linked to the current user
// @Summary Get own tenant record
// @Description Get the tenant record linked to the authenticated user
// @Tags Tenants
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /tenants/me [get]
func (h *TenantHandler) Me(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	tenant, err := h.tenantService.GetByUserID(c.Context(), userID)
	if err != nil {
		if errors.Is(err, services.ErrTenantNotFound) {
			return response.NotFound(c, "No tenant record linked to this account")
		}
		return response.InternalServerError(c, "Failed to get tenant")
	}

	return response.Success(c, "Tenant retrieved successfully", tenant.ToResponse())
}

// MyHouse handles fetching the house assigned to the current user's tenant record
// @Summary Get own house
// @Description Get the house assigned to the authenticated tenant
// @Tags Tenants
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /tenants/my-house [get]
func (h *TenantHandler) MyHouse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	tenant, err := h.tenantService.GetByUserID(c.Context(), userID)
	if err != nil {
		if errors.Is(err, services.ErrTenantNotFound) {
			return response.NotFound(c, "No tenant record linked to this account")
		}
		return response.InternalServerError(c, "Failed to get tenant")
	}

	house, err := h.tenantService.GetAssignedHouse(c.Context(), tenant.ID)
	if err != nil {
		if errors.Is(err, services.ErrHouseNotFound) {
			return response.NotFound(c, "No house assigned")
		}
		return response.InternalServerError(c, "Failed to get house")
	}

	return response.Success(c, "House retrieved successfully", house.ToResponse())
}

func (h *TenantHandler) canView(c *fiber.Ctx, tenant *models.Tenant) bool {
	role, _ := c.Locals("role").(string)
	userID, _ := c.Locals("userID").(uint)
	return h.policy.CanViewTenant(role, userID, tenant.UserID)
}
