package handlers

import (
	"errors"
	"strconv"

	"crossroads-renthub/internal/core/services"
	"crossroads-renthub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ChargeHandler handles tenant charge endpoints
type ChargeHandler struct {
	chargeService *services.ChargeService
	tenantService *services.TenantService
	policy        *services.Policy
}

// NewChargeHandler creates a new charge handler
func NewChargeHandler(
	chargeService *services.ChargeService,
	tenantService *services.TenantService,
	policy *services.Policy,
) *ChargeHandler {
	return &ChargeHandler{
		chargeService: chargeService,
		tenantService: tenantService,
		policy:        policy,
	}
}

// Create handles charge creation
// @Summary Create charge
// @Description Bill a one-off charge against a tenant (Manager only)
// @Tags Charges
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateChargeInput true "Charge data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /charges [post]
func (h *ChargeHandler) Create(c *fiber.Ctx) error {
	var input services.CreateChargeInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	charge, err := h.chargeService.Create(c.Context(), &input)
	if err != nil {
		if errors.Is(err, services.ErrTenantNotFound) {
			return response.NotFound(c, "Tenant not found")
		}
		return response.FromError(c, err, "Failed to create charge")
	}

	return response.Created(c, "Charge created successfully", charge)
}

// List handles charge listing
// @Summary List charges
// @Description List charges with pagination (Manager only)
// @Tags Charges
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Response
// @Router /charges [get]
func (h *ChargeHandler) List(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)

	result, err := h.chargeService.List(c.Context(), page, limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list charges")
	}

	return response.Success(c, "Charges retrieved successfully", result)
}

// ListOverdue handles listing overdue charges
// @Summary List overdue charges
// @Description List unpaid charges past their due date (Manager only)
// @Tags Charges
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /charges/overdue [get]
func (h *ChargeHandler) ListOverdue(c *fiber.Ctx) error {
	charges, err := h.chargeService.ListOverdue(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list overdue charges")
	}

	return response.Success(c, "Overdue charges retrieved successfully", charges)
}

// MarkPaid handles settling a charge
// @Summary Settle charge
// @Description Mark a charge as paid (Manager only)
// @Tags Charges
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Charge ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /charges/{id}/pay [post]
func (h *ChargeHandler) MarkPaid(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid charge ID")
	}

	charge, err := h.chargeService.MarkPaid(c.Context(), uint(id))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrChargeNotFound):
			return response.NotFound(c, "Charge not found")
		case errors.Is(err, services.ErrChargeAlreadyPaid):
			return response.BadRequest(c, "Charge is already settled")
		default:
			return response.InternalServerError(c, "Failed to settle charge")
		}
	}

	return response.Success(c, "Charge settled successfully", charge)
}

// ListByTenant handles listing a tenant's charges
// @Summary List tenant charges
// @Description List charges billed to a tenant
// @Tags Charges
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Tenant ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /tenants/{id}/charges [get]
func (h *ChargeHandler) ListByTenant(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid tenant ID")
	}

	// Tenants may only read their own charges
	role, _ := c.Locals("role").(string)
	if !h.policy.IsManager(role) {
		userID, _ := c.Locals("userID").(uint)
		tenant, err := h.tenantService.GetByUserID(c.Context(), userID)
		if err != nil || tenant.ID != uint(id) {
			return response.Forbidden(c, "You can only view your own charges")
		}
	}

	charges, err := h.chargeService.ListByTenant(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, services.ErrTenantNotFound) {
			return response.NotFound(c, "Tenant not found")
		}
		return response.InternalServerError(c, "Failed to list charges")
	}

	return response.Success(c, "Charges retrieved successfully", charges)
}
