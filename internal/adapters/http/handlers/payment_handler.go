package handlers

import (
	"errors"
	"strconv"

	"crossroads-renthub/internal/core/services"
	"crossroads-renthub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// PaymentHandler handles rent payment endpoints
type PaymentHandler struct {
	paymentService *services.PaymentService
	tenantService  *services.TenantService
	policy         *services.Policy
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(
	paymentService *services.PaymentService,
	tenantService *services.TenantService,
	policy *services.Policy,
) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
		tenantService:  tenantService,
		policy:         policy,
	}
}

// Record handles recording a rent payment
// @Summary Record payment
// @Description Record a rent payment for a tenant (Manager only)
// @Tags Payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.RecordPaymentInput true "Payment data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /payments [post]
func (h *PaymentHandler) Record(c *fiber.Ctx) error {
	var input services.RecordPaymentInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	payment, err := h.paymentService.Record(c.Context(), &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTenantNotFound):
			return response.NotFound(c, "Tenant not found")
		case errors.Is(err, services.ErrDuplicateReference):
			return response.Conflict(c, "Payment reference number already used")
		default:
			return response.FromError(c, err, "Failed to record payment")
		}
	}

	return response.Created(c, "Payment recorded successfully", payment.ToResponse())
}

// List handles payment listing
// @Summary List payments
// @Description List all payments with pagination (Manager only)
// @Tags Payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Response
// @Router /payments [get]
func (h *PaymentHandler) List(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)

	result, err := h.paymentService.List(c.Context(), page, limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list payments")
	}

	return response.Success(c, "Payments retrieved successfully", result)
}

// Get handles fetching a payment by ID
// @Summary Get payment
// @Description Get a payment by ID
// @Tags Payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Payment ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /payments/{id} [get]
func (h *PaymentHandler) Get(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid payment ID")
	}

	payment, err := h.paymentService.GetByID(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, services.ErrPaymentNotFound) {
			return response.NotFound(c, "Payment not found")
		}
		return response.InternalServerError(c, "Failed to get payment")
	}

	return response.Success(c, "Payment retrieved successfully", payment.ToResponse())
}

// ListByTenant handles listing a tenant's payment ledger
// @Summary List tenant payments
// @Description List a tenant's payments, most recent first
// @Tags Payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Tenant ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /tenants/{id}/payments [get]
func (h *PaymentHandler) ListByTenant(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid tenant ID")
	}

	// Tenants may only read their own ledger
	role, _ := c.Locals("role").(string)
	if !h.policy.IsManager(role) {
		userID, _ := c.Locals("userID").(uint)
		tenant, err := h.tenantService.GetByUserID(c.Context(), userID)
		if err != nil || tenant.ID != uint(id) {
			return response.Forbidden(c, "You can only view your own payments")
		}
	}

	payments, err := h.paymentService.ListByTenant(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, services.ErrTenantNotFound) {
			return response.NotFound(c, "Tenant not found")
		}
		return response.InternalServerError(c, "Failed to list payments")
	}

	return response.Success(c, "Payments retrieved successfully", payments)
}
