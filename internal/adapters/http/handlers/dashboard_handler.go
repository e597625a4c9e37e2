package handlers

import (
	"errors"

	"crossroads-renthub/internal/core/services"
	"crossroads-renthub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// DashboardHandler handles dashboard endpoints
type DashboardHandler struct {
	dashboardService *services.DashboardService
	tenantService    *services.TenantService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *services.DashboardService, tenantService *services.TenantService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		tenantService:    tenantService,
	}
}

// GetManagerDashboard returns the portfolio overview
// @Summary Manager Dashboard
// @Description Get portfolio-wide counts and ledger totals (Manager only)
// @Tags Dashboard
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /dashboard/manager [get]
func (h *DashboardHandler) GetManagerDashboard(c *fiber.Ctx) error {
	data, err := h.dashboardService.GetManagerDashboard(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to get manager dashboard")
	}

	return response.Success(c, "Manager dashboard retrieved successfully", data)
}

// GetTenantDashboard returns the current tenant's standing
// @Summary Tenant Dashboard
// @Description Get the authenticated tenant's balance, payments and house
// @Tags Dashboard
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /dashboard/tenant [get]
func (h *DashboardHandler) GetTenantDashboard(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	tenant, err := h.tenantService.GetByUserID(c.Context(), userID)
	if err != nil {
		if errors.Is(err, services.ErrTenantNotFound) {
			return response.NotFound(c, "No tenant record linked to this account")
		}
		return response.InternalServerError(c, "Failed to get tenant dashboard")
	}

	data, err := h.dashboardService.GetTenantDashboard(c.Context(), tenant.ID)
	if err != nil {
		return response.InternalServerError(c, "Failed to get tenant dashboard")
	}

	return response.Success(c, "Tenant dashboard retrieved successfully", data)
}
