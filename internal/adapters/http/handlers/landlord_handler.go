package handlers

import (
	"errors"
	"strconv"

	"crossroads-renthub/internal/core/services"
	"crossroads-renthub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// LandlordHandler handles landlord endpoints
type LandlordHandler struct {
	landlordService *services.LandlordService
}

// NewLandlordHandler creates a new landlord handler
func NewLandlordHandler(landlordService *services.LandlordService) *LandlordHandler {
	return &LandlordHandler{landlordService: landlordService}
}

// Create handles landlord creation
// @Summary Create landlord
// @Description Register a property owner (Manager only)
// @Tags Landlords
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateLandlordInput true "Landlord data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /landlords [post]
func (h *LandlordHandler) Create(c *fiber.Ctx) error {
	var input services.CreateLandlordInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	landlord, err := h.landlordService.Create(c.Context(), &input)
	if err != nil {
		if errors.Is(err, services.ErrLandlordEmailTaken) {
			return response.Conflict(c, "Landlord email already registered")
		}
		return response.FromError(c, err, "Failed to create landlord")
	}

	return response.Created(c, "Landlord created successfully", landlord)
}

// List handles landlord listing
// @Summary List landlords
// @Description List landlords with pagination (Manager only)
// @Tags Landlords
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Response
// @Router /landlords [get]
func (h *LandlordHandler) List(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)

	result, err := h.landlordService.List(c.Context(), page, limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list landlords")
	}

	return response.Success(c, "Landlords retrieved successfully", result)
}

// Get handles fetching a landlord with portfolio counts
// @Summary Get landlord
// @Description Get a landlord with house occupancy counts (Manager only)
// @Tags Landlords
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Landlord ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /landlords/{id} [get]
func (h *LandlordHandler) Get(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid landlord ID")
	}

	summary, err := h.landlordService.GetSummary(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, services.ErrLandlordNotFound) {
			return response.NotFound(c, "Landlord not found")
		}
		return response.InternalServerError(c, "Failed to get landlord")
	}

	return response.Success(c, "Landlord retrieved successfully", summary)
}

// Update handles landlord updates
// @Summary Update landlord
// @Description Update a landlord's details (Manager only)
// @Tags Landlords
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Landlord ID"
// @Param body body services.UpdateLandlordInput true "Fields to update"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /landlords/{id} [put]
func (h *LandlordHandler) Update(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid landlord ID")
	}

	var input services.UpdateLandlordInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	landlord, err := h.landlordService.Update(c.Context(), uint(id), &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrLandlordNotFound):
			return response.NotFound(c, "Landlord not found")
		case errors.Is(err, services.ErrLandlordEmailTaken):
			return response.Conflict(c, "Landlord email already registered")
		default:
			return response.FromError(c, err, "Failed to update landlord")
		}
	}

	return response.Success(c, "Landlord updated successfully", landlord)
}

// Delete handles landlord deletion
// @Summary Delete landlord
// @Description Remove a landlord; their houses are kept without an owner (Manager only)
// @Tags Landlords
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Landlord ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /landlords/{id} [delete]
func (h *LandlordHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid landlord ID")
	}

	if err := h.landlordService.Delete(c.Context(), uint(id)); err != nil {
		if errors.Is(err, services.ErrLandlordNotFound) {
			return response.NotFound(c, "Landlord not found")
		}
		return response.InternalServerError(c, "Failed to delete landlord")
	}

	return response.Success(c, "Landlord deleted successfully", nil)
}
