package handlers

import (
	"errors"
	"strconv"

	"crossroads-renthub/internal/core/services"
	"crossroads-renthub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// HouseHandler handles house inventory endpoints
type HouseHandler struct {
	houseService *services.HouseService
}

// NewHouseHandler creates a new house handler
func NewHouseHandler(houseService *services.HouseService) *HouseHandler {
	return &HouseHandler{houseService: houseService}
}

// Create handles house creation
// @Summary Create house
// @Description Add a house to the inventory (Manager only)
// @Tags Houses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateHouseInput true "House data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /houses [post]
func (h *HouseHandler) Create(c *fiber.Ctx) error {
	var input services.CreateHouseInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	house, err := h.houseService.Create(c.Context(), &input)
	if err != nil {
		if errors.Is(err, services.ErrLandlordNotFound) {
			return response.NotFound(c, "Landlord not found")
		}
		return response.FromError(c, err, "Failed to create house")
	}

	return response.Created(c, "House created successfully", house.ToResponse())
}

// List handles house listing
// @Summary List houses
// @Description List houses with pagination
// @Tags Houses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Response
// @Router /houses [get]
func (h *HouseHandler) List(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)

	result, err := h.houseService.List(c.Context(), page, limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list houses")
	}

	return response.Success(c, "Houses retrieved successfully", result)
}

// Get handles fetching a house by ID
// @Summary Get house
// @Description Get a house by ID
// @Tags Houses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "House ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /houses/{id} [get]
func (h *HouseHandler) Get(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid house ID")
	}

	house, err := h.houseService.GetByID(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, services.ErrHouseNotFound) {
			return response.NotFound(c, "House not found")
		}
		return response.InternalServerError(c, "Failed to get house")
	}

	return response.Success(c, "House retrieved successfully", house.ToResponse())
}

// Update handles house updates
// @Summary Update house
// @Description Update a house's details; the occupancy flag cannot be set here (Manager only)
// @Tags Houses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "House ID"
// @Param body body services.UpdateHouseInput true "Fields to update"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /houses/{id} [put]
func (h *HouseHandler) Update(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid house ID")
	}

	var input services.UpdateHouseInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	house, err := h.houseService.Update(c.Context(), uint(id), &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrHouseNotFound):
			return response.NotFound(c, "House not found")
		case errors.Is(err, services.ErrLandlordNotFound):
			return response.NotFound(c, "Landlord not found")
		default:
			return response.FromError(c, err, "Failed to update house")
		}
	}

	return response.Success(c, "House updated successfully", house.ToResponse())
}

// Delete handles house deletion
// @Summary Delete house
// @Description Remove a vacant house from the inventory (Manager only)
// @Tags Houses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "House ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /houses/{id} [delete]
func (h *HouseHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid house ID")
	}

	if err := h.houseService.Delete(c.Context(), uint(id)); err != nil {
		switch {
		case errors.Is(err, services.ErrHouseNotFound):
			return response.NotFound(c, "House not found")
		case errors.Is(err, services.ErrHouseStillOccupied):
			return response.BadRequest(c, "House still has active tenants")
		default:
			return response.InternalServerError(c, "Failed to delete house")
		}
	}

	return response.Success(c, "House deleted successfully", nil)
}

// Resync handles forcing an occupancy recount
// @Summary Resync occupancy
// @Description Recompute a house's occupancy flag from its active tenants (Manager only)
// @Tags Houses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "House ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /houses/{id}/resync [post]
func (h *HouseHandler) Resync(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid house ID")
	}

	house, err := h.houseService.Resync(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, services.ErrHouseNotFound) {
			return response.NotFound(c, "House not found")
		}
		return response.InternalServerError(c, "Failed to resync occupancy")
	}

	return response.Success(c, "Occupancy resynced successfully", house.ToResponse())
}
