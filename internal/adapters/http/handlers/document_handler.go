package handlers

import (
	"errors"
	"strconv"

	"crossroads-renthub/internal/core/services"
	"crossroads-renthub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// DocumentHandler handles document metadata endpoints
type DocumentHandler struct {
	documentService *services.DocumentService
	tenantService   *services.TenantService
	policy          *services.Policy
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(
	documentService *services.DocumentService,
	tenantService *services.TenantService,
	policy *services.Policy,
) *DocumentHandler {
	return &DocumentHandler{
		documentService: documentService,
		tenantService:   tenantService,
		policy:          policy,
	}
}

// Create handles document metadata creation
// @Summary Create document
// @Description Record document metadata for a tenant or house (Manager only)
// @Tags Documents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateDocumentInput true "Document data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /documents [post]
func (h *DocumentHandler) Create(c *fiber.Ctx) error {
	var input services.CreateDocumentInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	doc, err := h.documentService.Create(c.Context(), &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTenantNotFound):
			return response.NotFound(c, "Tenant not found")
		case errors.Is(err, services.ErrHouseNotFound):
			return response.NotFound(c, "House not found")
		default:
			return response.FromError(c, err, "Failed to create document")
		}
	}

	return response.Created(c, "Document created successfully", doc)
}

// List handles document listing
// @Summary List documents
// @Description List document metadata with pagination (Manager only)
// @Tags Documents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Response
// @Router /documents [get]
func (h *DocumentHandler) List(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)

	result, err := h.documentService.List(c.Context(), page, limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list documents")
	}

	return response.Success(c, "Documents retrieved successfully", result)
}

// Get handles fetching a document
// @Summary Get document
// @Description Get document metadata by ID (Manager only)
// @Tags Documents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Document ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /documents/{id} [get]
func (h *DocumentHandler) Get(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid document ID")
	}

	doc, err := h.documentService.GetByID(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, services.ErrDocumentNotFound) {
			return response.NotFound(c, "Document not found")
		}
		return response.InternalServerError(c, "Failed to get document")
	}

	return response.Success(c, "Document retrieved successfully", doc)
}

// Verify handles marking a document as verified
// @Summary Verify document
// @Description Mark a document as verified by the current manager
// @Tags Documents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Document ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /documents/{id}/verify [post]
func (h *DocumentHandler) Verify(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid document ID")
	}

	username, _ := c.Locals("username").(string)

	doc, err := h.documentService.Verify(c.Context(), uint(id), username)
	if err != nil {
		if errors.Is(err, services.ErrDocumentNotFound) {
			return response.NotFound(c, "Document not found")
		}
		return response.InternalServerError(c, "Failed to verify document")
	}

	return response.Success(c, "Document verified successfully", doc)
}

// Delete handles removing document metadata
// @Summary Delete document
// @Description Remove document metadata (Manager only)
// @Tags Documents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Document ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /documents/{id} [delete]
func (h *DocumentHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid document ID")
	}

	if err := h.documentService.Delete(c.Context(), uint(id)); err != nil {
		if errors.Is(err, services.ErrDocumentNotFound) {
			return response.NotFound(c, "Document not found")
		}
		return response.InternalServerError(c, "Failed to delete document")
	}

	return response.Success(c, "Document deleted successfully", nil)
}

// ListByTenant handles listing a tenant's documents
// @Summary List tenant documents
// @Description List document metadata for a tenant
// @Tags Documents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Tenant ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /tenants/{id}/documents [get]
func (h *DocumentHandler) ListByTenant(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid tenant ID")
	}

	// Tenants may only read their own documents
	role, _ := c.Locals("role").(string)
	if !h.policy.IsManager(role) {
		userID, _ := c.Locals("userID").(uint)
		tenant, err := h.tenantService.GetByUserID(c.Context(), userID)
		if err != nil || tenant.ID != uint(id) {
			return response.Forbidden(c, "You can only view your own documents")
		}
	}

	documents, err := h.documentService.ListByTenant(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, services.ErrTenantNotFound) {
			return response.NotFound(c, "Tenant not found")
		}
		return response.InternalServerError(c, "Failed to list documents")
	}

	return response.Success(c, "Documents retrieved successfully", documents)
}
