package response

import (
	"errors"

	"crossroads-renthub/internal/core/domain"

	"github.com/gofiber/fiber/v2"
)

// FromError maps a domain error to the matching HTTP error response.
// Unrecognized errors become a 500 with the fallback message.
func FromError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return BadRequest(c, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		return NotFound(c, err.Error())
	case errors.Is(err, domain.ErrConflict), errors.Is(err, domain.ErrDuplicateEntry):
		return Conflict(c, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		return Unauthorized(c, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		return Forbidden(c, err.Error())
	default:
		return InternalServerError(c, fallback)
	}
}
