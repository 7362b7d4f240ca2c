package server

import (
	"strconv"

	"documo/internal/models"

	"github.com/gofiber/fiber/v2"
)

// parseID extracts a positive integer route parameter.
func parseID(c *fiber.Ctx, name string) (uint, error) {
	raw := c.Params(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, models.NewValidationError("Invalid " + name)
	}
	return uint(id), nil
}

// orgID returns the authenticated organization from locals. AuthRequired
// guarantees it is set on protected routes.
func orgID(c *fiber.Ctx) uint {
	return c.Locals("orgID").(uint)
}

// respondError maps an application error to its HTTP status.
func respondError(c *fiber.Ctx, err error) error {
	return models.RespondWithError(c, models.StatusForError(err), err)
}
