package server

import (
	"documo/internal/models"

	"github.com/gofiber/fiber/v2"
)

// ValidateDocument handles POST /api/documents/:id/validate
func (s *Server) ValidateDocument(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	doc, err := s.documentService.Validate(c.UserContext(), id, orgID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(doc)
}

// InvalidateDocument handles POST /api/documents/:id/invalidate. The reason
// is mandatory; it is recorded on the document and mailed to the recipient
// together with a working re-upload link.
func (s *Server) InvalidateDocument(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var req struct {
		Reason string `json:"reason"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	doc, err := s.documentService.Invalidate(c.UserContext(), id, orgID(c), req.Reason)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(doc)
}
