package server

import (
	"documo/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetDocumentTypes handles GET /api/document-types
func (s *Server) GetDocumentTypes(c *fiber.Ctx) error {
	types, err := s.typeService.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"document_types": types})
}

// CreateDocumentType handles POST /api/document-types
func (s *Server) CreateDocumentType(c *fiber.Ctx) error {
	var req struct {
		Name        string `json:"name"`
		Label       string `json:"label"`
		Description string `json:"description"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	dt, err := s.typeService.Create(c.UserContext(), &models.DocumentType{
		Name:        req.Name,
		Label:       req.Label,
		Description: req.Description,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dt)
}

// UpdateDocumentType handles PUT /api/document-types/:id. The machine name
// is immutable; only the label and description can change.
func (s *Server) UpdateDocumentType(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var req struct {
		Label       string `json:"label"`
		Description string `json:"description"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	dt, err := s.typeService.Update(c.UserContext(), &models.DocumentType{
		ID:          id,
		Label:       req.Label,
		Description: req.Description,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dt)
}
