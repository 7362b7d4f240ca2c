package server

import (
	"documo/internal/models"
	"documo/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateRequest handles POST /api/requests. It creates the request, issues
// a share link and mails the invitation to the recipient.
func (s *Server) CreateRequest(c *fiber.Ctx) error {
	var req struct {
		FolderID            uint   `json:"folder_id"`
		RecipientEmail      string `json:"recipient_email"`
		RecipientIdentifier string `json:"recipient_identifier"`
		TypeIDs             []uint `json:"type_ids"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	result, err := s.requestService.Create(c.UserContext(), service.CreateRequestInput{
		OrganizationID:      orgID(c),
		FolderID:            req.FolderID,
		RecipientEmail:      req.RecipientEmail,
		RecipientIdentifier: req.RecipientIdentifier,
		TypeIDs:             req.TypeIDs,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(result)
}

// GetRequest handles GET /api/requests/:id
func (s *Server) GetRequest(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	req, err := s.requestService.Get(c.UserContext(), id, orgID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(req)
}

// ArchiveRequest handles POST /api/requests/:id/archive
func (s *Server) ArchiveRequest(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	if err := s.requestService.Archive(c.UserContext(), id, orgID(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Request archived"})
}

// ResendShareLink handles POST /api/requests/:id/resend-link
func (s *Server) ResendShareLink(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	result, err := s.requestService.ResendLink(c.UserContext(), id, orgID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

// GetValidDocuments handles GET /api/requests/:id/documents. Only uploaded,
// non-invalidated documents are returned.
func (s *Server) GetValidDocuments(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	// Ownership check before exposing the document set.
	if _, err := s.requestService.Get(c.UserContext(), id, orgID(c)); err != nil {
		return respondError(c, err)
	}

	docs, err := s.documentService.ValidDocuments(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"documents": docs})
}
