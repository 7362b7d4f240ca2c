package server

import (
	"documo/internal/models"
	"documo/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateFolder handles POST /api/folders
func (s *Server) CreateFolder(c *fiber.Ctx) error {
	var req struct {
		Name            string `json:"name"`
		Description     string `json:"description"`
		RequiredTypeIDs []uint `json:"required_type_ids"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	folder, err := s.folderService.Create(c.UserContext(), service.CreateFolderInput{
		OrganizationID:  orgID(c),
		Name:            req.Name,
		Description:     req.Description,
		RequiredTypeIDs: req.RequiredTypeIDs,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(folder)
}

// GetFolders handles GET /api/folders
func (s *Server) GetFolders(c *fiber.Ctx) error {
	folders, err := s.folderService.List(c.UserContext(), orgID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"folders": folders})
}

// GetFolder handles GET /api/folders/:id
func (s *Server) GetFolder(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	folder, err := s.folderService.Get(c.UserContext(), id, orgID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(folder)
}

// UpdateFolder handles PUT /api/folders/:id
func (s *Server) UpdateFolder(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	folder, err := s.folderService.Update(c.UserContext(), service.UpdateFolderInput{
		OrganizationID: orgID(c),
		FolderID:       id,
		Name:           req.Name,
		Description:    req.Description,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(folder)
}

// ArchiveFolder handles POST /api/folders/:id/archive
func (s *Server) ArchiveFolder(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	if err := s.folderService.Archive(c.UserContext(), id, orgID(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Folder archived"})
}
