package server

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"documo/internal/middleware"
	"documo/internal/models"
	"documo/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// GetSharedRequest handles GET /api/share/:token. An unknown or expired
// token returns 404 with no hint which of the two it was.
func (s *Server) GetSharedRequest(c *fiber.Ctx) error {
	view, err := s.externalService.Resolve(c.UserContext(), c.Params("token"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(view)
}

// AcceptSharedRequest handles POST /api/share/:token/accept
func (s *Server) AcceptSharedRequest(c *fiber.Ctx) error {
	view, err := s.externalService.Accept(c.UserContext(), c.Params("token"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(view)
}

// DeclineSharedRequest handles POST /api/share/:token/decline
func (s *Server) DeclineSharedRequest(c *fiber.Ctx) error {
	var req struct {
		Message *string `json:"message"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	view, err := s.externalService.Decline(c.UserContext(), c.Params("token"), req.Message)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(view)
}

// UploadSharedDocument handles POST /api/share/:token/documents. Multipart
// form with a "file" part and a "type_id" field. The blob is written under
// the configured upload directory before the metadata row is committed.
func (s *Server) UploadSharedDocument(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("A file is required"))
	}

	typeID, err := strconv.ParseUint(c.FormValue("type_id"), 10, 32)
	if err != nil || typeID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("A valid type_id is required"))
	}

	// Stored under a generated name; the original file name lives in the row.
	storedName := fmt.Sprintf("%s%s", uuid.New().String(), filepath.Ext(fileHeader.Filename))
	storagePath := filepath.Join(s.config.UploadDir, storedName)
	if err := c.SaveFile(fileHeader, storagePath); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewOperationError("Failed to store uploaded file", err))
	}

	view, err := s.externalService.Upload(c.UserContext(), service.ExternalUploadInput{
		ShareToken: c.Params("token"),
		TypeID:     uint(typeID),
		FileName:   fileHeader.Filename,
		MimeType:   fileHeader.Header.Get("Content-Type"),
		SizeBytes:  fileHeader.Size,
		StorageURL: storagePath,
	})
	if err != nil {
		// No metadata row exists for a rejected upload; the blob must not
		// outlive the request either, or garbage tokens could fill the disk.
		if rmErr := os.Remove(storagePath); rmErr != nil {
			middleware.Logger.WarnContext(c.UserContext(), "failed to remove rejected upload",
				slog.String("path", storagePath),
				slog.String("error", rmErr.Error()),
			)
		}
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(view)
}
