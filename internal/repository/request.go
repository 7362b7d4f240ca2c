package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"documo/internal/models"

	"gorm.io/gorm"
)

// RequestRepository defines the interface for document-request data operations.
type RequestRepository interface {
	Create(ctx context.Context, req *models.DocumentRequest, typeIDs []uint) (*models.DocumentRequest, error)
	GetByID(ctx context.Context, id uint) (*models.DocumentRequest, error)
	GetForOrg(ctx context.Context, id, organizationID uint) (*models.DocumentRequest, error)
	ListByFolder(ctx context.Context, folderID uint) ([]models.DocumentRequest, error)
	Accept(ctx context.Context, id uint) (*models.DocumentRequest, error)
	Decline(ctx context.Context, id uint, message *string) (*models.DocumentRequest, error)
	ArchiveForOrg(ctx context.Context, id, organizationID uint) error
}

type requestRepository struct {
	db *gorm.DB
}

// NewRequestRepository creates a new document-request repository.
func NewRequestRepository(db *gorm.DB) RequestRepository {
	return &requestRepository{db: db}
}

// Create persists the request and attaches the requested document types.
// At least one type is required; a request for nothing can never complete.
func (r *requestRepository) Create(ctx context.Context, req *models.DocumentRequest, typeIDs []uint) (*models.DocumentRequest, error) {
	if strings.TrimSpace(req.RecipientEmail) == "" {
		return nil, models.NewValidationError("Recipient email is required")
	}
	if len(typeIDs) == 0 {
		return nil, models.NewValidationError("At least one document type is required")
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var types []models.DocumentType
		if err := tx.Where("id IN ?", typeIDs).Find(&types).Error; err != nil {
			return err
		}
		if len(types) != len(dedupe(typeIDs)) {
			return models.NewValidationError("One or more document types do not exist")
		}

		req.RequestedTypes = types
		if err := tx.Create(req).Error; err != nil {
			return err
		}

		return tx.Model(&models.Folder{}).Where("id = ?", req.FolderID).
			Update("last_activity_at", time.Now().UTC()).Error
	})
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, models.NewOperationError("Failed to create document request", err)
	}
	return req, nil
}

// GetByID loads a request with its types and documents, without any
// ownership check. For recipient-facing paths resolved through a share
// link, where the token itself is the credential.
func (r *requestRepository) GetByID(ctx context.Context, id uint) (*models.DocumentRequest, error) {
	var req models.DocumentRequest
	err := r.db.WithContext(ctx).
		Preload("RequestedTypes").
		Preload("Documents").
		Preload("Folder.Organization").
		First(&req, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Document request", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &req, nil
}

// GetForOrg loads a request scoped to the owning organization.
func (r *requestRepository) GetForOrg(ctx context.Context, id, organizationID uint) (*models.DocumentRequest, error) {
	var req models.DocumentRequest
	err := r.db.WithContext(ctx).
		Preload("RequestedTypes").
		Preload("Documents").
		Joins("JOIN folders ON folders.id = document_requests.folder_id").
		Where("document_requests.id = ? AND folders.organization_id = ?", id, organizationID).
		First(&req).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewAccessError("Document request")
		}
		return nil, models.NewInternalError(err)
	}
	return &req, nil
}

// ListByFolder returns all requests in the folder, archived ones included.
func (r *requestRepository) ListByFolder(ctx context.Context, folderID uint) ([]models.DocumentRequest, error) {
	var reqs []models.DocumentRequest
	err := r.db.WithContext(ctx).
		Preload("RequestedTypes").
		Preload("Documents").
		Where("folder_id = ?", folderID).
		Order("created_at ASC").
		Find(&reqs).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return reqs, nil
}

// Accept stamps accepted_at with the current time. Re-accepting overwrites
// the previous timestamp, and a prior decline is left in place; the derived
// status decides which one the reader sees.
func (r *requestRepository) Accept(ctx context.Context, id uint) (*models.DocumentRequest, error) {
	now := time.Now().UTC()
	res := r.db.WithContext(ctx).Model(&models.DocumentRequest{}).
		Where("id = ?", id).
		Update("accepted_at", now)
	if res.Error != nil {
		return nil, models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, models.NewNotFoundError("Document request", id)
	}
	return r.GetByID(ctx, id)
}

// Decline stamps rejected_at and records the optional message. Like Accept,
// it overwrites rather than guards.
func (r *requestRepository) Decline(ctx context.Context, id uint, message *string) (*models.DocumentRequest, error) {
	now := time.Now().UTC()
	updates := map[string]interface{}{
		"rejected_at":     now,
		"decline_message": message,
	}
	res := r.db.WithContext(ctx).Model(&models.DocumentRequest{}).
		Where("id = ?", id).
		Updates(updates)
	if res.Error != nil {
		return nil, models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, models.NewNotFoundError("Document request", id)
	}
	return r.GetByID(ctx, id)
}

// ArchiveForOrg soft-archives the request via the sentinel decline message
// and recomputes the folder's completion, since archived requests no longer
// count against it.
func (r *requestRepository) ArchiveForOrg(ctx context.Context, id, organizationID uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var req models.DocumentRequest
		err := tx.
			Joins("JOIN folders ON folders.id = document_requests.folder_id").
			Where("document_requests.id = ? AND folders.organization_id = ?", id, organizationID).
			First(&req).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewAccessError("Document request")
			}
			return err
		}

		now := time.Now().UTC()
		updates := map[string]interface{}{
			"rejected_at":     now,
			"decline_message": models.ArchivedDeclineMessage,
		}
		if err := tx.Model(&models.DocumentRequest{}).Where("id = ?", req.ID).Updates(updates).Error; err != nil {
			return err
		}

		return refreshFolderCompletion(tx, req.FolderID, now)
	})
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) {
			return appErr
		}
		return models.NewOperationError("Failed to archive document request", err)
	}
	return nil
}

func dedupe(ids []uint) []uint {
	seen := make(map[uint]bool, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
