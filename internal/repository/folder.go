package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"documo/internal/models"

	"gorm.io/gorm"
)

// FolderRepository defines the interface for folder data operations. All
// reads and writes are scoped to the owning organization.
type FolderRepository interface {
	Create(ctx context.Context, folder *models.Folder, requiredTypeIDs []uint) (*models.Folder, error)
	GetForOrg(ctx context.Context, id, organizationID uint) (*models.Folder, error)
	ListForOrg(ctx context.Context, organizationID uint) ([]models.Folder, error)
	UpdateForOrg(ctx context.Context, id, organizationID uint, name, description string) (*models.Folder, error)
	ArchiveForOrg(ctx context.Context, id, organizationID uint) error
}

type folderRepository struct {
	db *gorm.DB
}

// NewFolderRepository creates a new folder repository.
func NewFolderRepository(db *gorm.DB) FolderRepository {
	return &folderRepository{db: db}
}

// Create persists a folder and its required document types.
func (r *folderRepository) Create(ctx context.Context, folder *models.Folder, requiredTypeIDs []uint) (*models.Folder, error) {
	if strings.TrimSpace(folder.Name) == "" {
		return nil, models.NewValidationError("Folder name is required")
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(requiredTypeIDs) > 0 {
			var types []models.DocumentType
			if err := tx.Where("id IN ?", requiredTypeIDs).Find(&types).Error; err != nil {
				return err
			}
			if len(types) != len(dedupe(requiredTypeIDs)) {
				return models.NewValidationError("One or more document types do not exist")
			}
			folder.RequiredTypes = types
		}
		return tx.Create(folder).Error
	})
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, models.NewOperationError("Failed to create folder", err)
	}
	return folder, nil
}

// GetForOrg loads one folder with its requests, their types and documents.
func (r *folderRepository) GetForOrg(ctx context.Context, id, organizationID uint) (*models.Folder, error) {
	var folder models.Folder
	err := r.db.WithContext(ctx).
		Preload("Organization").
		Preload("RequiredTypes").
		Preload("Requests.RequestedTypes").
		Preload("Requests.Documents").
		Where("id = ? AND organization_id = ?", id, organizationID).
		First(&folder).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewAccessError("Folder")
		}
		return nil, models.NewInternalError(err)
	}
	return &folder, nil
}

// ListForOrg returns the organization's folders, most recently active first.
// Requests ride along so callers can derive per-folder status in one query.
func (r *folderRepository) ListForOrg(ctx context.Context, organizationID uint) ([]models.Folder, error) {
	var folders []models.Folder
	err := r.db.WithContext(ctx).
		Preload("RequiredTypes").
		Preload("Requests").
		Where("organization_id = ?", organizationID).
		Order("last_activity_at DESC NULLS LAST").
		Find(&folders).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return folders, nil
}

// UpdateForOrg renames a folder. Required types are fixed at creation.
func (r *folderRepository) UpdateForOrg(ctx context.Context, id, organizationID uint, name, description string) (*models.Folder, error) {
	if strings.TrimSpace(name) == "" {
		return nil, models.NewValidationError("Folder name is required")
	}

	updates := map[string]interface{}{
		"name":             name,
		"description":      description,
		"last_activity_at": time.Now().UTC(),
	}
	res := r.db.WithContext(ctx).Model(&models.Folder{}).
		Where("id = ? AND organization_id = ?", id, organizationID).
		Updates(updates)
	if res.Error != nil {
		return nil, models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, models.NewAccessError("Folder")
	}
	return r.GetForOrg(ctx, id, organizationID)
}

// ArchiveForOrg stamps archived_at. Archived folders stay readable; the
// derived status just reports them as archived regardless of completion.
func (r *folderRepository) ArchiveForOrg(ctx context.Context, id, organizationID uint) error {
	res := r.db.WithContext(ctx).Model(&models.Folder{}).
		Where("id = ? AND organization_id = ?", id, organizationID).
		Update("archived_at", time.Now().UTC())
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewAccessError("Folder")
	}
	return nil
}
