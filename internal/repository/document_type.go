package repository

import (
	"context"
	"errors"
	"strings"

	"documo/internal/models"

	"gorm.io/gorm"
)

// DocumentTypeRepository defines the interface for document-type catalog
// operations. The catalog is global, not per-organization.
type DocumentTypeRepository interface {
	List(ctx context.Context) ([]models.DocumentType, error)
	GetByID(ctx context.Context, id uint) (*models.DocumentType, error)
	Create(ctx context.Context, dt *models.DocumentType) (*models.DocumentType, error)
	Update(ctx context.Context, dt *models.DocumentType) (*models.DocumentType, error)
}

type documentTypeRepository struct {
	db *gorm.DB
}

// NewDocumentTypeRepository creates a new document-type repository.
func NewDocumentTypeRepository(db *gorm.DB) DocumentTypeRepository {
	return &documentTypeRepository{db: db}
}

// List returns the full catalog ordered by name.
func (r *documentTypeRepository) List(ctx context.Context) ([]models.DocumentType, error) {
	var types []models.DocumentType
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&types).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return types, nil
}

// GetByID returns one catalog entry.
func (r *documentTypeRepository) GetByID(ctx context.Context, id uint) (*models.DocumentType, error) {
	var dt models.DocumentType
	if err := r.db.WithContext(ctx).First(&dt, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Document type", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &dt, nil
}

// Create adds a catalog entry. Name is the machine key and must be unique.
func (r *documentTypeRepository) Create(ctx context.Context, dt *models.DocumentType) (*models.DocumentType, error) {
	dt.Name = strings.TrimSpace(dt.Name)
	if dt.Name == "" || strings.TrimSpace(dt.Label) == "" {
		return nil, models.NewValidationError("Document type name and label are required")
	}
	if err := r.db.WithContext(ctx).Create(dt).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, models.NewValidationError("Document type name already exists")
		}
		return nil, models.NewOperationError("Failed to create document type", err)
	}
	return dt, nil
}

// Update rewrites the label and description. The machine name is immutable;
// existing folders and requests reference it.
func (r *documentTypeRepository) Update(ctx context.Context, dt *models.DocumentType) (*models.DocumentType, error) {
	if strings.TrimSpace(dt.Label) == "" {
		return nil, models.NewValidationError("Document type label is required")
	}
	updates := map[string]interface{}{
		"label":       dt.Label,
		"description": dt.Description,
	}
	res := r.db.WithContext(ctx).Model(&models.DocumentType{}).
		Where("id = ?", dt.ID).
		Updates(updates)
	if res.Error != nil {
		return nil, models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, models.NewNotFoundError("Document type", dt.ID)
	}
	return r.GetByID(ctx, dt.ID)
}
