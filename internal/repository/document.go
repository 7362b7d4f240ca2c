package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"documo/internal/models"
	"documo/internal/token"

	"gorm.io/gorm"
)

// DocumentRepository defines the interface for document lifecycle operations.
// Upload, Validate and Invalidate each run inside one transaction so a
// concurrent reader never observes a document row with stale parent
// completion flags.
type DocumentRepository interface {
	Upload(ctx context.Context, doc *models.Document) (*models.Document, error)
	GetForOrg(ctx context.Context, documentID, organizationID uint) (*models.Document, error)
	ValidateForOrg(ctx context.Context, documentID, organizationID uint) (*models.Document, error)
	InvalidateForOrg(ctx context.Context, documentID, organizationID uint, reason string) (*models.InvalidationNotice, error)
	GetValidByRequest(ctx context.Context, requestID uint) ([]models.Document, error)
}

type documentRepository struct {
	db *gorm.DB
}

// NewDocumentRepository creates a new document repository.
func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return &documentRepository{db: db}
}

// Upload inserts the document and cascades completion recomputation up to
// the parent request and folder within one transaction.
func (r *documentRepository) Upload(ctx context.Context, doc *models.Document) (*models.Document, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now().UTC()
		if doc.UploadedAt == nil {
			doc.UploadedAt = &now
		}
		if err := tx.Create(doc).Error; err != nil {
			return err
		}

		var req models.DocumentRequest
		if err := tx.Preload("RequestedTypes").First(&req, doc.RequestID).Error; err != nil {
			return err
		}

		updates := map[string]interface{}{}
		if req.FirstDocumentUploadedAt == nil {
			updates["first_document_uploaded_at"] = now
		}

		covered, err := requestCovered(tx, &req)
		if err != nil {
			return err
		}
		if covered {
			updates["completed_at"] = now
		} else {
			// Explicitly cleared: a previously-complete request reopens if
			// its valid document set no longer covers the requested types.
			updates["completed_at"] = nil
		}
		if err := tx.Model(&models.DocumentRequest{}).Where("id = ?", req.ID).Updates(updates).Error; err != nil {
			return err
		}

		return refreshFolderCompletion(tx, req.FolderID, now)
	})
	if err != nil {
		return nil, models.NewOperationError("Failed to upload document", err)
	}
	return doc, nil
}

// GetForOrg loads one document scoped to the owning organization.
func (r *documentRepository) GetForOrg(ctx context.Context, documentID, organizationID uint) (*models.Document, error) {
	var doc models.Document
	err := r.db.WithContext(ctx).
		Preload("Type").
		Joins("JOIN document_requests ON document_requests.id = documents.request_id").
		Joins("JOIN folders ON folders.id = document_requests.folder_id").
		Where("documents.id = ? AND folders.organization_id = ?", documentID, organizationID).
		First(&doc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewAccessError("Document")
		}
		return nil, models.NewInternalError(err)
	}
	return &doc, nil
}

// ValidateForOrg marks a document valid. The document must belong to a
// folder created by the calling organization; a failed ownership join is
// reported the same way as a missing document.
func (r *documentRepository) ValidateForOrg(ctx context.Context, documentID, organizationID uint) (*models.Document, error) {
	var doc *models.Document
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		found, err := findOwnedDocument(tx, documentID, organizationID)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		updates := map[string]interface{}{
			"validated_at":      now,
			"invalidated_at":    nil,
			"validation_errors": nil,
			"error_at":          nil,
		}
		if err := tx.Model(&models.Document{}).Where("id = ?", found.ID).Updates(updates).Error; err != nil {
			return err
		}
		found.ValidatedAt = &now
		found.InvalidatedAt = nil
		found.ValidationErrors = nil
		found.ErrorAt = nil

		var req models.DocumentRequest
		if err := tx.First(&req, found.RequestID).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Folder{}).Where("id = ?", req.FolderID).
			Update("last_activity_at", now).Error; err != nil {
			return err
		}

		doc = found
		return nil
	})
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, models.NewOperationError("Failed to validate document", err)
	}
	return doc, nil
}

// InvalidateForOrg rejects a document with a required reason, reopens the
// parent request and folder, and re-provisions upload access via a share
// link (reusing a live one or issuing a fresh 7-day link). Returns the
// context needed to notify the recipient.
func (r *documentRepository) InvalidateForOrg(ctx context.Context, documentID, organizationID uint, reason string) (*models.InvalidationNotice, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, models.NewValidationError("Invalidation reason is required")
	}

	var notice *models.InvalidationNotice
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		doc, err := findOwnedDocument(tx, documentID, organizationID)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		updates := map[string]interface{}{
			"invalidated_at":    now,
			"validated_at":      nil,
			"validation_errors": models.StringList{reason},
		}
		if err := tx.Model(&models.Document{}).Where("id = ?", doc.ID).Updates(updates).Error; err != nil {
			return err
		}

		var req models.DocumentRequest
		if err := tx.Preload("Folder.Organization").First(&req, doc.RequestID).Error; err != nil {
			return err
		}

		// The request is no longer complete, and neither is its folder.
		if err := tx.Model(&models.DocumentRequest{}).Where("id = ?", req.ID).
			Update("completed_at", nil).Error; err != nil {
			return err
		}
		folderUpdates := map[string]interface{}{
			"completed_at":     nil,
			"last_activity_at": now,
		}
		if err := tx.Model(&models.Folder{}).Where("id = ?", req.FolderID).Updates(folderUpdates).Error; err != nil {
			return err
		}

		link, reissued, err := provisionShareLink(tx, req.ID, now)
		if err != nil {
			return err
		}

		var docType models.DocumentType
		if err := tx.First(&docType, doc.TypeID).Error; err != nil {
			return err
		}

		notice = &models.InvalidationNotice{
			RequestID:         req.ID,
			RecipientEmail:    req.RecipientEmail,
			FolderName:        req.Folder.Name,
			OrganizationName:  req.Folder.Organization.Name,
			DocumentTypeLabel: docType.Label,
			FileName:          doc.FileName,
			Reason:            reason,
			ShareToken:        link.Token,
			ShareExpiresAt:    link.ExpiresAt,
			LinkReissued:      reissued,
		}
		return nil
	})
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, models.NewOperationError("Failed to invalidate document", err)
	}
	return notice, nil
}

// GetValidByRequest returns the request's uploaded, non-invalidated documents.
func (r *documentRepository) GetValidByRequest(ctx context.Context, requestID uint) ([]models.Document, error) {
	var docs []models.Document
	if err := r.db.WithContext(ctx).
		Preload("Type").
		Where("request_id = ? AND uploaded_at IS NOT NULL AND invalidated_at IS NULL", requestID).
		Find(&docs).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return docs, nil
}

// findOwnedDocument resolves a document through the ownership join
// document -> request -> folder -> organization. "Does not exist" and
// "not yours" are deliberately indistinguishable.
func findOwnedDocument(tx *gorm.DB, documentID, organizationID uint) (*models.Document, error) {
	var doc models.Document
	err := tx.
		Joins("JOIN document_requests ON document_requests.id = documents.request_id").
		Joins("JOIN folders ON folders.id = document_requests.folder_id").
		Where("documents.id = ? AND folders.organization_id = ?", documentID, organizationID).
		First(&doc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewAccessError("Document")
		}
		return nil, err
	}
	return &doc, nil
}

// requestCovered reports whether the union of the request's valid documents
// covers every requested document type.
func requestCovered(tx *gorm.DB, req *models.DocumentRequest) (bool, error) {
	required := req.RequestedTypeIDs()
	if len(required) == 0 {
		return false, nil
	}

	var docs []models.Document
	if err := tx.Where("request_id = ? AND invalidated_at IS NULL", req.ID).Find(&docs).Error; err != nil {
		return false, err
	}

	have := make(map[uint]bool, len(docs))
	for i := range docs {
		have[docs[i].TypeID] = true
	}
	for _, id := range required {
		if !have[id] {
			return false, nil
		}
	}
	return true, nil
}

// refreshFolderCompletion stamps or clears the folder's completion flag
// based on its non-archived requests, and always bumps activity. Must run
// after the triggering request's own completion update in the same
// transaction.
func refreshFolderCompletion(tx *gorm.DB, folderID uint, now time.Time) error {
	var siblings []models.DocumentRequest
	if err := tx.Where("folder_id = ?", folderID).Find(&siblings).Error; err != nil {
		return err
	}

	active := 0
	allDone := true
	for i := range siblings {
		if siblings[i].Archived() {
			continue
		}
		active++
		if siblings[i].CompletedAt == nil {
			allDone = false
		}
	}

	updates := map[string]interface{}{"last_activity_at": now}
	if active > 0 && allDone {
		updates["completed_at"] = now
	} else {
		updates["completed_at"] = nil
	}
	return tx.Model(&models.Folder{}).Where("id = ?", folderID).Updates(updates).Error
}

// provisionShareLink returns a live share link for the request, creating a
// fresh 7-day one when none is active. The bool reports whether a new link
// was created.
func provisionShareLink(tx *gorm.DB, requestID uint, now time.Time) (*models.ShareLink, bool, error) {
	var link models.ShareLink
	err := tx.Where("request_id = ? AND expires_at > ?", requestID, now).
		Order("expires_at DESC").
		First(&link).Error
	if err == nil {
		return &link, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	tok, err := token.GenerateFor(token.KindShareLink)
	if err != nil {
		return nil, false, err
	}
	fresh := models.ShareLink{
		RequestID: requestID,
		Token:     tok,
		ExpiresAt: token.ExpiryFor(token.KindShareLink, now),
	}
	if err := tx.Create(&fresh).Error; err != nil {
		return nil, false, err
	}
	return &fresh, true, nil
}
