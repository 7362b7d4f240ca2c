// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"
	"time"

	"documo/internal/models"
	"documo/internal/token"

	"gorm.io/gorm"
)

// ShareLinkRepository defines the interface for share-link data operations.
type ShareLinkRepository interface {
	Create(ctx context.Context, requestID uint, expiresAt time.Time) (*models.ShareLink, error)
	GetByToken(ctx context.Context, tok string) (*models.ShareLink, error)
	DeleteExpired(ctx context.Context) (int64, error)
}

type shareLinkRepository struct {
	db *gorm.DB
}

// NewShareLinkRepository creates a new share-link repository.
func NewShareLinkRepository(db *gorm.DB) ShareLinkRepository {
	return &shareLinkRepository{db: db}
}

// Create persists a share link with a freshly generated token. Uniqueness
// collisions over the 256-bit token space are treated like any other insert
// failure rather than retried.
func (r *shareLinkRepository) Create(ctx context.Context, requestID uint, expiresAt time.Time) (*models.ShareLink, error) {
	tok, err := token.GenerateFor(token.KindShareLink)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	link := &models.ShareLink{
		RequestID: requestID,
		Token:     tok,
		ExpiresAt: expiresAt,
	}
	if err := r.db.WithContext(ctx).Create(link).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return link, nil
}

// GetByToken returns the non-expired link for the token, together with its
// request, requested document types, folder and owning organization so
// callers need no second lookup. Expired rows are filtered out but left in
// storage; the sweep removes them.
func (r *shareLinkRepository) GetByToken(ctx context.Context, tok string) (*models.ShareLink, error) {
	var link models.ShareLink
	err := r.db.WithContext(ctx).
		Preload("Request.RequestedTypes").
		Preload("Request.Documents").
		Preload("Request.Folder.Organization").
		Where("token = ? AND expires_at > ?", tok, time.Now().UTC()).
		First(&link).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil // unknown or expired token
		}
		return nil, models.NewInternalError(err)
	}
	return &link, nil
}

// DeleteExpired bulk-deletes all rows whose expiry is in the past and
// returns the count. Running it with nothing expired is a no-op.
func (r *shareLinkRepository) DeleteExpired(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("expires_at < ?", time.Now().UTC()).
		Delete(&models.ShareLink{})
	if res.Error != nil {
		return 0, models.NewInternalError(res.Error)
	}
	return res.RowsAffected, nil
}
