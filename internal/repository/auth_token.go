package repository

import (
	"context"
	"errors"
	"time"

	"documo/internal/models"
	"documo/internal/token"

	"gorm.io/gorm"
)

// AuthTokenRepository defines the interface for opaque credential storage.
// Session tokens are revoked eagerly on lookup when expired; one-shot tokens
// (email verification, password reset) are consumed exactly once.
type AuthTokenRepository interface {
	Issue(ctx context.Context, userID uint, kind models.AuthTokenKind) (*models.AuthToken, error)
	GetActiveSession(ctx context.Context, tok string) (*models.AuthToken, error)
	Consume(ctx context.Context, tok string, kind models.AuthTokenKind) (*models.AuthToken, error)
	Revoke(ctx context.Context, tok string) error
	RevokeAllForUser(ctx context.Context, userID uint, kind models.AuthTokenKind) error
}

type authTokenRepository struct {
	db *gorm.DB
}

// NewAuthTokenRepository creates a new auth-token repository.
func NewAuthTokenRepository(db *gorm.DB) AuthTokenRepository {
	return &authTokenRepository{db: db}
}

func tokenKind(kind models.AuthTokenKind) token.Kind {
	switch kind {
	case models.AuthTokenSession:
		return token.KindSession
	case models.AuthTokenEmailVerification:
		return token.KindEmailVerification
	case models.AuthTokenPasswordReset:
		return token.KindPasswordReset
	default:
		return token.Kind(kind)
	}
}

// Issue generates and stores a fresh token of the kind's standard length and
// validity window.
func (r *authTokenRepository) Issue(ctx context.Context, userID uint, kind models.AuthTokenKind) (*models.AuthToken, error) {
	k := tokenKind(kind)
	tok, err := token.GenerateFor(k)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	now := time.Now().UTC()
	row := &models.AuthToken{
		UserID:    userID,
		Kind:      kind,
		Token:     tok,
		ExpiresAt: token.ExpiryFor(k, now),
	}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return row, nil
}

// GetActiveSession resolves a session token. An expired row is deleted on
// the spot and reported as unauthorized, so stale sessions do not linger
// until a sweep.
func (r *authTokenRepository) GetActiveSession(ctx context.Context, tok string) (*models.AuthToken, error) {
	var row models.AuthToken
	err := r.db.WithContext(ctx).
		Preload("User.Organization").
		Where("token = ? AND kind = ?", tok, models.AuthTokenSession).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewUnauthorizedError("Invalid session")
		}
		return nil, models.NewInternalError(err)
	}

	if token.Expired(row.ExpiresAt, time.Now().UTC()) {
		if err := r.db.WithContext(ctx).Delete(&models.AuthToken{}, row.ID).Error; err != nil {
			return nil, models.NewInternalError(err)
		}
		return nil, models.NewUnauthorizedError("Session expired")
	}
	return &row, nil
}

// Consume atomically claims a one-shot token. A second consume, an expired
// token and an unknown token are all reported identically.
func (r *authTokenRepository) Consume(ctx context.Context, tok string, kind models.AuthTokenKind) (*models.AuthToken, error) {
	var row *models.AuthToken
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var found models.AuthToken
		err := tx.Preload("User").
			Where("token = ? AND kind = ? AND consumed_at IS NULL AND expires_at > ?",
				tok, kind, time.Now().UTC()).
			First(&found).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewUnauthorizedError("Invalid or expired token")
			}
			return err
		}

		now := time.Now().UTC()
		if err := tx.Model(&models.AuthToken{}).Where("id = ?", found.ID).
			Update("consumed_at", now).Error; err != nil {
			return err
		}
		found.ConsumedAt = &now
		row = &found
		return nil
	})
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, models.NewInternalError(err)
	}
	return row, nil
}

// Revoke deletes a token regardless of kind or expiry. Revoking an unknown
// token succeeds; logout is idempotent.
func (r *authTokenRepository) Revoke(ctx context.Context, tok string) error {
	if err := r.db.WithContext(ctx).Where("token = ?", tok).Delete(&models.AuthToken{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// RevokeAllForUser drops every token of the kind for the user. Used after a
// password reset to force re-login everywhere.
func (r *authTokenRepository) RevokeAllForUser(ctx context.Context, userID uint, kind models.AuthTokenKind) error {
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND kind = ?", userID, kind).
		Delete(&models.AuthToken{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
