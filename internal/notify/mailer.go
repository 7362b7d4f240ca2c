// Package notify delivers recipient-facing messages: share-link invitations,
// re-upload notices after an invalidation, and account emails.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"documo/internal/middleware"
	"documo/internal/models"
)

// Mailer abstracts outbound mail so handlers and services do not care about
// the transport. Delivery failures are the caller's to log; none of the core
// flows roll back because a mail did not go out.
type Mailer interface {
	SendShareLinkInvitation(ctx context.Context, recipientEmail, organizationName, folderName, shareToken string, expiresAt time.Time) error
	SendInvalidationNotice(ctx context.Context, notice *models.InvalidationNotice) error
	SendEmailVerification(ctx context.Context, recipientEmail, token string) error
	SendPasswordReset(ctx context.Context, recipientEmail, token string) error
}

// LogMailer writes fully composed messages to the structured log instead of
// an SMTP relay. The default outside production.
type LogMailer struct {
	// BaseURL is the public app URL the links are composed against.
	BaseURL string
}

// NewLogMailer creates a mailer that logs instead of sending.
func NewLogMailer(baseURL string) *LogMailer {
	return &LogMailer{BaseURL: baseURL}
}

// ShareURL composes the recipient-facing upload URL for a share token.
func (m *LogMailer) ShareURL(shareToken string) string {
	return fmt.Sprintf("%s/share/%s", m.BaseURL, shareToken)
}

func (m *LogMailer) SendShareLinkInvitation(ctx context.Context, recipientEmail, organizationName, folderName, shareToken string, expiresAt time.Time) error {
	middleware.Logger.InfoContext(ctx, "mail: share link invitation",
		slog.String("to", recipientEmail),
		slog.String("organization", organizationName),
		slog.String("folder", folderName),
		slog.String("url", m.ShareURL(shareToken)),
		slog.Time("expires_at", expiresAt),
	)
	return nil
}

func (m *LogMailer) SendInvalidationNotice(ctx context.Context, notice *models.InvalidationNotice) error {
	middleware.Logger.InfoContext(ctx, "mail: document invalidation notice",
		slog.String("to", notice.RecipientEmail),
		slog.String("organization", notice.OrganizationName),
		slog.String("folder", notice.FolderName),
		slog.String("document_type", notice.DocumentTypeLabel),
		slog.String("file", notice.FileName),
		slog.String("reason", notice.Reason),
		slog.String("url", m.ShareURL(notice.ShareToken)),
		slog.Time("expires_at", notice.ShareExpiresAt),
		slog.Bool("link_reissued", notice.LinkReissued),
	)
	return nil
}

func (m *LogMailer) SendEmailVerification(ctx context.Context, recipientEmail, token string) error {
	middleware.Logger.InfoContext(ctx, "mail: email verification",
		slog.String("to", recipientEmail),
		slog.String("url", fmt.Sprintf("%s/verify-email/%s", m.BaseURL, token)),
	)
	return nil
}

func (m *LogMailer) SendPasswordReset(ctx context.Context, recipientEmail, token string) error {
	middleware.Logger.InfoContext(ctx, "mail: password reset",
		slog.String("to", recipientEmail),
		slog.String("url", fmt.Sprintf("%s/reset-password/%s", m.BaseURL, token)),
	)
	return nil
}
