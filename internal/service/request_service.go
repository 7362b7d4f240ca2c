package service

import (
	"context"
	"time"

	"documo/internal/models"
	"documo/internal/notify"
	"documo/internal/observability"
	"documo/internal/repository"
	"documo/internal/token"
)

// RequestService manages staff-side document requests and the share links
// that give recipients access to them.
type RequestService struct {
	requestRepo repository.RequestRepository
	folderRepo  repository.FolderRepository
	linkRepo    repository.ShareLinkRepository
	mailer      notify.Mailer
}

type CreateRequestInput struct {
	OrganizationID      uint
	FolderID            uint
	RecipientEmail      string
	RecipientIdentifier string
	TypeIDs             []uint
}

// CreateRequestResult is the created request plus the invitation link that
// was issued and mailed alongside it.
type CreateRequestResult struct {
	Request        RequestView `json:"request"`
	ShareToken     string      `json:"share_token"`
	ShareExpiresAt time.Time   `json:"share_expires_at"`
}

func NewRequestService(
	requestRepo repository.RequestRepository,
	folderRepo repository.FolderRepository,
	linkRepo repository.ShareLinkRepository,
	mailer notify.Mailer,
) *RequestService {
	return &RequestService{
		requestRepo: requestRepo,
		folderRepo:  folderRepo,
		linkRepo:    linkRepo,
		mailer:      mailer,
	}
}

// Create adds a request to one of the caller's folders, issues a 7-day
// share link and mails the invitation. A failed mail send does not undo the
// request; the link can be re-sent.
func (s *RequestService) Create(ctx context.Context, in CreateRequestInput) (*CreateRequestResult, error) {
	folder, err := s.folderRepo.GetForOrg(ctx, in.FolderID, in.OrganizationID)
	if err != nil {
		return nil, err
	}

	req := &models.DocumentRequest{
		FolderID:            folder.ID,
		RecipientEmail:      in.RecipientEmail,
		RecipientIdentifier: in.RecipientIdentifier,
	}
	created, err := s.requestRepo.Create(ctx, req, in.TypeIDs)
	if err != nil {
		return nil, err
	}

	link, err := s.issueLink(ctx, created.ID, "staff")
	if err != nil {
		return nil, err
	}

	if mailErr := s.mailer.SendShareLinkInvitation(ctx, created.RecipientEmail,
		organizationName(folder), folder.Name, link.Token, link.ExpiresAt); mailErr != nil {
		observability.MailFailures.Inc()
	}

	return &CreateRequestResult{
		Request:        NewRequestView(created),
		ShareToken:     link.Token,
		ShareExpiresAt: link.ExpiresAt,
	}, nil
}

// Get returns one request scoped to the caller's organization.
func (s *RequestService) Get(ctx context.Context, requestID, organizationID uint) (*RequestView, error) {
	req, err := s.requestRepo.GetForOrg(ctx, requestID, organizationID)
	if err != nil {
		return nil, err
	}
	view := NewRequestView(req)
	return &view, nil
}

// Archive soft-archives a request so it stops counting against its folder.
func (s *RequestService) Archive(ctx context.Context, requestID, organizationID uint) error {
	return s.requestRepo.ArchiveForOrg(ctx, requestID, organizationID)
}

// ResendLink issues a fresh share link for an existing request and mails it.
func (s *RequestService) ResendLink(ctx context.Context, requestID, organizationID uint) (*CreateRequestResult, error) {
	req, err := s.requestRepo.GetForOrg(ctx, requestID, organizationID)
	if err != nil {
		return nil, err
	}

	link, err := s.issueLink(ctx, req.ID, "staff")
	if err != nil {
		return nil, err
	}

	folder, err := s.folderRepo.GetForOrg(ctx, req.FolderID, organizationID)
	if err != nil {
		return nil, err
	}
	if mailErr := s.mailer.SendShareLinkInvitation(ctx, req.RecipientEmail,
		organizationName(folder), folder.Name, link.Token, link.ExpiresAt); mailErr != nil {
		observability.MailFailures.Inc()
	}

	return &CreateRequestResult{
		Request:        NewRequestView(req),
		ShareToken:     link.Token,
		ShareExpiresAt: link.ExpiresAt,
	}, nil
}

func (s *RequestService) issueLink(ctx context.Context, requestID uint, trigger string) (*models.ShareLink, error) {
	expiresAt := token.ExpiryFor(token.KindShareLink, time.Now().UTC())
	link, err := s.linkRepo.Create(ctx, requestID, expiresAt)
	if err != nil {
		return nil, err
	}
	observability.ShareLinksIssued.WithLabelValues(trigger).Inc()
	return link, nil
}

func organizationName(f *models.Folder) string {
	if f.Organization != nil {
		return f.Organization.Name
	}
	return ""
}
