package service

import (
	"context"
	"strings"

	"documo/internal/models"
	"documo/internal/observability"
	"documo/internal/repository"
)

// ExternalService serves recipients acting through a share link. The token
// is the only credential on this surface; an unknown or expired token is
// indistinguishable from a missing request.
type ExternalService struct {
	linkRepo    repository.ShareLinkRepository
	requestRepo repository.RequestRepository
	docRepo     repository.DocumentRepository
}

// SharedRequestView is what a recipient sees when opening a share link: the
// request, who is asking, and what for.
type SharedRequestView struct {
	OrganizationName string      `json:"organization_name"`
	FolderName       string      `json:"folder_name"`
	Request          RequestView `json:"request"`
}

type ExternalUploadInput struct {
	ShareToken string
	TypeID     uint
	FileName   string
	MimeType   string
	SizeBytes  int64
	StorageURL string
}

func NewExternalService(
	linkRepo repository.ShareLinkRepository,
	requestRepo repository.RequestRepository,
	docRepo repository.DocumentRepository,
) *ExternalService {
	return &ExternalService{
		linkRepo:    linkRepo,
		requestRepo: requestRepo,
		docRepo:     docRepo,
	}
}

// Resolve turns a share token into the recipient's view of the request.
func (s *ExternalService) Resolve(ctx context.Context, shareToken string) (*SharedRequestView, error) {
	link, err := s.resolveLink(ctx, shareToken)
	if err != nil {
		return nil, err
	}
	view := s.viewOf(link)
	return view, nil
}

// Accept records the recipient's agreement to provide the documents.
func (s *ExternalService) Accept(ctx context.Context, shareToken string) (*SharedRequestView, error) {
	link, err := s.resolveLink(ctx, shareToken)
	if err != nil {
		return nil, err
	}
	if _, err := s.requestRepo.Accept(ctx, link.RequestID); err != nil {
		return nil, err
	}
	return s.reload(ctx, shareToken)
}

// Decline records a refusal with an optional message. The sentinel used
// internally for archiving is not accepted from recipients.
func (s *ExternalService) Decline(ctx context.Context, shareToken string, message *string) (*SharedRequestView, error) {
	if message != nil {
		trimmed := strings.TrimSpace(*message)
		if trimmed == "" {
			message = nil
		} else if trimmed == models.ArchivedDeclineMessage {
			return nil, models.NewValidationError("Invalid decline message")
		} else {
			message = &trimmed
		}
	}

	link, err := s.resolveLink(ctx, shareToken)
	if err != nil {
		return nil, err
	}
	if _, err := s.requestRepo.Decline(ctx, link.RequestID, message); err != nil {
		return nil, err
	}
	return s.reload(ctx, shareToken)
}

// Upload attaches a document to the request behind the share link. The
// document type must be one of the requested types.
func (s *ExternalService) Upload(ctx context.Context, in ExternalUploadInput) (*SharedRequestView, error) {
	link, err := s.resolveLink(ctx, in.ShareToken)
	if err != nil {
		return nil, err
	}

	if in.FileName == "" {
		return nil, models.NewValidationError("File name is required")
	}
	requested := false
	for _, t := range link.Request.RequestedTypes {
		if t.ID == in.TypeID {
			requested = true
			break
		}
	}
	if !requested {
		return nil, models.NewValidationError("Document type was not requested")
	}

	wasComplete := link.Request.CompletedAt != nil

	doc := &models.Document{
		RequestID:  link.RequestID,
		TypeID:     in.TypeID,
		FileName:   in.FileName,
		MimeType:   in.MimeType,
		SizeBytes:  in.SizeBytes,
		StorageURL: in.StorageURL,
	}
	if _, err := s.docRepo.Upload(ctx, doc); err != nil {
		return nil, err
	}
	observability.DocumentsUploaded.Inc()

	view, err := s.reload(ctx, in.ShareToken)
	if err != nil {
		return nil, err
	}
	if !wasComplete && view.Request.CompletedAt != nil {
		observability.RequestsCompleted.Inc()
	}
	return view, nil
}

func (s *ExternalService) resolveLink(ctx context.Context, shareToken string) (*models.ShareLink, error) {
	link, err := s.linkRepo.GetByToken(ctx, shareToken)
	if err != nil {
		return nil, err
	}
	if link == nil || link.Request == nil {
		return nil, models.NewAccessError("Share link")
	}
	return link, nil
}

func (s *ExternalService) reload(ctx context.Context, shareToken string) (*SharedRequestView, error) {
	link, err := s.resolveLink(ctx, shareToken)
	if err != nil {
		return nil, err
	}
	return s.viewOf(link), nil
}

func (s *ExternalService) viewOf(link *models.ShareLink) *SharedRequestView {
	view := &SharedRequestView{Request: NewRequestView(link.Request)}
	if link.Request.Folder != nil {
		view.FolderName = link.Request.Folder.Name
		if link.Request.Folder.Organization != nil {
			view.OrganizationName = link.Request.Folder.Organization.Name
		}
	}
	return view
}
