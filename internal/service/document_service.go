package service

import (
	"context"

	"documo/internal/notify"
	"documo/internal/observability"
	"documo/internal/repository"
)

// DocumentService covers the staff-side review of uploaded documents.
type DocumentService struct {
	docRepo repository.DocumentRepository
	mailer  notify.Mailer
}

func NewDocumentService(docRepo repository.DocumentRepository, mailer notify.Mailer) *DocumentService {
	return &DocumentService{docRepo: docRepo, mailer: mailer}
}

// Validate marks a document as reviewed and valid.
func (s *DocumentService) Validate(ctx context.Context, documentID, organizationID uint) (*DocumentView, error) {
	doc, err := s.docRepo.ValidateForOrg(ctx, documentID, organizationID)
	if err != nil {
		return nil, err
	}
	observability.DocumentReviews.WithLabelValues("valid").Inc()
	view := NewDocumentView(doc)
	return &view, nil
}

// Invalidate rejects a document with a reason, reopens the request and
// notifies the recipient through the (re)issued share link. The rejection
// stands even if the notification cannot be delivered.
func (s *DocumentService) Invalidate(ctx context.Context, documentID, organizationID uint, reason string) (*DocumentView, error) {
	notice, err := s.docRepo.InvalidateForOrg(ctx, documentID, organizationID, reason)
	if err != nil {
		return nil, err
	}
	observability.DocumentReviews.WithLabelValues("invalid").Inc()
	if notice.LinkReissued {
		observability.ShareLinksIssued.WithLabelValues("invalidation").Inc()
	}

	if mailErr := s.mailer.SendInvalidationNotice(ctx, notice); mailErr != nil {
		observability.MailFailures.Inc()
	}

	return s.viewOf(ctx, documentID, organizationID)
}

func (s *DocumentService) viewOf(ctx context.Context, documentID, organizationID uint) (*DocumentView, error) {
	doc, err := s.docRepo.GetForOrg(ctx, documentID, organizationID)
	if err != nil {
		return nil, err
	}
	view := NewDocumentView(doc)
	return &view, nil
}

// ValidDocuments returns a request's current valid document set.
func (s *DocumentService) ValidDocuments(ctx context.Context, requestID uint) ([]DocumentView, error) {
	docs, err := s.docRepo.GetValidByRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	views := make([]DocumentView, 0, len(docs))
	for i := range docs {
		views = append(views, NewDocumentView(&docs[i]))
	}
	return views, nil
}
