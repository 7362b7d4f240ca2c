package service

import (
	"time"

	"documo/internal/models"
)

// View types pair persisted rows with their derived display status. Statuses
// are computed at read time and never stored, so every API response goes
// through one of these constructors.

type DocumentView struct {
	ID               uint                  `json:"id"`
	RequestID        uint                  `json:"request_id"`
	TypeID           uint                  `json:"type_id"`
	Type             *models.DocumentType  `json:"type,omitempty"`
	FileName         string                `json:"file_name"`
	MimeType         string                `json:"mime_type"`
	SizeBytes        int64                 `json:"size_bytes"`
	Status           models.DocumentStatus `json:"status"`
	ValidationErrors []string              `json:"validation_errors,omitempty"`
	UploadedAt       *time.Time            `json:"uploaded_at"`
	ValidatedAt      *time.Time            `json:"validated_at"`
	InvalidatedAt    *time.Time            `json:"invalidated_at"`
}

type RequestView struct {
	ID                  uint                  `json:"id"`
	FolderID            uint                  `json:"folder_id"`
	RecipientEmail      string                `json:"recipient_email"`
	RecipientIdentifier string                `json:"recipient_identifier,omitempty"`
	Status              models.RequestStatus  `json:"status"`
	RequestedTypes      []models.DocumentType `json:"requested_types"`
	Documents           []DocumentView        `json:"documents"`
	DeclineMessage      *string               `json:"decline_message,omitempty"`
	AcceptedAt          *time.Time            `json:"accepted_at"`
	RejectedAt          *time.Time            `json:"rejected_at"`
	CompletedAt         *time.Time            `json:"completed_at"`
	CreatedAt           time.Time             `json:"created_at"`
}

type FolderView struct {
	ID             uint                  `json:"id"`
	Name           string                `json:"name"`
	Description    string                `json:"description"`
	Status         models.FolderStatus   `json:"status"`
	RequiredTypes  []models.DocumentType `json:"required_types,omitempty"`
	Requests       []RequestView         `json:"requests,omitempty"`
	LastActivityAt *time.Time            `json:"last_activity_at"`
	CompletedAt    *time.Time            `json:"completed_at"`
	ArchivedAt     *time.Time            `json:"archived_at"`
	CreatedAt      time.Time             `json:"created_at"`
}

func NewDocumentView(d *models.Document) DocumentView {
	return DocumentView{
		ID:               d.ID,
		RequestID:        d.RequestID,
		TypeID:           d.TypeID,
		Type:             d.Type,
		FileName:         d.FileName,
		MimeType:         d.MimeType,
		SizeBytes:        d.SizeBytes,
		Status:           models.ComputeDocumentStatus(d),
		ValidationErrors: d.ValidationErrors,
		UploadedAt:       d.UploadedAt,
		ValidatedAt:      d.ValidatedAt,
		InvalidatedAt:    d.InvalidatedAt,
	}
}

func NewRequestView(r *models.DocumentRequest) RequestView {
	docs := make([]DocumentView, 0, len(r.Documents))
	for i := range r.Documents {
		docs = append(docs, NewDocumentView(&r.Documents[i]))
	}

	var decline *string
	if !r.Archived() {
		decline = r.DeclineMessage
	}

	return RequestView{
		ID:                  r.ID,
		FolderID:            r.FolderID,
		RecipientEmail:      r.RecipientEmail,
		RecipientIdentifier: r.RecipientIdentifier,
		Status:              models.ComputeRequestStatus(r),
		RequestedTypes:      r.RequestedTypes,
		Documents:           docs,
		DeclineMessage:      decline,
		AcceptedAt:          r.AcceptedAt,
		RejectedAt:          r.RejectedAt,
		CompletedAt:         r.CompletedAt,
		CreatedAt:           r.CreatedAt,
	}
}

func NewFolderView(f *models.Folder) FolderView {
	reqs := make([]RequestView, 0, len(f.Requests))
	for i := range f.Requests {
		reqs = append(reqs, NewRequestView(&f.Requests[i]))
	}

	return FolderView{
		ID:             f.ID,
		Name:           f.Name,
		Description:    f.Description,
		Status:         models.ComputeFolderStatus(f),
		RequiredTypes:  f.RequiredTypes,
		Requests:       reqs,
		LastActivityAt: f.LastActivityAt,
		CompletedAt:    f.CompletedAt,
		ArchivedAt:     f.ArchivedAt,
		CreatedAt:      f.CreatedAt,
	}
}
