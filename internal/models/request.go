package models

import "time"

// ArchivedDeclineMessage is the sentinel decline message marking a request as
// soft-archived. Requests are never hard-deleted.
const ArchivedDeclineMessage = "__archived__"

// DocumentRequest asks one recipient for a set of document types. The three
// lifecycle timestamps (accepted/rejected/completed) are independent nullable
// fields; the displayed status is derived on read with a fixed precedence.
type DocumentRequest struct {
	ID                      uint           `gorm:"primaryKey" json:"id"`
	FolderID                uint           `gorm:"not null;index" json:"folder_id"`
	Folder                  *Folder        `gorm:"foreignKey:FolderID" json:"folder,omitempty"`
	RecipientEmail          string         `gorm:"size:255;not null;index" json:"recipient_email"`
	RecipientIdentifier     string         `gorm:"size:64" json:"recipient_identifier,omitempty"`
	RequestedTypes          []DocumentType `gorm:"many2many:request_requested_types" json:"requested_types,omitempty"`
	ExpiresAt               *time.Time     `json:"expires_at"`
	AcceptedAt              *time.Time     `json:"accepted_at"`
	RejectedAt              *time.Time     `json:"rejected_at"`
	DeclineMessage          *string        `gorm:"type:text" json:"decline_message,omitempty"`
	FirstDocumentUploadedAt *time.Time     `json:"first_document_uploaded_at"`
	CompletedAt             *time.Time     `json:"completed_at"`
	CreatedAt               time.Time      `json:"created_at"`
	UpdatedAt               time.Time      `json:"updated_at"`

	Documents []Document `gorm:"foreignKey:RequestID" json:"documents,omitempty"`
}

// Archived reports whether the request was soft-archived via the sentinel
// decline message.
func (r *DocumentRequest) Archived() bool {
	return r.DeclineMessage != nil && *r.DeclineMessage == ArchivedDeclineMessage
}

// RequestedTypeIDs returns the ids of the requested document types.
func (r *DocumentRequest) RequestedTypeIDs() []uint {
	ids := make([]uint, 0, len(r.RequestedTypes))
	for _, t := range r.RequestedTypes {
		ids = append(ids, t.ID)
	}
	return ids
}
