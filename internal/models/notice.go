package models

import "time"

// InvalidationNotice carries everything needed to tell a recipient that one
// of their documents was rejected and that they can re-upload through the
// (re)issued share link. Composing and delivering the message is the
// caller's job.
type InvalidationNotice struct {
	RequestID         uint      `json:"request_id"`
	RecipientEmail    string    `json:"recipient_email"`
	OrganizationName  string    `json:"organization_name"`
	FolderName        string    `json:"folder_name"`
	DocumentTypeLabel string    `json:"document_type_label"`
	FileName          string    `json:"file_name"`
	Reason            string    `json:"reason"`
	ShareToken        string    `json:"share_token"`
	ShareExpiresAt    time.Time `json:"share_expires_at"`
	// LinkReissued is true when no live link existed and a fresh one was
	// created for the re-upload.
	LinkReissued bool `json:"link_reissued"`
}
