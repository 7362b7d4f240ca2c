package models

// Computed statuses are derived on read from timestamp fields and never
// persisted. Each derivation is a total function with a fixed precedence, so
// contradictory timestamp combinations still map to exactly one status.

// DocumentStatus is the derived display status of a document.
type DocumentStatus string

const (
	DocumentStatusPending  DocumentStatus = "PENDING"
	DocumentStatusUploaded DocumentStatus = "UPLOADED"
	DocumentStatusValid    DocumentStatus = "VALID"
	DocumentStatusInvalid  DocumentStatus = "INVALID"
	DocumentStatusError    DocumentStatus = "ERROR"
)

// RequestStatus is the derived display status of a document request.
type RequestStatus string

const (
	RequestStatusPending    RequestStatus = "PENDING"
	RequestStatusAccepted   RequestStatus = "ACCEPTED"
	RequestStatusInProgress RequestStatus = "IN_PROGRESS"
	RequestStatusRejected   RequestStatus = "REJECTED"
	RequestStatusCompleted  RequestStatus = "COMPLETED"
)

// FolderStatus is the derived display status of a folder.
type FolderStatus string

const (
	FolderStatusPending   FolderStatus = "PENDING"
	FolderStatusActive    FolderStatus = "ACTIVE"
	FolderStatusCompleted FolderStatus = "COMPLETED"
	FolderStatusArchived  FolderStatus = "ARCHIVED"
)

// ComputeDocumentStatus derives a document's status.
// Precedence: error > invalidated > validated > uploaded > pending.
func ComputeDocumentStatus(d *Document) DocumentStatus {
	switch {
	case d.ErrorAt != nil:
		return DocumentStatusError
	case d.InvalidatedAt != nil:
		return DocumentStatusInvalid
	case d.ValidatedAt != nil:
		return DocumentStatusValid
	case d.UploadedAt != nil:
		return DocumentStatusUploaded
	default:
		return DocumentStatusPending
	}
}

// ComputeRequestStatus derives a request's status.
// Precedence: completed > rejected > accepted (IN_PROGRESS once the first
// document arrived) > pending.
func ComputeRequestStatus(r *DocumentRequest) RequestStatus {
	switch {
	case r.CompletedAt != nil:
		return RequestStatusCompleted
	case r.RejectedAt != nil:
		return RequestStatusRejected
	case r.AcceptedAt != nil && r.FirstDocumentUploadedAt != nil:
		return RequestStatusInProgress
	case r.AcceptedAt != nil:
		return RequestStatusAccepted
	default:
		return RequestStatusPending
	}
}

// ComputeFolderStatus derives a folder's status.
// Precedence: archived > completed > active (any recorded activity) > pending.
func ComputeFolderStatus(f *Folder) FolderStatus {
	switch {
	case f.ArchivedAt != nil:
		return FolderStatusArchived
	case f.CompletedAt != nil:
		return FolderStatusCompleted
	case f.LastActivityAt != nil:
		return FolderStatusActive
	default:
		return FolderStatusPending
	}
}
