package models

import "time"

// Folder groups document requests under one named case for an organization.
type Folder struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	Name           string         `gorm:"size:120;not null" json:"name"`
	Description    string         `gorm:"type:text" json:"description"`
	OrganizationID uint           `gorm:"not null;index" json:"organization_id"`
	Organization   *Organization  `gorm:"foreignKey:OrganizationID" json:"organization,omitempty"`
	RequiredTypes  []DocumentType `gorm:"many2many:folder_required_types" json:"required_types,omitempty"`
	LastActivityAt *time.Time     `json:"last_activity_at"`
	CompletedAt    *time.Time     `json:"completed_at"`
	ArchivedAt     *time.Time     `json:"archived_at"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`

	Requests []DocumentRequest `gorm:"foreignKey:FolderID" json:"requests,omitempty"`
}
