package models

import "time"

// Organization is the staff-side tenant. Folders, and everything under them,
// belong to exactly one organization.
type Organization struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:120;not null;uniqueIndex" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// User is a staff member of an organization.
type User struct {
	ID              uint          `gorm:"primaryKey" json:"id"`
	Email           string        `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Password        string        `gorm:"size:255;not null" json:"-"`
	OrganizationID  uint          `gorm:"not null;index" json:"organization_id"`
	Organization    *Organization `gorm:"foreignKey:OrganizationID" json:"organization,omitempty"`
	EmailVerifiedAt *time.Time    `json:"email_verified_at"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}
