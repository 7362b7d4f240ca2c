package models

import "time"

// ShareLink is an opaque bearer token granting time-limited, unauthenticated
// access to one request's accept/decline/upload flow. Expired rows stay in
// storage until the periodic sweep removes them; lookups filter them out.
type ShareLink struct {
	ID        uint             `gorm:"primaryKey" json:"id"`
	RequestID uint             `gorm:"not null;index" json:"request_id"`
	Request   *DocumentRequest `gorm:"foreignKey:RequestID" json:"request,omitempty"`
	Token     string           `gorm:"size:128;not null;uniqueIndex" json:"token"`
	ExpiresAt time.Time        `gorm:"not null;index" json:"expires_at"`
	CreatedAt time.Time        `json:"created_at"`
}
