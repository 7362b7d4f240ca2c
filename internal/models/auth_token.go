package models

import "time"

// AuthTokenKind distinguishes the opaque token families the app issues.
type AuthTokenKind string

const (
	// AuthTokenSession is a long-lived refresh/session token.
	AuthTokenSession AuthTokenKind = "session"
	// AuthTokenEmailVerification proves ownership of an email address.
	AuthTokenEmailVerification AuthTokenKind = "email_verification"
	// AuthTokenPasswordReset authorizes a one-time password change.
	AuthTokenPasswordReset AuthTokenKind = "password_reset"
)

// AuthToken is an opaque, stored credential. Unlike share links, expired
// session tokens are revoked eagerly when looked up.
type AuthToken struct {
	ID         uint          `gorm:"primaryKey" json:"id"`
	UserID     uint          `gorm:"not null;index" json:"user_id"`
	User       *User         `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Kind       AuthTokenKind `gorm:"type:varchar(32);not null;index" json:"kind"`
	Token      string        `gorm:"size:160;not null;uniqueIndex" json:"-"`
	ExpiresAt  time.Time     `gorm:"not null;index" json:"expires_at"`
	ConsumedAt *time.Time    `json:"consumed_at"`
	CreatedAt  time.Time     `json:"created_at"`
}
