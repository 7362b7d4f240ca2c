package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// StringList is a []string stored as a JSON text column.
type StringList []string

// Value serializes the list for storage.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan deserializes the list from storage.
func (l *StringList) Scan(src interface{}) error {
	if src == nil {
		*l = nil
		return nil
	}
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("cannot scan %T into StringList", src)
	}
}

// Document is one uploaded file attempting to satisfy one requested document
// type. At most one of ValidatedAt/InvalidatedAt is active at a time;
// validating clears invalidation and vice versa.
type Document struct {
	ID               uint             `gorm:"primaryKey" json:"id"`
	RequestID        uint             `gorm:"not null;index" json:"request_id"`
	Request          *DocumentRequest `gorm:"foreignKey:RequestID" json:"request,omitempty"`
	TypeID           uint             `gorm:"not null;index" json:"type_id"`
	Type             *DocumentType    `gorm:"foreignKey:TypeID" json:"type,omitempty"`
	FileName         string           `gorm:"size:255;not null" json:"file_name"`
	MimeType         string           `gorm:"size:100" json:"mime_type"`
	SizeBytes        int64            `json:"size_bytes"`
	StorageURL       string           `gorm:"size:512" json:"storage_url"`
	ContentHash      string           `gorm:"size:128" json:"content_hash"`
	EncryptedKeyRef  string           `gorm:"size:255" json:"encrypted_key_ref,omitempty"`
	ValidationErrors StringList       `gorm:"type:text" json:"validation_errors,omitempty"`
	UploadedAt       *time.Time       `json:"uploaded_at"`
	ValidatedAt      *time.Time       `json:"validated_at"`
	InvalidatedAt    *time.Time       `json:"invalidated_at"`
	ErrorAt          *time.Time       `json:"error_at"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
	DeletedAt        gorm.DeletedAt   `gorm:"index" json:"-"`
}
