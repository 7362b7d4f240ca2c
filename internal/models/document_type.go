package models

import "time"

// DocumentType is a kind of document an organization can request
// (e.g. passport, proof of address, payslip).
type DocumentType struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:64;not null;uniqueIndex" json:"name"`
	Label       string    `gorm:"size:120;not null" json:"label"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
