package model

import "time"

const (
	DocumentStatusIndexed    = "indexed"
	DocumentStatusVerified   = "verified"
	DocumentStatusPending    = "pending"
	DocumentStatusProcessing = "processing"
)

type Document struct {
	ID                     string    `gorm:"primaryKey;size:36" json:"id" yaml:"id"`
	Name                   string    `gorm:"size:256;not null" json:"name" yaml:"name"`
	SizeBytes              int64     `gorm:"not null" json:"size_bytes" yaml:"size_bytes"`
	UploadedAt             time.Time `gorm:"index" json:"uploaded_at" yaml:"uploaded_at"`
	Status                 string    `gorm:"size:16;not null;index" json:"status" yaml:"status"`
	Source                 string    `gorm:"size:64;not null" json:"source" yaml:"source"`
	ExtractedChemicalCount int       `gorm:"not null;default:0" json:"extracted_chemical_count" yaml:"extracted_chemical_count"`
}

// ValidDocumentStatus reports whether status is one of the known document states.
func ValidDocumentStatus(status string) bool {
	switch status {
	case DocumentStatusIndexed, DocumentStatusVerified, DocumentStatusPending, DocumentStatusProcessing:
		return true
	}
	return false
}
