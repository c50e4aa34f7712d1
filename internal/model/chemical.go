package model

const (
	ChemicalStatusVerified      = "verified"
	ChemicalStatusEvidenceGap   = "evidence-gap"
	ChemicalStatusPendingReview = "pending-review"
)

// ChemicalRecord is a detected substance shown in the Detective view.
// DocumentID is an optional link back to the document it was extracted from.
type ChemicalRecord struct {
	ID           string `gorm:"primaryKey;size:36" json:"id" yaml:"id"`
	ProductName  string `gorm:"size:256;not null" json:"product_name" yaml:"product_name"`
	CASNumber    string `gorm:"size:32;not null;index" json:"cas_number" yaml:"cas_number"`
	YearDetected int    `gorm:"not null" json:"year_detected" yaml:"year_detected"`
	RiskScore    int    `gorm:"not null" json:"risk_score" yaml:"risk_score"`
	Status       string `gorm:"size:16;not null;index" json:"status" yaml:"status"`
	Supplier     string `gorm:"size:128;not null" json:"supplier" yaml:"supplier"`
	DocumentID   string `gorm:"size:36;index" json:"document_id,omitempty" yaml:"document_id"`
}

func ValidChemicalStatus(status string) bool {
	switch status {
	case ChemicalStatusVerified, ChemicalStatusEvidenceGap, ChemicalStatusPendingReview:
		return true
	}
	return false
}
