package model

import "time"

// ExtractedFields is the canned payload attached to an upload once it
// reaches the complete stage.
type ExtractedFields struct {
	ProductName   string `json:"product_name"`
	CASNumber     string `json:"cas_number"`
	Supplier      string `json:"supplier"`
	YearDetected  int    `json:"year_detected"`
	RiskScore     int    `json:"risk_score"`
	ChemicalCount int    `json:"chemical_count"`
}

type UploadTask struct {
	ID              string           `json:"id"`
	DisplayName     string           `json:"display_name"`
	ByteSize        int64            `json:"byte_size"`
	Stage           string           `json:"stage"`
	ProgressPercent int              `json:"progress_percent"`
	DerivedFields   *ExtractedFields `json:"derived_fields,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
}
