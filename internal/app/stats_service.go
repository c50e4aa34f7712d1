package app

import "pfas-demo/internal/model"

const highRiskThreshold = 75

type DashboardStats struct {
	Documents         int            `json:"documents"`
	DocumentsByStatus map[string]int `json:"documents_by_status"`
	Chemicals         int            `json:"chemicals"`
	ChemicalsByStatus map[string]int `json:"chemicals_by_status"`
	AverageRisk       float64        `json:"average_risk"`
	HighRisk          int            `json:"high_risk"`
	Suppliers         int            `json:"suppliers"`
	ActiveUploads     int            `json:"active_uploads"`
}

type StatsService struct {
	docRepo  DocumentStore
	chemRepo ChemicalStore
	uploads  UploadPipeline
}

func NewStatsService(docRepo DocumentStore, chemRepo ChemicalStore, uploads UploadPipeline) *StatsService {
	return &StatsService{docRepo: docRepo, chemRepo: chemRepo, uploads: uploads}
}

func (s *StatsService) Summary() (*DashboardStats, error) {
	docs, err := s.docRepo.List()
	if err != nil {
		return nil, err
	}
	chems, err := s.chemRepo.List()
	if err != nil {
		return nil, err
	}

	docCounts := statusCounts(
		model.DocumentStatusIndexed,
		model.DocumentStatusVerified,
		model.DocumentStatusPending,
		model.DocumentStatusProcessing,
	)
	chemCounts := statusCounts(
		model.ChemicalStatusVerified,
		model.ChemicalStatusEvidenceGap,
		model.ChemicalStatusPendingReview,
	)
	stats := &DashboardStats{
		Documents:         len(docs),
		DocumentsByStatus: docCounts,
		Chemicals:         len(chems),
		ChemicalsByStatus: chemCounts,
	}
	for _, d := range docs {
		stats.DocumentsByStatus[d.Status]++
	}

	suppliers := make(map[string]struct{})
	riskSum := 0
	for _, c := range chems {
		stats.ChemicalsByStatus[c.Status]++
		riskSum += c.RiskScore
		if c.RiskScore >= highRiskThreshold {
			stats.HighRisk++
		}
		suppliers[c.Supplier] = struct{}{}
	}
	stats.Suppliers = len(suppliers)
	if len(chems) > 0 {
		stats.AverageRisk = float64(riskSum) / float64(len(chems))
	}
	if s.uploads != nil {
		stats.ActiveUploads = len(s.uploads.List())
	}
	return stats, nil
}

// statusCounts keeps every known status present, even at zero.
func statusCounts(statuses ...string) map[string]int {
	out := make(map[string]int, len(statuses))
	for _, st := range statuses {
		out[st] = 0
	}
	return out
}

