package app

import (
	"errors"
	"strings"

	"pfas-demo/internal/model"
	"pfas-demo/internal/query"
)

var (
	ErrChemicalNotFound = errors.New("chemical record not found")
	ErrInvalidAction    = errors.New("unknown review action")
)

const (
	ReviewVerify = "verify"
	ReviewFlag   = "flag"
	ReviewReset  = "reset"
)

var reviewTransitions = map[string]string{
	ReviewVerify: model.ChemicalStatusVerified,
	ReviewFlag:   model.ChemicalStatusEvidenceGap,
	ReviewReset:  model.ChemicalStatusPendingReview,
}

func chemProduct(c model.ChemicalRecord) string  { return c.ProductName }
func chemCAS(c model.ChemicalRecord) string      { return c.CASNumber }
func chemSupplier(c model.ChemicalRecord) string { return c.Supplier }
func chemStatus(c model.ChemicalRecord) string   { return c.Status }
func chemYear(c model.ChemicalRecord) float64    { return float64(c.YearDetected) }
func chemRisk(c model.ChemicalRecord) float64    { return float64(c.RiskScore) }

var chemicalSortKeys = map[string]query.Key[model.ChemicalRecord]{
	"product_name":  query.TextKey(chemProduct),
	"cas_number":    query.TextKey(chemCAS),
	"supplier":      query.TextKey(chemSupplier),
	"status":        query.TextKey(chemStatus),
	"year_detected": query.NumberKey(chemYear),
	"risk_score":    query.NumberKey(chemRisk),
}

// ChemicalQuery drives the Detective view.
type ChemicalQuery struct {
	Text      string
	Status    string
	Supplier  string
	Risk      query.Range
	Year      query.Range
	SortBy    string
	Direction query.Direction
	Page      int
	PageSize  int
}

type ChemicalService struct {
	chemRepo ChemicalStore
}

func NewChemicalService(chemRepo ChemicalStore) *ChemicalService {
	return &ChemicalService{chemRepo: chemRepo}
}

func (s *ChemicalService) Search(q ChemicalQuery) (*query.Page[model.ChemicalRecord], error) {
	key, err := lookupSortKey(chemicalSortKeys, q.SortBy)
	if err != nil {
		return nil, err
	}

	records, err := s.chemRepo.List()
	if err != nil {
		return nil, err
	}

	preds := []query.Predicate[model.ChemicalRecord]{
		query.Contains(q.Text, chemProduct, chemCAS, chemSupplier),
		query.Equals(q.Status, chemStatus),
		query.Equals(q.Supplier, chemSupplier),
		query.InRange(q.Risk, chemRisk),
		query.InRange(q.Year, chemYear),
	}
	page := query.Run(records, preds, key, q.Direction, q.Page, q.PageSize)
	return &page, nil
}

func (s *ChemicalService) Get(id string) (*model.ChemicalRecord, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrInvalidInput
	}
	record, err := s.chemRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, ErrChemicalNotFound
	}
	return record, nil
}

// Review applies a reviewer action and returns the updated record.
func (s *ChemicalService) Review(id, action string) (*model.ChemicalRecord, error) {
	status, ok := reviewTransitions[strings.ToLower(strings.TrimSpace(action))]
	if !ok {
		return nil, ErrInvalidAction
	}
	record, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if err := s.chemRepo.UpdateStatus(id, status); err != nil {
		return nil, err
	}
	record.Status = status
	return record, nil
}
