package app

import (
	"errors"
	"strings"

	"pfas-demo/internal/model"
	"pfas-demo/internal/query"
)

var (
	ErrDocumentNotFound = errors.New("document not found")
	ErrInvalidSortKey   = errors.New("unknown sort key")
	ErrInvalidStatus    = errors.New("unknown status")
)

func docName(d model.Document) string           { return d.Name }
func docSource(d model.Document) string         { return d.Source }
func docStatus(d model.Document) string         { return d.Status }
func docSize(d model.Document) float64          { return float64(d.SizeBytes) }
func docUploadedAt(d model.Document) float64    { return float64(d.UploadedAt.UnixMilli()) }
func docChemicalCount(d model.Document) float64 { return float64(d.ExtractedChemicalCount) }

var documentSortKeys = map[string]query.Key[model.Document]{
	"name":                     query.TextKey(docName),
	"source":                   query.TextKey(docSource),
	"status":                   query.TextKey(docStatus),
	"size_bytes":               query.NumberKey(docSize),
	"uploaded_at":              query.NumberKey(docUploadedAt),
	"extracted_chemical_count": query.NumberKey(docChemicalCount),
}

// DocumentQuery drives the Documents view. Zero values disable a filter.
type DocumentQuery struct {
	Text      string
	Status    string
	Source    string
	Size      query.Range
	SortBy    string
	Direction query.Direction
	Page      int
	PageSize  int
}

type DocumentService struct {
	docRepo DocumentStore
}

func NewDocumentService(docRepo DocumentStore) *DocumentService {
	return &DocumentService{docRepo: docRepo}
}

func (s *DocumentService) Search(q DocumentQuery) (*query.Page[model.Document], error) {
	key, err := lookupSortKey(documentSortKeys, q.SortBy)
	if err != nil {
		return nil, err
	}

	docs, err := s.docRepo.List()
	if err != nil {
		return nil, err
	}

	preds := []query.Predicate[model.Document]{
		query.Contains(q.Text, docName, docSource),
		query.Equals(q.Status, docStatus),
		query.Equals(q.Source, docSource),
		query.InRange(q.Size, docSize),
	}
	page := query.Run(docs, preds, key, q.Direction, q.Page, q.PageSize)
	return &page, nil
}

func (s *DocumentService) Get(id string) (*model.Document, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrInvalidInput
	}
	doc, err := s.docRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, ErrDocumentNotFound
	}
	return doc, nil
}

func (s *DocumentService) UpdateStatus(id, status string) (*model.Document, error) {
	if !model.ValidDocumentStatus(status) {
		return nil, ErrInvalidStatus
	}
	doc, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if err := s.docRepo.UpdateStatus(id, status); err != nil {
		return nil, err
	}
	doc.Status = status
	return doc, nil
}

// lookupSortKey returns nil for an empty name, keeping store order.
func lookupSortKey[T any](keys map[string]query.Key[T], name string) (*query.Key[T], error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}
	key, ok := keys[name]
	if !ok {
		return nil, ErrInvalidSortKey
	}
	return &key, nil
}
