package memory

import (
	"fmt"
	"sort"

	"pfas-demo/internal/model"
)

type DocumentRepository struct {
	t *table[string, model.Document]
}

func NewDocumentRepository() *DocumentRepository {
	return &DocumentRepository{t: newTable[string, model.Document]()}
}

func (r *DocumentRepository) Create(doc *model.Document) error {
	if !r.t.insert(doc.ID, *doc) {
		return fmt.Errorf("create document failed: id %q already exists", doc.ID)
	}
	return nil
}

func (r *DocumentRepository) Seed(docs []model.Document) error {
	for _, doc := range docs {
		r.t.insert(doc.ID, doc)
	}
	return nil
}

// List returns documents newest first.
func (r *DocumentRepository) List() ([]model.Document, error) {
	docs := r.t.all()
	sort.SliceStable(docs, func(i, j int) bool {
		return docs[i].UploadedAt.After(docs[j].UploadedAt)
	})
	return docs, nil
}

func (r *DocumentRepository) GetByID(id string) (*model.Document, error) {
	doc, ok := r.t.get(id)
	if !ok {
		return nil, nil
	}
	return &doc, nil
}

func (r *DocumentRepository) UpdateStatus(id, status string) error {
	r.t.update(id, func(d *model.Document) { d.Status = status })
	return nil
}

func (r *DocumentRepository) Delete(id string) error {
	r.t.remove(id)
	return nil
}
