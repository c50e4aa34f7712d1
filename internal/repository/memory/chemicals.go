package memory

import (
	"fmt"

	"pfas-demo/internal/model"
)

type ChemicalRepository struct {
	t *table[string, model.ChemicalRecord]
}

func NewChemicalRepository() *ChemicalRepository {
	return &ChemicalRepository{t: newTable[string, model.ChemicalRecord]()}
}

func (r *ChemicalRepository) Create(record *model.ChemicalRecord) error {
	if !r.t.insert(record.ID, *record) {
		return fmt.Errorf("create chemical record failed: id %q already exists", record.ID)
	}
	return nil
}

func (r *ChemicalRepository) Seed(records []model.ChemicalRecord) error {
	for _, rec := range records {
		r.t.insert(rec.ID, rec)
	}
	return nil
}

func (r *ChemicalRepository) List() ([]model.ChemicalRecord, error) {
	return r.t.all(), nil
}

func (r *ChemicalRepository) GetByID(id string) (*model.ChemicalRecord, error) {
	rec, ok := r.t.get(id)
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (r *ChemicalRepository) UpdateStatus(id, status string) error {
	r.t.update(id, func(c *model.ChemicalRecord) { c.Status = status })
	return nil
}

func (r *ChemicalRepository) Delete(id string) error {
	r.t.remove(id)
	return nil
}
