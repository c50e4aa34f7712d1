package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"pfas-demo/internal/model"
)

type ChemicalRepository struct {
	db *gorm.DB
}

func NewChemicalRepository(db *gorm.DB) *ChemicalRepository {
	return &ChemicalRepository{db: db}
}

func (r *ChemicalRepository) Create(record *model.ChemicalRecord) error {
	if err := r.db.Create(record).Error; err != nil {
		return fmt.Errorf("create chemical record failed: %w", err)
	}
	return nil
}

func (r *ChemicalRepository) Seed(records []model.ChemicalRecord) error {
	if len(records) == 0 {
		return nil
	}
	if err := r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&records).Error; err != nil {
		return fmt.Errorf("seed chemical records failed: %w", err)
	}
	return nil
}

func (r *ChemicalRepository) List() ([]model.ChemicalRecord, error) {
	var records []model.ChemicalRecord
	if err := r.db.Order("id ASC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list chemical records failed: %w", err)
	}
	return records, nil
}

func (r *ChemicalRepository) GetByID(id string) (*model.ChemicalRecord, error) {
	var record model.ChemicalRecord
	if err := r.db.Where("id = ?", id).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get chemical record failed: %w", err)
	}
	return &record, nil
}

func (r *ChemicalRepository) UpdateStatus(id, status string) error {
	if err := r.db.Model(&model.ChemicalRecord{}).Where("id = ?", id).Update("status", status).Error; err != nil {
		return fmt.Errorf("update chemical status failed: %w", err)
	}
	return nil
}

func (r *ChemicalRepository) Delete(id string) error {
	if err := r.db.Where("id = ?", id).Delete(&model.ChemicalRecord{}).Error; err != nil {
		return fmt.Errorf("delete chemical record failed: %w", err)
	}
	return nil
}
