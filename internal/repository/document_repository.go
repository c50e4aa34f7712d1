package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"pfas-demo/internal/model"
)

type DocumentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

func (r *DocumentRepository) Create(doc *model.Document) error {
	if err := r.db.Create(doc).Error; err != nil {
		return fmt.Errorf("create document failed: %w", err)
	}
	return nil
}

// Seed inserts docs, skipping any whose id already exists.
func (r *DocumentRepository) Seed(docs []model.Document) error {
	if len(docs) == 0 {
		return nil
	}
	if err := r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&docs).Error; err != nil {
		return fmt.Errorf("seed documents failed: %w", err)
	}
	return nil
}

func (r *DocumentRepository) List() ([]model.Document, error) {
	var docs []model.Document
	if err := r.db.Order("uploaded_at DESC").Find(&docs).Error; err != nil {
		return nil, fmt.Errorf("list documents failed: %w", err)
	}
	return docs, nil
}

func (r *DocumentRepository) GetByID(id string) (*model.Document, error) {
	var doc model.Document
	if err := r.db.Where("id = ?", id).First(&doc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get document failed: %w", err)
	}
	return &doc, nil
}

func (r *DocumentRepository) UpdateStatus(id, status string) error {
	if err := r.db.Model(&model.Document{}).Where("id = ?", id).Update("status", status).Error; err != nil {
		return fmt.Errorf("update document status failed: %w", err)
	}
	return nil
}

func (r *DocumentRepository) Delete(id string) error {
	if err := r.db.Where("id = ?", id).Delete(&model.Document{}).Error; err != nil {
		return fmt.Errorf("delete document failed: %w", err)
	}
	return nil
}
