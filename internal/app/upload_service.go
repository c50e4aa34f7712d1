package app

import (
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"pfas-demo/internal/ingest"
	"pfas-demo/internal/model"
)

const maxUploadBytes = 50 << 20

var (
	ErrTaskNotFound    = errors.New("upload task not found")
	ErrTaskNotComplete = errors.New("upload task is still processing")
)

// UploadPipeline is the subset of *ingest.Pipeline the service drives.
type UploadPipeline interface {
	Submit(displayName string, byteSize int64) (model.UploadTask, error)
	Get(id string) (model.UploadTask, bool)
	List() []model.UploadTask
	Remove(id string) (model.UploadTask, bool)
}

type UploadService struct {
	pipeline  UploadPipeline
	docRepo   DocumentStore
	chemRepo  ChemicalStore
	now       func() time.Time
	approveMu sync.Mutex
}

type UploadInput struct {
	Name     string
	ByteSize int64
}

type ApproveResult struct {
	Document model.Document       `json:"document"`
	Chemical model.ChemicalRecord `json:"chemical"`
}

func NewUploadService(pipeline UploadPipeline, docRepo DocumentStore, chemRepo ChemicalStore) *UploadService {
	return &UploadService{
		pipeline: pipeline,
		docRepo:  docRepo,
		chemRepo: chemRepo,
		now:      time.Now,
	}
}

func (s *UploadService) Submit(input UploadInput) (*model.UploadTask, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" || input.ByteSize < 0 || input.ByteSize > maxUploadBytes {
		return nil, ErrInvalidInput
	}
	task, err := s.pipeline.Submit(name, input.ByteSize)
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (s *UploadService) List() []model.UploadTask {
	return s.pipeline.List()
}

func (s *UploadService) Get(id string) (*model.UploadTask, error) {
	task, ok := s.pipeline.Get(id)
	if !ok {
		return nil, ErrTaskNotFound
	}
	return &task, nil
}

// Dismiss drops a task at any stage and stops its timer.
func (s *UploadService) Dismiss(id string) error {
	s.approveMu.Lock()
	defer s.approveMu.Unlock()

	if _, ok := s.pipeline.Remove(id); !ok {
		return ErrTaskNotFound
	}
	return nil
}

// Approve promotes a completed task into a Document and a pending-review
// ChemicalRecord, then removes the task.
func (s *UploadService) Approve(id string) (*ApproveResult, error) {
	s.approveMu.Lock()
	defer s.approveMu.Unlock()

	task, ok := s.pipeline.Get(id)
	if !ok {
		return nil, ErrTaskNotFound
	}
	if ingest.Stage(task.Stage) != ingest.StageComplete || task.DerivedFields == nil {
		return nil, ErrTaskNotComplete
	}
	fields := *task.DerivedFields

	doc := model.Document{
		ID:                     uuid.NewString(),
		Name:                   task.DisplayName,
		SizeBytes:              task.ByteSize,
		UploadedAt:             s.now(),
		Status:                 model.DocumentStatusIndexed,
		Source:                 "upload",
		ExtractedChemicalCount: fields.ChemicalCount,
	}
	chem := model.ChemicalRecord{
		ID:           uuid.NewString(),
		ProductName:  fields.ProductName,
		CASNumber:    fields.CASNumber,
		YearDetected: fields.YearDetected,
		RiskScore:    fields.RiskScore,
		Status:       model.ChemicalStatusPendingReview,
		Supplier:     fields.Supplier,
		DocumentID:   doc.ID,
	}

	if err := s.docRepo.Create(&doc); err != nil {
		return nil, err
	}
	if err := s.chemRepo.Create(&chem); err != nil {
		s.rollback(doc.ID, "")
		return nil, err
	}
	if _, ok := s.pipeline.Remove(id); !ok {
		s.rollback(doc.ID, chem.ID)
		return nil, ErrTaskNotFound
	}

	return &ApproveResult{Document: doc, Chemical: chem}, nil
}

// rollback deletes rows written by a failed Approve so a retry starts clean.
func (s *UploadService) rollback(docID, chemID string) {
	if chemID != "" {
		if err := s.chemRepo.Delete(chemID); err != nil {
			slog.Error("rollback chemical record failed", "chemical_id", chemID, "error", err)
		}
	}
	if err := s.docRepo.Delete(docID); err != nil {
		slog.Error("rollback document failed", "document_id", docID, "error", err)
	}
}
