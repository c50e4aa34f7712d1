package ingest

import "pfas-demo/internal/model"

type Stage string

const (
	StageQueued     Stage = "queued"
	StageUploading  Stage = "uploading"
	StageScanning   Stage = "scanning"
	StageExtracting Stage = "extracting"
	StageComplete   Stage = "complete"
	// StageError is reserved; no transition produces it.
	StageError Stage = "error"
)

var stageOrder = []Stage{
	StageQueued,
	StageUploading,
	StageScanning,
	StageExtracting,
	StageComplete,
}

// Index returns the position of s in the pipeline, or -1 for stages outside it.
func (s Stage) Index() int {
	for i, st := range stageOrder {
		if st == s {
			return i
		}
	}
	return -1
}

func (s Stage) Terminal() bool {
	return s == StageComplete || s == StageError
}

// Next returns the stage after s. ok is false for terminal or unknown stages.
func (s Stage) Next() (Stage, bool) {
	idx := s.Index()
	if idx < 0 || idx >= len(stageOrder)-1 {
		return s, false
	}
	return stageOrder[idx+1], true
}

// Advance applies one tick worth of progress to task. When progress reaches
// 100 the task moves to the next stage with progress reset to 0. Entering
// the complete stage instead pins progress at 100 and attaches the fields
// produced by extract. It reports whether the stage changed.
func Advance(task *model.UploadTask, increment int, extract ExtractFunc) bool {
	stage := Stage(task.Stage)
	if stage.Terminal() {
		return false
	}
	if increment < 0 {
		increment = 0
	}

	task.ProgressPercent += increment
	if task.ProgressPercent < 100 {
		return false
	}

	next, ok := stage.Next()
	if !ok {
		task.ProgressPercent = 100
		return false
	}
	task.Stage = string(next)
	task.ProgressPercent = 0
	if next.Terminal() {
		task.ProgressPercent = 100
		if extract != nil {
			fields := extract(task.DisplayName)
			task.DerivedFields = &fields
		}
	}
	return true
}
