package app

import (
	"sync"
	"testing"

	"pfas-demo/internal/model"
	"pfas-demo/internal/repository/memory"
	"pfas-demo/internal/seed"
)

func seededStores(t *testing.T) (*memory.DocumentRepository, *memory.ChemicalRepository, *seed.Data) {
	t.Helper()
	data, err := seed.Load("")
	if err != nil {
		t.Fatalf("seed.Load() error = %v", err)
	}
	docs := memory.NewDocumentRepository()
	chems := memory.NewChemicalRepository()
	_ = docs.Seed(data.Documents)
	_ = chems.Seed(data.Chemicals)
	return docs, chems, data
}

// fakePipeline lets tests place tasks in any stage without timers.
type fakePipeline struct {
	mu    sync.Mutex
	tasks map[string]model.UploadTask
	order []string
}

func newFakePipeline() *fakePipeline {
	return &fakePipeline{tasks: make(map[string]model.UploadTask)}
}

func (f *fakePipeline) Submit(name string, size int64) (model.UploadTask, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := name + "-id"
	task := model.UploadTask{ID: id, DisplayName: name, ByteSize: size, Stage: "queued"}
	f.tasks[id] = task
	f.order = append(f.order, id)
	return task, nil
}

func (f *fakePipeline) put(task model.UploadTask) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.tasks[task.ID]; !ok {
		f.order = append(f.order, task.ID)
	}
	f.tasks[task.ID] = task
}

func (f *fakePipeline) Get(id string) (model.UploadTask, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tasks[id]
	return t, ok
}

func (f *fakePipeline) List() []model.UploadTask {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.UploadTask, 0, len(f.order))
	for _, id := range f.order {
		out = append(out, f.tasks[id])
	}
	return out
}

func (f *fakePipeline) Remove(id string) (model.UploadTask, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tasks[id]
	if !ok {
		return model.UploadTask{}, false
	}
	delete(f.tasks, id)
	for i, existing := range f.order {
		if existing == id {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
	return t, true
}
