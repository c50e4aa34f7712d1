package ingest

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"pfas-demo/internal/model"
)

var ErrPipelineClosed = errors.New("ingest pipeline is closed")

const (
	defaultTickInterval = 200 * time.Millisecond
	defaultMinStep      = 5
	defaultMaxStep      = 25
)

type Options struct {
	TickInterval time.Duration
	MinStep      int
	MaxStep      int
	// Rand drives the per-tick increment. Nil uses a time-seeded source.
	Rand    *rand.Rand
	Extract ExtractFunc
	// OnComplete is called once per task, outside the pipeline lock, when it
	// reaches the complete stage.
	OnComplete func(task model.UploadTask)
}

// Pipeline owns the live upload tasks. Every task runs on its own ticker
// goroutine until it completes or is removed.
type Pipeline struct {
	opts Options

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu     sync.Mutex
	rng    *rand.Rand
	tasks  map[string]*entry
	order  []string
	closed bool
}

type entry struct {
	task   model.UploadTask
	cancel context.CancelFunc
}

func NewPipeline(opts Options) *Pipeline {
	if opts.TickInterval <= 0 {
		opts.TickInterval = defaultTickInterval
	}
	if opts.MinStep <= 0 {
		opts.MinStep = defaultMinStep
	}
	if opts.MaxStep < opts.MinStep {
		opts.MaxStep = opts.MinStep
	}
	if opts.Extract == nil {
		opts.Extract = CannedExtract
	}
	rng := opts.Rand
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>1))
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Pipeline{
		opts:   opts,
		ctx:    ctx,
		cancel: cancel,
		rng:    rng,
		tasks:  make(map[string]*entry),
	}
}

// Submit queues a new upload and starts its ticker.
func (p *Pipeline) Submit(displayName string, byteSize int64) (model.UploadTask, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return model.UploadTask{}, ErrPipelineClosed
	}

	taskCtx, cancel := context.WithCancel(p.ctx)
	e := &entry{
		task: model.UploadTask{
			ID:          uuid.NewString(),
			DisplayName: strings.TrimSpace(displayName),
			ByteSize:    byteSize,
			Stage:       string(StageQueued),
			CreatedAt:   time.Now(),
		},
		cancel: cancel,
	}
	p.tasks[e.task.ID] = e
	p.order = append(p.order, e.task.ID)

	p.wg.Add(1)
	go p.run(taskCtx, e.task.ID)

	slog.Debug("upload queued", "task_id", e.task.ID, "name", e.task.DisplayName, "bytes", byteSize)
	return copyTask(e.task), nil
}

func (p *Pipeline) run(ctx context.Context, id string) {
	defer p.wg.Done()

	ticker := time.NewTicker(p.opts.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if p.tick(id) {
				return
			}
		}
	}
}

// tick advances one task and reports whether its goroutine should stop.
func (p *Pipeline) tick(id string) bool {
	p.mu.Lock()
	e, ok := p.tasks[id]
	if !ok {
		p.mu.Unlock()
		return true
	}
	changed := Advance(&e.task, p.step(), p.opts.Extract)
	done := Stage(e.task.Stage).Terminal()
	snapshot := copyTask(e.task)
	p.mu.Unlock()

	if changed {
		slog.Debug("upload stage changed", "task_id", id, "stage", snapshot.Stage)
	}
	if done {
		slog.Info("upload processed", "task_id", id, "name", snapshot.DisplayName)
		if p.opts.OnComplete != nil {
			p.opts.OnComplete(snapshot)
		}
	}
	return done
}

// step must be called with p.mu held.
func (p *Pipeline) step() int {
	span := p.opts.MaxStep - p.opts.MinStep
	if span == 0 {
		return p.opts.MinStep
	}
	return p.opts.MinStep + p.rng.IntN(span+1)
}

func (p *Pipeline) Get(id string) (model.UploadTask, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	e, ok := p.tasks[id]
	if !ok {
		return model.UploadTask{}, false
	}
	return copyTask(e.task), true
}

// List returns a snapshot of every live task in submission order.
func (p *Pipeline) List() []model.UploadTask {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]model.UploadTask, 0, len(p.order))
	for _, id := range p.order {
		out = append(out, copyTask(p.tasks[id].task))
	}
	return out
}

func (p *Pipeline) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.tasks)
}

// Remove stops the task's ticker and forgets it. It returns the last state
// of the removed task.
func (p *Pipeline) Remove(id string) (model.UploadTask, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	e, ok := p.tasks[id]
	if !ok {
		return model.UploadTask{}, false
	}
	e.cancel()
	delete(p.tasks, id)
	for i, existing := range p.order {
		if existing == id {
			p.order = append(p.order[:i], p.order[i+1:]...)
			break
		}
	}
	return copyTask(e.task), true
}

// Close cancels every ticker and waits for their goroutines to exit.
func (p *Pipeline) Close() {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()

	p.cancel()
	p.wg.Wait()
}

func copyTask(t model.UploadTask) model.UploadTask {
	if t.DerivedFields != nil {
		fields := *t.DerivedFields
		t.DerivedFields = &fields
	}
	return t
}
