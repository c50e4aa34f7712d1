package memory

import (
	"sync"
	"time"

	"pfas-demo/internal/model"
)

type MessageRepository struct {
	mu        sync.RWMutex
	nextID    uint
	bySession map[string][]model.Message
}

func NewMessageRepository() *MessageRepository {
	return &MessageRepository{bySession: make(map[string][]model.Message)}
}

func (r *MessageRepository) Create(message *model.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	message.ID = r.nextID
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now()
	}
	r.bySession[message.SessionID] = append(r.bySession[message.SessionID], *message)
	return nil
}

// ListBySessionID returns the newest limit messages, oldest first.
func (r *MessageRepository) ListBySessionID(sessionID string, limit int) ([]model.Message, error) {
	if limit <= 0 || limit > 200 {
		limit = 100
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	msgs := r.bySession[sessionID]
	if len(msgs) > limit {
		msgs = msgs[len(msgs)-limit:]
	}
	out := make([]model.Message, len(msgs))
	copy(out, msgs)
	return out, nil
}
