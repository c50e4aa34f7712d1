package app

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"pfas-demo/internal/model"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrMessageEmpty    = errors.New("message content is empty")
	ErrMessageEnqueue  = errors.New("message enqueue failed")
)

const (
	maxMessageLength  = 2000
	historyFetchLimit = 200
)

type ChatService struct {
	messageRepo  MessageStore
	publisher    AsyncMessagePublisher
	historyCache HistoryCache
	responder    Responder
	now          func() time.Time
}

type AsyncMessagePublisher interface {
	Publish(ctx context.Context, msg model.Message) error
}

type HistoryCache interface {
	GetHistory(ctx context.Context, sessionID string) ([]model.Message, bool, error)
	SetHistory(ctx context.Context, sessionID string, messages []model.Message) error
	DeleteHistory(ctx context.Context, sessionID string) error
	MarkDirty(ctx context.Context, sessionID string) error
	IsDirty(ctx context.Context, sessionID string) (bool, error)
}

type Responder interface {
	Reply(message string) string
}

type SendMessageInput struct {
	UserID uint
	// SessionID may be empty to start a new conversation.
	SessionID string
	Content   string
}

type SendMessageResult struct {
	SessionID string          `json:"session_id"`
	Messages  []model.Message `json:"messages"`
}

// NewChatService wires the assistant. historyCache may be nil.
func NewChatService(
	messageRepo MessageStore,
	publisher AsyncMessagePublisher,
	historyCache HistoryCache,
	responder Responder,
) *ChatService {
	return &ChatService{
		messageRepo:  messageRepo,
		publisher:    publisher,
		historyCache: historyCache,
		responder:    responder,
		now:          time.Now,
	}
}

func (s *ChatService) SendMessage(ctx context.Context, input SendMessageInput) (*SendMessageResult, error) {
	if input.UserID == 0 {
		return nil, ErrInvalidInput
	}
	content := strings.TrimSpace(input.Content)
	if content == "" {
		return nil, ErrMessageEmpty
	}
	if len(content) > maxMessageLength {
		return nil, ErrInvalidInput
	}

	sessionID := strings.TrimSpace(input.SessionID)
	if sessionID == "" {
		sessionID = uuid.NewString()
	} else if err := s.checkOwner(sessionID, input.UserID); err != nil {
		return nil, err
	}

	if s.publisher == nil {
		return nil, ErrMessageEnqueue
	}
	if s.historyCache != nil {
		_ = s.historyCache.MarkDirty(ctx, sessionID)
		_ = s.historyCache.DeleteHistory(ctx, sessionID)
	}

	userMessage := model.Message{
		SessionID: sessionID,
		UserID:    input.UserID,
		Role:      model.RoleUser,
		Content:   content,
		CreatedAt: s.now(),
	}
	if err := s.publisher.Publish(ctx, userMessage); err != nil {
		return nil, ErrMessageEnqueue
	}

	assistantMessage := model.Message{
		SessionID: sessionID,
		UserID:    input.UserID,
		Role:      model.RoleAssistant,
		Content:   s.responder.Reply(content),
		CreatedAt: s.now(),
	}
	if err := s.publisher.Publish(ctx, assistantMessage); err != nil {
		return nil, ErrMessageEnqueue
	}

	return &SendMessageResult{
		SessionID: sessionID,
		Messages:  []model.Message{userMessage, assistantMessage},
	}, nil
}

// GetHistory returns the newest messages of a conversation, oldest first,
// served from the cache unless a write is still in flight.
func (s *ChatService) GetHistory(ctx context.Context, userID uint, sessionID string, limit int) ([]model.Message, error) {
	sessionID = strings.TrimSpace(sessionID)
	if userID == 0 || sessionID == "" {
		return nil, ErrInvalidInput
	}

	if s.historyCache != nil {
		dirty, err := s.historyCache.IsDirty(ctx, sessionID)
		if err == nil && !dirty {
			if cached, hit, cacheErr := s.historyCache.GetHistory(ctx, sessionID); cacheErr == nil && hit {
				if !ownedBy(cached, userID) {
					return nil, ErrSessionNotFound
				}
				return trimMessages(cached, limit), nil
			}
		}
	}

	messages, err := s.messageRepo.ListBySessionID(sessionID, historyFetchLimit)
	if err != nil {
		return nil, err
	}
	if !ownedBy(messages, userID) {
		return nil, ErrSessionNotFound
	}
	if s.historyCache != nil && len(messages) > 0 {
		if dirty, dirtyErr := s.historyCache.IsDirty(ctx, sessionID); dirtyErr == nil && !dirty {
			_ = s.historyCache.SetHistory(ctx, sessionID, messages)
		}
	}
	return trimMessages(messages, limit), nil
}

func (s *ChatService) checkOwner(sessionID string, userID uint) error {
	messages, err := s.messageRepo.ListBySessionID(sessionID, 1)
	if err != nil {
		return err
	}
	if !ownedBy(messages, userID) {
		return ErrSessionNotFound
	}
	return nil
}

// ownedBy is true for an empty session or one whose messages all belong to userID.
func ownedBy(messages []model.Message, userID uint) bool {
	for _, m := range messages {
		if m.UserID != userID {
			return false
		}
	}
	return true
}

func trimMessages(messages []model.Message, limit int) []model.Message {
	if limit <= 0 || limit >= len(messages) {
		return messages
	}
	return messages[len(messages)-limit:]
}

// StorePublisher writes messages straight to the store. Used when no broker
// is configured.
type StorePublisher struct {
	repo MessageStore
}

func NewStorePublisher(repo MessageStore) *StorePublisher {
	return &StorePublisher{repo: repo}
}

func (p *StorePublisher) Publish(_ context.Context, msg model.Message) error {
	return p.repo.Create(&msg)
}
