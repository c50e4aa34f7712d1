package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"pfas-demo/internal/model"
)

const keyPrefix = "pfas:chat"

// redisClient is the subset of redis commands the cache issues.
// *redis.Client satisfies it.
type redisClient interface {
	Get(ctx context.Context, key string) *redisv9.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redisv9.StatusCmd
	Del(ctx context.Context, keys ...string) *redisv9.IntCmd
	Exists(ctx context.Context, keys ...string) *redisv9.IntCmd
	Ping(ctx context.Context) *redisv9.StatusCmd
}

// HistoryCache keeps a JSON copy of each chat session in redis. A short-lived
// dirty marker is set while new messages are in flight so readers fall back
// to the store instead of serving a stale copy.
type HistoryCache struct {
	client         redisClient
	historyTTL     time.Duration
	dirtyMarkerTTL time.Duration
}

func NewHistoryCache(client redisClient, historyTTL, dirtyMarkerTTL time.Duration) *HistoryCache {
	if historyTTL <= 0 {
		historyTTL = 60 * time.Second
	}
	if dirtyMarkerTTL <= 0 {
		dirtyMarkerTTL = 5 * time.Second
	}
	return &HistoryCache{
		client:         client,
		historyTTL:     historyTTL,
		dirtyMarkerTTL: dirtyMarkerTTL,
	}
}

func (c *HistoryCache) GetHistory(ctx context.Context, sessionID string) ([]model.Message, bool, error) {
	raw, err := c.client.Get(ctx, historyKey(sessionID)).Bytes()
	if errors.Is(err, redisv9.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get history failed: %w", err)
	}

	var messages []model.Message
	if err := json.Unmarshal(raw, &messages); err != nil {
		return nil, false, fmt.Errorf("unmarshal cached history failed: %w", err)
	}
	return messages, true, nil
}

func (c *HistoryCache) SetHistory(ctx context.Context, sessionID string, messages []model.Message) error {
	payload, err := json.Marshal(messages)
	if err != nil {
		return fmt.Errorf("marshal history cache failed: %w", err)
	}
	if err := c.client.Set(ctx, historyKey(sessionID), payload, c.historyTTL).Err(); err != nil {
		return fmt.Errorf("redis set history failed: %w", err)
	}
	return nil
}

func (c *HistoryCache) DeleteHistory(ctx context.Context, sessionID string) error {
	if err := c.client.Del(ctx, historyKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("redis delete history failed: %w", err)
	}
	return nil
}

func (c *HistoryCache) MarkDirty(ctx context.Context, sessionID string) error {
	if err := c.client.Set(ctx, dirtyKey(sessionID), "1", c.dirtyMarkerTTL).Err(); err != nil {
		return fmt.Errorf("redis set dirty marker failed: %w", err)
	}
	return nil
}

func (c *HistoryCache) IsDirty(ctx context.Context, sessionID string) (bool, error) {
	exists, err := c.client.Exists(ctx, dirtyKey(sessionID)).Result()
	if err != nil {
		return false, fmt.Errorf("redis check dirty marker failed: %w", err)
	}
	return exists > 0, nil
}

// Ping reports whether redis is reachable. Used by the readiness check.
func (c *HistoryCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func historyKey(sessionID string) string {
	return fmt.Sprintf("%s:history:%s", keyPrefix, sessionID)
}

func dirtyKey(sessionID string) string {
	return fmt.Sprintf("%s:dirty:%s", keyPrefix, sessionID)
}
