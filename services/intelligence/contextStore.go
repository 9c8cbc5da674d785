// File: services/intelligence/contextStore.go
package ai

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"concierge/models"

	"github.com/go-redis/redis/v8"
)

const chatContextPrefix = "chat:ctx:"

// RedisContextStore keeps chat contexts in Redis with a sliding TTL, so an
// abandoned conversation (and its half-filled booking) expires on its own.
type RedisContextStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisContextStore(client *redis.Client, ttl time.Duration) *RedisContextStore {
	return &RedisContextStore{client: client, ttl: ttl}
}

func (s *RedisContextStore) Get(ctx context.Context, conversationID string) (*ChatContext, error) {
	data, err := s.client.Get(ctx, chatContextPrefix+conversationID).Result()
	if err == redis.Nil {
		return &ChatContext{}, nil
	}
	if err != nil {
		return nil, err
	}
	var cc ChatContext
	if err := json.Unmarshal([]byte(data), &cc); err != nil {
		return nil, err
	}
	return &cc, nil
}

func (s *RedisContextStore) Set(ctx context.Context, conversationID string, cc *ChatContext) error {
	b, err := json.Marshal(cc)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, chatContextPrefix+conversationID, b, s.ttl).Err()
}

func (s *RedisContextStore) Clear(ctx context.Context, conversationID string) error {
	return s.client.Del(ctx, chatContextPrefix+conversationID).Err()
}

// MemoryContextStore is an in-process ContextStore for tests and single-node
// development runs without Redis.
type MemoryContextStore struct {
	mu       sync.Mutex
	contexts map[string]*ChatContext
}

func NewMemoryContextStore() *MemoryContextStore {
	return &MemoryContextStore{contexts: make(map[string]*ChatContext)}
}

func (s *MemoryContextStore) Get(_ context.Context, conversationID string) (*ChatContext, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cc, ok := s.contexts[conversationID]
	if !ok {
		return &ChatContext{}, nil
	}
	clone := *cc
	clone.History = append([]models.ChatMessage(nil), cc.History...)
	return &clone, nil
}

func (s *MemoryContextStore) Set(_ context.Context, conversationID string, cc *ChatContext) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *cc
	clone.History = append([]models.ChatMessage(nil), cc.History...)
	s.contexts[conversationID] = &clone
	return nil
}

func (s *MemoryContextStore) Clear(_ context.Context, conversationID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.contexts, conversationID)
	return nil
}
