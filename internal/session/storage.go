package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisStorage struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStorage keeps roles for ttl; zero keeps them until logout.
func NewRedisStorage(client *redis.Client, ttl time.Duration) *RedisStorage {
	return &RedisStorage{client: client, ttl: ttl}
}

func (r *RedisStorage) Get(ctx context.Context, sessionID string) (string, bool, error) {
	val, err := r.client.Get(ctx, roleKey(sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get role from redis: %w", err)
	}
	return val, true, nil
}

func (r *RedisStorage) Set(ctx context.Context, sessionID, role string) error {
	return r.client.Set(ctx, roleKey(sessionID), role, r.ttl).Err()
}

func (r *RedisStorage) Delete(ctx context.Context, sessionID string) error {
	return r.client.Del(ctx, roleKey(sessionID)).Err()
}

func roleKey(sessionID string) string {
	return fmt.Sprintf("session:%s:userRole", sessionID)
}

type MemoryStorage struct {
	mu    sync.RWMutex
	roles map[string]string
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{roles: make(map[string]string)}
}

func (m *MemoryStorage) Get(_ context.Context, sessionID string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	role, ok := m.roles[sessionID]
	return role, ok, nil
}

func (m *MemoryStorage) Set(_ context.Context, sessionID, role string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.roles[sessionID] = role
	return nil
}

func (m *MemoryStorage) Delete(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.roles, sessionID)
	return nil
}

var (
	_ Storage = (*RedisStorage)(nil)
	_ Storage = (*MemoryStorage)(nil)
)
