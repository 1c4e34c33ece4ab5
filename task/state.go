package task

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrNotFound is returned when a task ID is unknown to the store
var ErrNotFound = fmt.Errorf("task not found")

// Store persists task status between API calls
type Store interface {
	Put(ctx context.Context, st *Status) error
	Get(ctx context.Context, id string) (*Status, error)
	Delete(ctx context.Context, id string) error
}

// MemoryStore keeps task status in process memory
type MemoryStore struct {
	mu    sync.RWMutex
	tasks map[string]Status
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{tasks: make(map[string]Status)}
}

func (m *MemoryStore) Put(_ context.Context, st *Status) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	st.UpdatedAt = time.Now()
	m.tasks[st.ID] = *st
	return nil
}

func (m *MemoryStore) Get(_ context.Context, id string) (*Status, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	st, ok := m.tasks[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &st, nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.tasks, id)
	return nil
}

const (
	redisKeyPrefix = "reelbot:task:"
	redisTaskTTL   = 24 * time.Hour
)

// RedisStore persists task status in Redis so status survives
// restarts and is shared between replicas.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore wraps an existing Redis client
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// NewRedisStoreFromEnv connects to REDIS_ADDR when set, otherwise
// returns nil (callers fall back to the memory store).
func NewRedisStoreFromEnv(ctx context.Context) (*RedisStore, error) {
	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return NewRedisStore(client), nil
}

func (r *RedisStore) Put(ctx context.Context, st *Status) error {
	st.UpdatedAt = time.Now()
	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("marshaling task status: %w", err)
	}
	return r.client.Set(ctx, redisKeyPrefix+st.ID, data, redisTaskTTL).Err()
}

func (r *RedisStore) Get(ctx context.Context, id string) (*Status, error) {
	data, err := r.client.Get(ctx, redisKeyPrefix+id).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var st Status
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("unmarshaling task status: %w", err)
	}
	return &st, nil
}

func (r *RedisStore) Delete(ctx context.Context, id string) error {
	return r.client.Del(ctx, redisKeyPrefix+id).Err()
}
