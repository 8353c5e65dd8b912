package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/allegro/bigcache/v3"
	"github.com/redis/go-redis/v9"
)

// Store keeps per-key hit counters. Keys already carry their window, so ttl
// only bounds how long a finished window lingers.
type Store interface {
	Incr(ctx context.Context, key string, ttl time.Duration) (int64, error)
	Decr(ctx context.Context, key string) error
}

type RedisStore struct {
	rdb redis.Cmdable
}

func NewRedisStore(rdb redis.Cmdable) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func (s *RedisStore) Incr(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	pipe := s.rdb.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, ttl)

	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("incrementing %s: %w", key, err)
	}
	return incr.Val(), nil
}

func (s *RedisStore) Decr(ctx context.Context, key string) error {
	if err := s.rdb.Decr(ctx, key).Err(); err != nil {
		return fmt.Errorf("decrementing %s: %w", key, err)
	}
	return nil
}

// MemoryStore counts in process. bigcache has no atomic increment, so
// read-modify-write is serialized by mu.
type MemoryStore struct {
	mu    sync.Mutex
	cache *bigcache.BigCache
}

func NewMemoryStore(ctx context.Context, lifeWindow time.Duration) (*MemoryStore, error) {
	cfg := bigcache.DefaultConfig(lifeWindow)
	cfg.CleanWindow = lifeWindow
	cfg.Verbose = false

	cache, err := bigcache.New(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating counter cache: %w", err)
	}
	return &MemoryStore{cache: cache}, nil
}

func (s *MemoryStore) Incr(_ context.Context, key string, _ time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, err := s.get(key)
	if err != nil {
		return 0, err
	}
	n++
	return n, s.cache.Set(key, []byte(strconv.FormatInt(n, 10)))
}

func (s *MemoryStore) Decr(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, err := s.get(key)
	if err != nil || n == 0 {
		return err
	}
	return s.cache.Set(key, []byte(strconv.FormatInt(n-1, 10)))
}

func (s *MemoryStore) Close() error {
	return s.cache.Close()
}

func (s *MemoryStore) get(key string) (int64, error) {
	buf, err := s.cache.Get(key)
	if errors.Is(err, bigcache.ErrEntryNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("reading counter %s: %w", key, err)
	}

	n, err := strconv.ParseInt(string(buf), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("corrupt counter %s: %w", key, err)
	}
	return n, nil
}
