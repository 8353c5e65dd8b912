package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stores(t *testing.T) map[string]Store {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	mem, err := NewMemoryStore(context.Background(), time.Hour)
	require.NoError(t, err)
	t.Cleanup(func() { _ = mem.Close() })

	return map[string]Store{
		"redis":  NewRedisStore(rdb),
		"memory": mem,
	}
}

func TestLimiter_FixedWindow(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			now := time.Date(2024, 1, 1, 10, 3, 0, 0, time.UTC)

			l := NewLimiter(store, "test", 3, 15*time.Minute)
			l.now = func() time.Time { return now }

			for i := 1; i <= 3; i++ {
				res, err := l.Allow(ctx, "1.2.3.4")
				require.NoError(t, err)
				assert.True(t, res.Allowed)
				assert.Equal(t, 3-i, res.Remaining)
				assert.Equal(t, time.Date(2024, 1, 1, 10, 15, 0, 0, time.UTC), res.ResetAt)
			}

			res, err := l.Allow(ctx, "1.2.3.4")
			require.NoError(t, err)
			assert.False(t, res.Allowed)
			assert.Equal(t, 0, res.Remaining)

			other, err := l.Allow(ctx, "5.6.7.8")
			require.NoError(t, err)
			assert.True(t, other.Allowed)

			now = now.Add(15 * time.Minute)
			res, err = l.Allow(ctx, "1.2.3.4")
			require.NoError(t, err)
			assert.True(t, res.Allowed)
			assert.Equal(t, 2, res.Remaining)
		})
	}
}

func TestLimiter_Refund(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			l := NewLimiter(store, "auth", 1, time.Minute)

			res, err := l.Allow(ctx, "1.2.3.4")
			require.NoError(t, err)
			require.True(t, res.Allowed)
			require.NoError(t, l.Refund(ctx, res))

			res, err = l.Allow(ctx, "1.2.3.4")
			require.NoError(t, err)
			assert.True(t, res.Allowed)
		})
	}
}

func TestLimiter_RefundZeroResult(t *testing.T) {
	l := NewLimiter(nil, "noop", 1, time.Minute)
	assert.NoError(t, l.Refund(context.Background(), Result{}))
}

func TestRedisStore_SetsExpiry(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	s := NewRedisStore(rdb)
	n, err := s.Incr(context.Background(), "k", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.Equal(t, time.Minute, mr.TTL("k"))

	mr.FastForward(2 * time.Minute)
	assert.False(t, mr.Exists("k"))
}
