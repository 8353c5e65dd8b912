// Package ratelimit implements fixed-window request counting per client key.
package ratelimit

import (
	"context"
	"fmt"
	"time"
)

type Limiter struct {
	store  Store
	name   string
	max    int
	window time.Duration
	now    func() time.Time
}

// Result describes one counted hit.
type Result struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time

	key string
}

func NewLimiter(store Store, name string, max int, window time.Duration) *Limiter {
	return &Limiter{
		store:  store,
		name:   name,
		max:    max,
		window: window,
		now:    time.Now,
	}
}

// Allow counts a hit for client in the current window.
func (l *Limiter) Allow(ctx context.Context, client string) (Result, error) {
	start := l.now().Truncate(l.window)
	key := fmt.Sprintf("blog:ratelimit:%s:%s:%d", l.name, client, start.Unix())

	n, err := l.store.Incr(ctx, key, l.window)
	if err != nil {
		return Result{}, err
	}

	remaining := l.max - int(n)
	if remaining < 0 {
		remaining = 0
	}

	return Result{
		Allowed:   n <= int64(l.max),
		Limit:     l.max,
		Remaining: remaining,
		ResetAt:   start.Add(l.window),
		key:       key,
	}, nil
}

// Refund removes a hit previously counted by Allow.
func (l *Limiter) Refund(ctx context.Context, r Result) error {
	if r.key == "" {
		return nil
	}
	return l.store.Decr(ctx, r.key)
}
