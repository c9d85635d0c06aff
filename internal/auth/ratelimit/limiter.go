package ratelimit

//go:generate mockgen -destination=../../mocks/mock_limiter.go -package=mocks github.com/gizo333/react-server/internal/auth/ratelimit Limiter

import (
	"context"
	"sync"
	"time"
)

const (
	DefaultWindow = time.Hour
	DefaultMax    = 5
)

// Limiter decides whether a client may make another registration attempt.
// Allowed attempts are recorded; denied attempts are not.
type Limiter interface {
	Allow(ctx context.Context, clientID string) (bool, error)
}

// MemoryLimiter keeps a sliding log of attempt timestamps per client.
// Prune, check and append run under one lock so concurrent requests from the
// same client cannot both slip under the limit.
type MemoryLimiter struct {
	mu      sync.Mutex
	window  time.Duration
	max     int
	now     func() time.Time
	entries map[string][]time.Time
}

func NewMemoryLimiter(window time.Duration, max int) *MemoryLimiter {
	if window <= 0 {
		window = DefaultWindow
	}
	if max <= 0 {
		max = DefaultMax
	}
	return &MemoryLimiter{
		window:  window,
		max:     max,
		now:     time.Now,
		entries: make(map[string][]time.Time),
	}
}

func (l *MemoryLimiter) Allow(_ context.Context, clientID string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	cutoff := now.Add(-l.window)

	ts := l.entries[clientID]
	kept := ts[:0]
	for _, t := range ts {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}

	if len(kept) >= l.max {
		l.entries[clientID] = kept
		return false, nil
	}

	l.entries[clientID] = append(kept, now)
	return true, nil
}

// Len returns the number of clients currently tracked.
func (l *MemoryLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// StartSweeping periodically drops clients whose attempts have all aged out
// of the window, so the map stays bounded by active clients. It returns when
// ctx is cancelled.
func (l *MemoryLimiter) StartSweeping(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = l.window
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				l.sweep()
			}
		}
	}()
}

func (l *MemoryLimiter) sweep() {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := l.now().Add(-l.window)
	for clientID, ts := range l.entries {
		kept := ts[:0]
		for _, t := range ts {
			if t.After(cutoff) {
				kept = append(kept, t)
			}
		}
		if len(kept) == 0 {
			delete(l.entries, clientID)
			continue
		}
		l.entries[clientID] = kept
	}
}
