package ratelimit

import (
	"context"
	"sync"
	"time"
)

type bucket struct {
	count   int
	resetAt time.Time
}

// MemoryStore keeps one bucket per identifier behind a single lock.
// Contention is low because one identifier maps to one member. Expired
// buckets are lazily reset on next access; Evict may additionally be run
// to bound memory.
type MemoryStore struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		buckets: make(map[string]*bucket),
		now:     time.Now,
	}
}

// Check implements Store.
func (s *MemoryStore) Check(_ context.Context, identifier string, maxRequests int, window time.Duration) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	b, ok := s.buckets[identifier]
	if !ok || now.After(b.resetAt) {
		s.buckets[identifier] = &bucket{count: 1, resetAt: now.Add(window)}
		return Result{Allowed: true, Remaining: maxRequests - 1}, nil
	}
	if b.count < maxRequests {
		b.count++
		return Result{Allowed: true, Remaining: maxRequests - b.count}, nil
	}
	return Result{Allowed: false, Remaining: 0}, nil
}

// Evict drops buckets whose window has already passed.
func (s *MemoryStore) Evict() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for id, b := range s.buckets {
		if now.After(b.resetAt) {
			delete(s.buckets, id)
		}
	}
}

// StartEviction runs Evict on the given interval until ctx is done.
func (s *MemoryStore) StartEviction(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.Evict()
			case <-ctx.Done():
				return
			}
		}
	}()
}
