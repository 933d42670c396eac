package main

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"
)

var ErrSessionsClosed = errors.New("sessions closed")

type session[V any] struct {
	value    V
	expireAt int64
}

// Sessions keeps per-user calculators for a limited time of inactivity.
// Expired entries are dropped by a background cleaner.
type Sessions[V any] struct {
	mu          sync.RWMutex
	cleanerOnce sync.Once
	cleanerCh   chan struct{}
	items       map[string]session[V]
	ttlTimeout  time.Duration
	inShutdown  atomic.Bool
	now         func() time.Time
}

func NewSessions[V any](ttlTimeout, cleanupTimeout time.Duration) *Sessions[V] {
	s := &Sessions[V]{
		cleanerCh:  make(chan struct{}),
		items:      make(map[string]session[V]),
		ttlTimeout: ttlTimeout,
		now:        time.Now,
	}

	go func() {
		ticker := time.NewTicker(cleanupTimeout)
		defer ticker.Stop()

		for {
			select {
			case <-s.cleanerCh:
				return
			case <-ticker.C:
				s.cleanExpired()
			}
		}
	}()
	return s
}

// Set stores value and refreshes its TTL. During shutdown only existing
// sessions can be updated.
func (s *Sessions[V]) Set(key string, value V) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, exists := s.items[key]
	if s.inShutdown.Load() && !exists {
		return
	}

	s.items[key] = session[V]{
		value:    value,
		expireAt: s.now().Add(s.ttlTimeout).UnixNano(),
	}
}

func (s *Sessions[V]) Get(key string) (V, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var zero V
	item, exists := s.items[key]
	if !exists || s.now().UnixNano() > item.expireAt {
		return zero, false
	}
	return item.value, true
}

func (s *Sessions[V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

func (s *Sessions[V]) IsEmpty() bool {
	return s.Len() == 0
}

const shutdownIntervalMax = 500 * time.Millisecond

// Shutdown refuses new sessions and waits until every existing one expires
// or ctx is done.
func (s *Sessions[V]) Shutdown(ctx context.Context) error {
	s.inShutdown.Store(true)
	s.closeCleaner()

	intervalBase := time.Millisecond
	nextInterval := func() time.Duration {
		interval := intervalBase + time.Duration(rand.Int63n(int64(intervalBase/10)+1))

		intervalBase *= 2
		if intervalBase > shutdownIntervalMax {
			intervalBase = shutdownIntervalMax
		}
		return interval
	}

	timer := time.NewTimer(nextInterval())
	defer timer.Stop()
	for {
		s.cleanExpired()
		if s.IsEmpty() {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
			timer.Reset(nextInterval())
		}
	}
}

// Close drops every session immediately.
func (s *Sessions[V]) Close() error {
	if s.inShutdown.Swap(true) {
		return ErrSessionsClosed
	}
	s.closeCleaner()

	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.items)
	return nil
}

func (s *Sessions[V]) cleanExpired() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UnixNano()
	for k, v := range s.items {
		if now > v.expireAt {
			delete(s.items, k)
		}
	}
}

func (s *Sessions[V]) closeCleaner() {
	s.cleanerOnce.Do(func() {
		close(s.cleanerCh)
	})
}
