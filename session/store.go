package session

import (
	"sync"
	"time"
)

// DefaultTimeout is the idle time after which an entry is evicted.
const DefaultTimeout = 30 * time.Minute

// Store is an in-memory map whose entries expire independently after a
// period of inactivity. Every successful Get restarts the entry's clock.
type Store[K comparable, V any] struct {
	mu      sync.Mutex
	items   map[K]*storeEntry[V]
	timeout time.Duration
	now     func() time.Time
}

type storeEntry[V any] struct {
	val      V
	lastUsed time.Time
}

// Option configures a Store.
type Option func(*options)

type options struct {
	timeout time.Duration
	now     func() time.Time
}

// WithTimeout sets the idle timeout. Non-positive values keep the default.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// New creates an empty Store.
func New[K comparable, V any](opts ...Option) *Store[K, V] {
	o := &options{timeout: DefaultTimeout, now: time.Now}
	for _, opt := range opts {
		opt(o)
	}
	return &Store[K, V]{
		items:   make(map[K]*storeEntry[V]),
		timeout: o.timeout,
		now:     o.now,
	}
}

// Get returns the live value for key and refreshes its idle clock.
// Expired entries are evicted and reported as missing.
func (s *Store[K, V]) Get(key K) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var zero V
	entry, ok := s.items[key]
	if !ok {
		return zero, false
	}
	now := s.now()
	if s.expired(entry, now) {
		delete(s.items, key)
		return zero, false
	}
	entry.lastUsed = now
	return entry.val, true
}

// Put stores val under key with a fresh idle clock.
func (s *Store[K, V]) Put(key K, val V) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = &storeEntry[V]{val: val, lastUsed: s.now()}
}

// Delete removes key.
func (s *Store[K, V]) Delete(key K) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, key)
}

// Clear removes every entry.
func (s *Store[K, V]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = make(map[K]*storeEntry[V])
}

// Sweep evicts every expired entry and returns how many were removed.
func (s *Store[K, V]) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for key, entry := range s.items {
		if s.expired(entry, now) {
			delete(s.items, key)
			removed++
		}
	}
	return removed
}

// Len returns the number of entries, including expired ones not yet swept.
func (s *Store[K, V]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Timeout returns the idle timeout.
func (s *Store[K, V]) Timeout() time.Duration { return s.timeout }

func (s *Store[K, V]) expired(entry *storeEntry[V], now time.Time) bool {
	return now.Sub(entry.lastUsed) >= s.timeout
}
