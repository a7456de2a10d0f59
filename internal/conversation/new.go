package conversation

import (
	"time"

	pkgLog "intent-pipeline/pkg/log"
)

// Option configures a MemoryStore.
type Option func(*MemoryStore)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *MemoryStore) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator replaces the session id generator.
func WithIDGenerator(gen func() string) Option {
	return func(s *MemoryStore) {
		if gen != nil {
			s.newID = gen
		}
	}
}

// MemoryStore is the in-memory Store.
type MemoryStore struct {
	l            pkgLog.Logger
	maxTurns     int
	now          func() time.Time
	newID        func() string
	ctx          *Context
	history      []Turn
	sessionStart time.Time
}

var _ Store = (*MemoryStore)(nil)

// New creates a store keeping at most maxTurns turns (DefaultMaxTurns when ≤ 0).
func New(l pkgLog.Logger, maxTurns int, opts ...Option) *MemoryStore {
	if maxTurns <= 0 {
		maxTurns = DefaultMaxTurns
	}
	s := &MemoryStore{
		l:        l,
		maxTurns: maxTurns,
		now:      time.Now,
		newID:    NewSessionID,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.sessionStart = s.now()
	return s
}
