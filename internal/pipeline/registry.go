package pipeline

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"

	"intent-pipeline/internal/conversation"
	pkgLog "intent-pipeline/pkg/log"
)

// RegistryConfig bounds the live sessions of a host.
type RegistryConfig struct {
	MaxSessions     int
	TTL             time.Duration
	RateLimitPerMin int
	Burst           int
}

func (c RegistryConfig) withDefaults() RegistryConfig {
	if c.MaxSessions <= 0 {
		c.MaxSessions = DefaultMaxSessions
	}
	if c.TTL <= 0 {
		c.TTL = DefaultSessionTTL
	}
	if c.RateLimitPerMin <= 0 {
		c.RateLimitPerMin = DefaultRateLimitPerMin
	}
	if c.Burst <= 0 {
		c.Burst = DefaultBurst
	}
	return c
}

// Factory builds the pipeline of a new session.
type Factory func(sessionID string) *Pipeline

type session struct {
	mu       sync.Mutex
	pipeline *Pipeline
	limiter  *rate.Limiter
}

// Registry is the concurrent map of live sessions. Expired and evicted sessions
// hand their final context to the archiver.
type Registry struct {
	l        pkgLog.Logger
	factory  Factory
	sessions *expirable.LRU[string, *session]
	limit    rate.Limit
	burst    int

	// createMu makes lookup-then-add atomic in Create
	createMu sync.Mutex

	// retireMu orders retiring.Add against the Wait in Close
	retireMu sync.Mutex
	closed   bool
	retiring sync.WaitGroup
}

func NewRegistry(l pkgLog.Logger, factory Factory, cfg RegistryConfig) *Registry {
	cfg = cfg.withDefaults()
	r := &Registry{
		l:       l,
		factory: factory,
		limit:   rate.Limit(float64(cfg.RateLimitPerMin) / 60.0),
		burst:   cfg.Burst,
	}
	r.sessions = expirable.NewLRU[string, *session](cfg.MaxSessions, r.onEvict, cfg.TTL)
	return r
}

// Create starts a session. An existing id is returned as is.
func (r *Registry) Create(ctx context.Context, sessionID string) string {
	sessionID = strings.TrimSpace(sessionID)

	r.createMu.Lock()
	defer r.createMu.Unlock()

	if sessionID != "" {
		if _, ok := r.sessions.Get(sessionID); ok {
			return sessionID
		}
	}

	p := r.factory(sessionID)
	id := p.SessionID()
	r.sessions.Add(id, &session{
		pipeline: p,
		limiter:  rate.NewLimiter(r.limit, r.burst),
	})
	r.l.Infof(ctx, "%s: created session %s (live=%d)", LogPrefixRegistry, id, r.sessions.Len())
	return id
}

// Handle runs one turn for sessionID, one at a time per session.
func (r *Registry) Handle(ctx context.Context, sessionID, text string) (Output, error) {
	if strings.TrimSpace(text) == "" {
		return Output{}, ErrEmptyText
	}
	s, ok := r.sessions.Get(sessionID)
	if !ok {
		return Output{}, ErrSessionNotFound
	}
	if !s.limiter.Allow() {
		r.l.Warnf(ctx, "%s: rate limited session %s", LogPrefixRegistry, sessionID)
		return Output{}, ErrRateLimited
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pipeline.Handle(ctx, text), nil
}

// With runs fn on the session pipeline under its lock.
func (r *Registry) With(sessionID string, fn func(p *Pipeline) error) error {
	s, ok := r.sessions.Peek(sessionID)
	if !ok {
		return ErrSessionNotFound
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.pipeline)
}

func (r *Registry) Snapshot(sessionID string) (conversation.Snapshot, error) {
	var snap conversation.Snapshot
	err := r.With(sessionID, func(p *Pipeline) error {
		snap = p.Snapshot()
		return nil
	})
	return snap, err
}

func (r *Registry) Summary(sessionID string) (conversation.Summary, error) {
	var sum conversation.Summary
	err := r.With(sessionID, func(p *Pipeline) error {
		sum = p.Summary()
		return nil
	})
	return sum, err
}

// History returns the live turns of sessionID, oldest first.
func (r *Registry) History(sessionID string) ([]conversation.Turn, error) {
	var turns []conversation.Turn
	err := r.With(sessionID, func(p *Pipeline) error {
		turns = p.History()
		return nil
	})
	return turns, err
}

// End removes the session; its final context is archived.
func (r *Registry) End(ctx context.Context, sessionID string) error {
	if !r.sessions.Remove(sessionID) {
		return ErrSessionNotFound
	}
	r.l.Infof(ctx, "%s: ended session %s", LogPrefixRegistry, sessionID)
	return nil
}

func (r *Registry) Len() int {
	return r.sessions.Len()
}

// Close ends every session and waits for their hand-off. Sessions evicted
// afterwards are retired inline.
func (r *Registry) Close() {
	r.sessions.Purge()

	r.retireMu.Lock()
	r.closed = true
	r.retireMu.Unlock()

	r.retiring.Wait()
}

// onEvict runs under the LRU lock; the hand-off waits for the session lock elsewhere.
func (r *Registry) onEvict(id string, s *session) {
	r.retireMu.Lock()
	if r.closed {
		r.retireMu.Unlock()
		r.retire(id, s)
		return
	}
	r.retiring.Add(1)
	r.retireMu.Unlock()

	go func() {
		defer r.retiring.Done()
		r.retire(id, s)
	}()
}

func (r *Registry) retire(id string, s *session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pipeline.Close(context.Background())
	r.l.Debugf(context.Background(), "%s: retired session %s", LogPrefixRegistry, id)
}
