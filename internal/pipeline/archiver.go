package pipeline

import (
	"context"
	"sync"
	"time"

	"intent-pipeline/internal/conversation/repository"
	pkgLog "intent-pipeline/pkg/log"
)

// AsyncArchiver writes records to a repository from one background goroutine.
// A full buffer drops the record instead of blocking the turn.
type AsyncArchiver struct {
	l       pkgLog.Logger
	repo    repository.Repository
	timeout time.Duration
	ch      chan Record
	done    chan struct{}

	mu     sync.RWMutex
	closed bool
}

var _ Archiver = (*AsyncArchiver)(nil)

// NewArchiver starts the writer goroutine. Close must be called to stop it.
func NewArchiver(l pkgLog.Logger, repo repository.Repository, buffer int) *AsyncArchiver {
	if buffer <= 0 {
		buffer = DefaultArchiveBuffer
	}
	a := &AsyncArchiver{
		l:       l,
		repo:    repo,
		timeout: DefaultArchiveTimeout,
		ch:      make(chan Record, buffer),
		done:    make(chan struct{}),
	}
	go a.run()
	return a
}

func (a *AsyncArchiver) Submit(ctx context.Context, rec Record) bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.closed {
		return false
	}

	select {
	case a.ch <- rec:
		return true
	default:
		a.l.Warnf(ctx, "%s: buffer full, dropping record for session %s", LogPrefixArchiver, rec.SessionID)
		return false
	}
}

// Close stops accepting records and waits until the buffer is drained.
func (a *AsyncArchiver) Close() error {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return nil
	}
	a.closed = true
	close(a.ch)
	a.mu.Unlock()

	<-a.done
	return nil
}

func (a *AsyncArchiver) run() {
	defer close(a.done)
	for rec := range a.ch {
		a.write(rec)
	}
}

func (a *AsyncArchiver) write(rec Record) {
	ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
	defer cancel()
	ctx = context.WithValue(ctx, pkgLog.SessionIDKey, rec.SessionID)

	if rec.Turn != nil {
		if err := a.repo.SaveTurn(ctx, repository.SaveTurnOptions{SessionID: rec.SessionID, Turn: *rec.Turn}); err != nil {
			a.l.Errorf(ctx, "%s: SaveTurn: %v", LogPrefixArchiver, err)
		}
	}
	if rec.Context != nil {
		if err := a.repo.SaveContext(ctx, *rec.Context); err != nil {
			a.l.Errorf(ctx, "%s: SaveContext: %v", LogPrefixArchiver, err)
		}
	}
}
