package conversation

import (
	"context"
	"time"

	"intent-pipeline/internal/intent"
)

// Store keeps the bounded turn history and derived context of one session.
// It has a single writer and no internal locking.
type Store interface {
	// Start resets history and context. An empty id yields a fresh time-ordered id.
	Start(sessionID string) string
	// RecordTurn appends a turn, evicts beyond the window and updates the context.
	RecordTurn(userInput string, parsed intent.ParsedIntent, response string, executionTime time.Duration, success bool) Turn
	Snapshot() Snapshot
	IsContinuation(parsed intent.ParsedIntent) bool
	Summary() Summary
	Save(ctx context.Context, path string) error
	// Load restores a saved session. On any failure it starts a fresh session and returns false.
	Load(ctx context.Context, path string) bool
	Context() Context
	History() []Turn
	Active() bool
}
