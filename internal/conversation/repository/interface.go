package repository

import (
	"context"

	"intent-pipeline/internal/conversation"
)

// Repository is the external archive that finalized turns and contexts are handed to.
type Repository interface {
	TurnRepository
	ContextRepository
	Close() error
}

// TurnRepository stores finalized turns in arrival order.
type TurnRepository interface {
	SaveTurn(ctx context.Context, opt SaveTurnOptions) error
	ListTurns(ctx context.Context, opt ListTurnsOptions) ([]conversation.Turn, error)
}

// ContextRepository upserts the latest context of a session.
type ContextRepository interface {
	SaveContext(ctx context.Context, c conversation.Context) error
	// GetContext returns the zero Context (SessionID == "") when not found.
	GetContext(ctx context.Context, sessionID string) (conversation.Context, error)
}
