package repository

import "intent-pipeline/internal/conversation"

// SaveTurnOptions holds one turn and the session it belongs to.
type SaveTurnOptions struct {
	SessionID string
	Turn      conversation.Turn
}

// ListTurnsOptions filters archived turns. Results are oldest first.
type ListTurnsOptions struct {
	SessionID string
	Limit     int // default 50
	Offset    int
}
