package pipeline

import "context"

// Archiver accepts finalized turns and contexts without blocking the caller.
// Submit reports false when the record was dropped.
type Archiver interface {
	Submit(ctx context.Context, rec Record) bool
}
