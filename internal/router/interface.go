package router

import (
	"context"

	"intent-pipeline/internal/intent"
)

// Router decides how a classified utterance is satisfied and records the turn.
type Router interface {
	Route(ctx context.Context, userInput string, parsed intent.ParsedIntent) Result
}
