package presenter

import (
	"intent-pipeline/internal/conversation"
	"intent-pipeline/internal/intent"
	"intent-pipeline/internal/router"
)

// Presenter turns routed results into user-facing output. Implementations are stateless.
type Presenter interface {
	Present(raw string, parsed intent.ParsedIntent, routing router.Result, snap *conversation.Snapshot) Output
	ErrorResponse(message string, parsed *intent.ParsedIntent, suggestions []string) Output
	EnhanceLLMResponse(text string, parsed intent.ParsedIntent, snap *conversation.Snapshot) string
}
