package pipeline

import (
	"time"

	"intent-pipeline/internal/conversation"
	"intent-pipeline/internal/intent"
	"intent-pipeline/internal/metrics"
	"intent-pipeline/internal/presenter"
	"intent-pipeline/internal/router"
)

// Output is the presented turn plus the routing facts a host needs.
type Output struct {
	presenter.Output
	SessionID     string           `json:"session_id"`
	Intent        intent.Intent    `json:"intent"`
	Confidence    float64          `json:"confidence"`
	HandledBy     router.HandledBy `json:"handled_by"`
	Success       bool             `json:"success"`
	ExecutionTime time.Duration    `json:"-"`
	// Refinements are classifier hints attached when the classification is not confident.
	Refinements []string `json:"refinements,omitempty"`
}

// Record is one archive hand-off. Either field may be nil.
type Record struct {
	SessionID string
	Turn      *conversation.Turn
	Context   *conversation.Context
}

// Deps are the collaborators shared by every pipeline of a host.
type Deps struct {
	Classifier   intent.Classifier
	Presenter    presenter.Presenter
	Completer    router.Completer
	Metrics      metrics.Recorder
	Tools        map[string]any
	Archiver     Archiver
	RouterConfig router.Config
	MaxTurns     int
}
