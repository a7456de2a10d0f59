package pipeline

import (
	"context"
	"fmt"

	"intent-pipeline/internal/conversation"
	"intent-pipeline/internal/intent"
	"intent-pipeline/internal/presenter"
	"intent-pipeline/internal/router"
	pkgLog "intent-pipeline/pkg/log"
)

// Pipeline serves one session. It is not safe for concurrent use; the Registry
// serializes turns per session.
type Pipeline struct {
	l          pkgLog.Logger
	classifier intent.Classifier
	presenter  presenter.Presenter
	archiver   Archiver
	store      *conversation.MemoryStore
	router     *router.IntentRouter
}

// New builds a pipeline with its own store and router and starts the session.
// An empty sessionID yields a fresh one.
func New(l pkgLog.Logger, deps Deps, sessionID string, storeOpts ...conversation.Option) *Pipeline {
	store := conversation.New(l, deps.MaxTurns, storeOpts...)
	store.Start(sessionID)

	opts := []router.Option{}
	if deps.Completer != nil {
		opts = append(opts, router.WithCompleter(deps.Completer))
	}
	if deps.Metrics != nil {
		opts = append(opts, router.WithMetrics(deps.Metrics))
	}
	for name, tool := range deps.Tools {
		opts = append(opts, router.WithTool(name, tool))
	}

	classifier := deps.Classifier
	if classifier == nil {
		classifier = intent.New(0)
	}
	pres := deps.Presenter
	if pres == nil {
		pres = presenter.New()
	}

	return &Pipeline{
		l:          l,
		classifier: classifier,
		presenter:  pres,
		archiver:   deps.Archiver,
		store:      store,
		router:     router.New(l, store, deps.RouterConfig, opts...),
	}
}

// Handle runs one utterance through classify, route, snapshot and present.
// It never fails; internal faults become an error presentation.
func (p *Pipeline) Handle(ctx context.Context, text string) (out Output) {
	ctx = context.WithValue(ctx, pkgLog.SessionIDKey, p.SessionID())

	defer func() {
		if rec := recover(); rec != nil {
			p.l.Errorf(ctx, "%s: recovered panic: %v", LogPrefixHandle, rec)
			out = Output{
				Output:    p.presenter.ErrorResponse(fmt.Sprintf(MsgPipelineError, rec), nil, nil),
				SessionID: p.SessionID(),
				Intent:    intent.IntentUnknown,
				HandledBy: router.HandledByError,
			}
		}
	}()

	parsed := p.classifier.Classify(text)
	res := p.router.Route(ctx, text, parsed)
	snap := p.store.Snapshot()

	raw := res.Response
	if res.HandledBy == router.HandledByLLM && res.Success {
		raw = p.presenter.EnhanceLLMResponse(raw, parsed, &snap)
	}

	out = Output{
		Output:        p.presenter.Present(raw, parsed, res, &snap),
		SessionID:     p.SessionID(),
		Intent:        parsed.Intent,
		Confidence:    parsed.Confidence,
		HandledBy:     res.HandledBy,
		Success:       res.Success,
		ExecutionTime: res.ExecutionTime,
	}
	if !p.classifier.IsConfident(parsed) {
		out.Refinements = p.classifier.Suggestions(text)
	}

	p.archive(ctx, &res.Turn)
	return out
}

func (p *Pipeline) archive(ctx context.Context, turn *conversation.Turn) {
	if p.archiver == nil {
		return
	}
	c := p.store.Context()
	if !p.archiver.Submit(ctx, Record{SessionID: c.SessionID, Turn: turn, Context: &c}) {
		p.l.Warnf(ctx, "%s: archive hand-off dropped for session %s", LogPrefixHandle, c.SessionID)
	}
}

// Close hands the final context to the archiver.
func (p *Pipeline) Close(ctx context.Context) {
	if p.archiver == nil || !p.store.Active() {
		return
	}
	c := p.store.Context()
	p.archiver.Submit(ctx, Record{SessionID: c.SessionID, Context: &c})
}

func (p *Pipeline) SessionID() string {
	return p.store.Context().SessionID
}

func (p *Pipeline) Snapshot() conversation.Snapshot {
	return p.store.Snapshot()
}

func (p *Pipeline) Summary() conversation.Summary {
	return p.store.Summary()
}

func (p *Pipeline) History() []conversation.Turn {
	return p.store.History()
}

// Save persists the session to path.
func (p *Pipeline) Save(ctx context.Context, path string) error {
	return p.store.Save(ctx, path)
}

// Load restores a saved session; on failure a fresh session is started.
func (p *Pipeline) Load(ctx context.Context, path string) bool {
	return p.store.Load(ctx, path)
}

// Router exposes the session router for capability registration.
func (p *Pipeline) Router() *router.IntentRouter {
	return p.router
}
