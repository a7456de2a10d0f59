package router

import (
	"sort"
	"sync"
	"time"

	"intent-pipeline/internal/conversation"
	"intent-pipeline/internal/intent"
	"intent-pipeline/internal/metrics"
	"intent-pipeline/pkg/log"
)

// IntentRouter is the per-session Router.
type IntentRouter struct {
	l         log.Logger
	store     conversation.Store
	cfg       Config
	now       func() time.Time
	completer Completer
	metrics   metrics.Recorder
	direct    map[intent.Intent]directHandler

	mu    sync.RWMutex
	tools map[string]any
}

var _ Router = (*IntentRouter)(nil)

// Option configures an IntentRouter.
type Option func(*IntentRouter)

func WithCompleter(c Completer) Option {
	return func(r *IntentRouter) { r.completer = c }
}

func WithMetrics(m metrics.Recorder) Option {
	return func(r *IntentRouter) { r.metrics = m }
}

// WithTool registers a collaborator under name. Its capabilities are checked when used.
func WithTool(name string, tool any) Option {
	return func(r *IntentRouter) { r.RegisterTool(name, tool) }
}

func WithClock(now func() time.Time) Option {
	return func(r *IntentRouter) {
		if now != nil {
			r.now = now
		}
	}
}

// New creates a router bound to one session store.
func New(l log.Logger, store conversation.Store, cfg Config, opts ...Option) *IntentRouter {
	r := &IntentRouter{
		l:     l,
		store: store,
		cfg:   cfg.withDefaults(),
		now:   time.Now,
		tools: map[string]any{},
	}
	r.direct = map[intent.Intent]directHandler{
		intent.IntentStatus: r.handleStatus,
		intent.IntentHelp:   r.handleHelp,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (c Config) withDefaults() Config {
	if c.LLMTimeout <= 0 {
		c.LLMTimeout = DefaultLLMTimeout
	}
	if c.AssistantName == "" {
		c.AssistantName = DefaultAssistantName
	}
	if c.AnalyzePath == "" {
		c.AnalyzePath = DefaultAnalyzePath
	}
	if c.FindPattern == "" {
		c.FindPattern = DefaultFindPattern
	}
	if c.CreatePath == "" {
		c.CreatePath = DefaultCreatePath
	}
	if c.CreateFileType == "" {
		c.CreateFileType = DefaultCreateFileType
	}
	return c
}

// SetCompleter replaces the generative service. nil disables it.
func (r *IntentRouter) SetCompleter(c Completer) {
	r.completer = c
}

// RegisterTool adds or replaces a collaborator.
func (r *IntentRouter) RegisterTool(name string, tool any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tools[name] = tool
}

// RemoveTool unregisters a collaborator.
func (r *IntentRouter) RemoveTool(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.tools, name)
}

// RegisteredTools returns the collaborator names in sorted order.
func (r *IntentRouter) RegisteredTools() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *IntentRouter) DirectHandlerCount() int {
	return len(r.direct)
}

func (r *IntentRouter) tool(name string) (any, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tools[name]
	return t, ok
}
