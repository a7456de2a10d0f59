package pipeline

import (
	"context"
	"fmt"

	"intent-pipeline/config"
	"intent-pipeline/internal/conversation"
	"intent-pipeline/internal/conversation/repository"
	"intent-pipeline/internal/conversation/repository/sqlite"
	"intent-pipeline/internal/intent"
	"intent-pipeline/internal/metrics"
	"intent-pipeline/internal/presenter"
	"intent-pipeline/internal/router"
	"intent-pipeline/internal/workspace"
	"intent-pipeline/pkg/llmprovider"
	pkgLog "intent-pipeline/pkg/log"
)

// Host holds the collaborators shared by every session of one process.
type Host struct {
	l         pkgLog.Logger
	Deps      Deps
	Collector *metrics.Collector
	// LLM is nil when no provider could be initialized.
	LLM *llmprovider.Manager
	// Archive is nil when archiving is disabled.
	Archive  repository.Repository
	archiver *AsyncArchiver
}

// NewHost wires classifier, presenter, tools, generative service and archive from cfg.
// A missing generative service is not fatal.
func NewHost(ctx context.Context, l pkgLog.Logger, cfg *config.Config) (*Host, error) {
	h := &Host{
		l:         l,
		Collector: metrics.NewCollector(l),
	}

	ws, err := workspace.New(l, cfg.Workspace.Root,
		workspace.WithAuthor(cfg.Router.AssistantName),
		workspace.WithStructure(cfg.Workspace.Structure),
	)
	if err != nil {
		return nil, fmt.Errorf("%s: workspace: %w", LogPrefixHost, err)
	}

	h.Deps = Deps{
		Classifier: intent.New(cfg.Classifier.ConfidenceThreshold),
		Presenter:  presenter.New(),
		Metrics:    h.Collector,
		Tools: map[string]any{
			router.ToolCodeAnalyzer:      ws,
			router.ToolWorkspaceExplorer: ws,
			router.ToolFileManager:       ws,
		},
		RouterConfig: router.Config{
			LLMTimeout:     cfg.Router.LLMTimeout,
			AssistantName:  cfg.Router.AssistantName,
			AnalyzePath:    cfg.Router.AnalyzePath,
			FindPattern:    cfg.Router.FindPattern,
			CreatePath:     cfg.Router.CreatePath,
			CreateFileType: cfg.Router.CreateFileType,
		},
		MaxTurns: cfg.Conversation.MaxTurns,
	}

	if len(cfg.LLM.Providers) > 0 {
		providers, err := llmprovider.InitializeProviders(ctx, &cfg.LLM, l)
		if err != nil {
			l.Warnf(ctx, "%s: generative service disabled: %v", LogPrefixHost, err)
		} else {
			h.LLM = llmprovider.NewManager(providers, llmprovider.ManagerConfig(&cfg.LLM), l)
			h.Deps.Completer = NewLLMCompleter(l, h.LLM, cfg.LLM)
			l.Infof(ctx, "%s: generative providers %v", LogPrefixHost, h.LLM.Providers())
		}
	} else {
		l.Warnf(ctx, "%s: no llm providers configured", LogPrefixHost)
	}

	if cfg.Archive.Enabled {
		repo, err := sqlite.Open(cfg.Archive.Path, l)
		if err != nil {
			return nil, fmt.Errorf("%s: archive: %w", LogPrefixHost, err)
		}
		h.Archive = repo
		h.archiver = NewArchiver(l, repo, cfg.Archive.BufferSize)
		h.Deps.Archiver = h.archiver
		l.Infof(ctx, "%s: archiving sessions to %s", LogPrefixHost, cfg.Archive.Path)
	}

	return h, nil
}

// Factory builds session pipelines over the shared deps.
func (h *Host) Factory(opts ...conversation.Option) Factory {
	return func(sessionID string) *Pipeline {
		return New(h.l, h.Deps, sessionID, opts...)
	}
}

// ReadyLLM reports whether the generative service has a reachable provider.
func (h *Host) ReadyLLM(ctx context.Context) error {
	if h.LLM == nil || len(h.LLM.Providers()) == 0 {
		return ErrLLMUnavailable
	}
	if err := h.LLM.Ping(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrLLMUnavailable, err)
	}
	return nil
}

// Close drains the archiver before closing the archive.
func (h *Host) Close() error {
	if h.archiver == nil {
		return nil
	}
	if err := h.archiver.Close(); err != nil {
		return err
	}
	return h.Archive.Close()
}
