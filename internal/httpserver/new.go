package httpserver

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"

	conversationHTTP "intent-pipeline/internal/pipeline/delivery/http"
	"intent-pipeline/internal/metrics"
	"intent-pipeline/pkg/log"
)

// StatsSource exposes the routing counters served on /metrics.
type StatsSource interface {
	Snapshot() metrics.Stats
}

// ReadyFunc reports whether a dependency can take traffic.
type ReadyFunc func(ctx context.Context) error

// HTTPServer holds all dependencies for the HTTP server.
type HTTPServer struct {
	// Server
	gin         *gin.Engine
	l           log.Logger
	port        int
	mode        string
	environment string

	// Conversation domain
	conversationHandler conversationHTTP.Handler
	stats               StatsSource
	ready               map[string]ReadyFunc
}

// Config is the dependency bag passed to New().
type Config struct {
	Logger      log.Logger
	Port        int
	Mode        string
	Environment string

	// Conversation domain
	ConversationHandler conversationHTTP.Handler
	Stats               StatsSource
	// ReadyChecks are probed by /ready, keyed by dependency name.
	ReadyChecks map[string]ReadyFunc
}

// New creates a new HTTPServer instance.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	gin.SetMode(cfg.Mode)

	srv := &HTTPServer{
		l:                   logger,
		gin:                 gin.New(),
		port:                cfg.Port,
		mode:                cfg.Mode,
		environment:         cfg.Environment,
		conversationHandler: cfg.ConversationHandler,
		stats:               cfg.Stats,
		ready:               cfg.ReadyChecks,
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	srv.mapHandlers()
	return srv, nil
}

func (srv HTTPServer) validate() error {
	if srv.l == nil {
		return errors.New("logger is required")
	}
	if srv.mode == "" {
		return errors.New("mode is required")
	}
	if srv.port == 0 {
		return errors.New("port is required")
	}
	return nil
}

// Handler exposes the engine for tests and embedding.
func (srv HTTPServer) Handler() *gin.Engine {
	return srv.gin
}
