package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"intent-pipeline/config"
	"intent-pipeline/internal/httpserver"
	"intent-pipeline/internal/pipeline"
	conversationHTTP "intent-pipeline/internal/pipeline/delivery/http"
	"intent-pipeline/pkg/log"
)

func main() {
	configPath := flag.String("config", "", "path to config.yaml")
	flag.Parse()

	// 1. Configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		os.Exit(1)
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting Intent Pipeline API...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)
	logger.Infof(ctx, "Workspace: %s", cfg.Workspace.Root)

	// 3. Shared pipeline collaborators: classifier, tools, LLM providers, archive
	host, err := pipeline.NewHost(ctx, logger, cfg)
	if err != nil {
		logger.Error(ctx, "Failed to initialize pipeline: ", err)
		os.Exit(1)
	}

	// 4. Session registry
	registry := pipeline.NewRegistry(logger, host.Factory(), pipeline.RegistryConfig{
		MaxSessions:     cfg.Sessions.MaxSessions,
		TTL:             cfg.Sessions.TTL,
		RateLimitPerMin: cfg.Sessions.RateLimitPerMin,
		Burst:           cfg.Sessions.Burst,
	})

	// 5. HTTP Server
	readyChecks := map[string]httpserver.ReadyFunc{"llm": host.ReadyLLM}
	conversationHandler := conversationHTTP.New(logger, registry, host.Archive)

	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:              logger,
		Port:                cfg.HTTPServer.Port,
		Mode:                cfg.HTTPServer.Mode,
		Environment:         cfg.Environment.Name,
		ConversationHandler: conversationHandler,
		Stats:               host.Collector,
		ReadyChecks:         readyChecks,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		os.Exit(1)
	}

	// 6. Run until signalled, then retire sessions and drain the archive
	if err := serve(ctx, httpServer, registry, host); err != nil {
		logger.Error(ctx, "Server stopped with error: ", err)
		os.Exit(1)
	}

	logger.Info(ctx, "Server stopped gracefully")
}

type runner interface {
	Run(ctx context.Context) error
}

type sessionCloser interface {
	Close()
}

type archiveCloser interface {
	Close() error
}

// serve runs srv until ctx ends. Sessions are retired only after the server
// has drained its in-flight requests and the archive is closed last.
func serve(ctx context.Context, srv runner, sessions sessionCloser, archive archiveCloser) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Run(gctx)
	})
	runErr := g.Wait()

	sessions.Close()
	if err := archive.Close(); err != nil {
		return errors.Join(runErr, err)
	}
	return runErr
}
