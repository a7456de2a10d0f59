package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"intent-pipeline/config"
	"intent-pipeline/internal/pipeline"
	"intent-pipeline/pkg/log"
)

var (
	// Global flags
	configPath string
	sessionID  string
	statePath  string
	plain      bool
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "chat",
	Short: "Conversational development assistant",
	Long: `chat classifies each utterance, keeps the conversation context, routes it to
a direct answer, a workspace tool or the generative service, and renders the reply.

Commands inside the session:
  /estado    show the conversation context
  /guardar   save the session to the state file
  /metricas  show routing counters
  /salir     leave (the session is saved when a state file is set)`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(ctx context.Context, s *chatSession) error {
			return s.loop(ctx, cmd.InOrStdin())
		})
	},
}

var askCmd = &cobra.Command{
	Use:   "ask [utterance]",
	Short: "Run a single utterance and print the reply",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(ctx context.Context, s *chatSession) error {
			s.turn(ctx, joinArgs(args))
			return nil
		})
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config.yaml")
	rootCmd.PersistentFlags().StringVarP(&sessionID, "session", "s", "", "session id (default: generated)")
	rootCmd.PersistentFlags().StringVar(&statePath, "state", "", "session state file (default: conversation.state_path)")
	rootCmd.PersistentFlags().BoolVar(&plain, "plain", false, "print replies without markdown rendering")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(askCmd)
}

// withSession wires one pipeline from config and runs fn against it.
func withSession(cmd *cobra.Command, fn func(ctx context.Context, s *chatSession) error) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	level := "warn"
	if verbose {
		level = "debug"
	}
	logger := log.Init(log.ZapConfig{
		Level:        level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	host, err := pipeline.NewHost(ctx, logger, cfg)
	if err != nil {
		return err
	}
	defer host.Close()

	state := statePath
	if state == "" {
		state = cfg.Conversation.StatePath
	}

	s := newChatSession(host.Factory()(sessionID), host.Collector, cmd.OutOrStdout(), newRenderer(plain), state)
	s.restore(ctx)
	defer s.finish(ctx)

	return fn(ctx, s)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
