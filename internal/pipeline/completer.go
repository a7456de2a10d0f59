package pipeline

import (
	"context"
	"strings"

	"intent-pipeline/config"
	"intent-pipeline/internal/router"
	"intent-pipeline/pkg/llmprovider"
	pkgLog "intent-pipeline/pkg/log"
)

// Generator is the slice of llmprovider.Manager the completer needs.
type Generator interface {
	GenerateContent(ctx context.Context, req *llmprovider.Request) (*llmprovider.Response, error)
}

// LLMCompleter adapts a provider manager to router.Completer.
type LLMCompleter struct {
	l           pkgLog.Logger
	gen         Generator
	temperature float64
	maxTokens   int
}

var _ router.Completer = (*LLMCompleter)(nil)

func NewLLMCompleter(l pkgLog.Logger, gen Generator, cfg config.LLMConfig) *LLMCompleter {
	return &LLMCompleter{
		l:           l,
		gen:         gen,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
	}
}

// Complete reports ok=false on any provider error or empty text.
func (c *LLMCompleter) Complete(ctx context.Context, messages []router.Message, taskType router.TaskType) (string, bool) {
	req := &llmprovider.Request{
		TaskType:    string(taskType),
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
	}

	var system []string
	for _, m := range messages {
		if m.Role == router.RoleSystem {
			system = append(system, m.Content)
			continue
		}
		req.Messages = append(req.Messages, llmprovider.TextMessage(m.Role, m.Content))
	}
	if len(system) > 0 {
		msg := llmprovider.TextMessage(router.RoleSystem, strings.Join(system, "\n\n"))
		req.SystemInstruction = &msg
	}

	resp, err := c.gen.GenerateContent(ctx, req)
	if err != nil {
		c.l.Warnf(ctx, "%s: task=%s: %v", LogPrefixComplete, taskType, err)
		return "", false
	}

	text := strings.TrimSpace(resp.Content.Text())
	if text == "" {
		return "", false
	}
	return text, true
}
