package router

import (
	"context"
	"errors"
	"fmt"
	"time"

	"intent-pipeline/internal/intent"
	"intent-pipeline/internal/metrics"
)

// Route runs one pass of the routing state machine. It always records the turn
// and never panics past its boundary.
func (r *IntentRouter) Route(ctx context.Context, userInput string, parsed intent.ParsedIntent) (res Result) {
	start := r.now()

	defer func() {
		if rec := recover(); rec != nil {
			r.l.Errorf(ctx, "%s: recovered panic: %v", LogPrefixRoute, rec)
			msg := fmt.Sprintf(MsgProcessingError, rec)
			res = r.finish(userInput, parsed, HandledByError, msg, msg, false, start)
		}
		r.record(ctx, parsed, res)
	}()

	if r.canHandleDirectly(parsed) {
		r.l.Debugf(ctx, "%s: direct intent=%s confidence=%.2f", LogPrefixRoute, parsed.Intent, parsed.Confidence)
		response := r.direct[parsed.Intent]()
		return r.finish(userInput, parsed, HandledByDirect, response, response, true, start)
	}

	if call, ok := r.toolCall(parsed); ok {
		r.l.Debugf(ctx, "%s: tools intent=%s tool=%s", LogPrefixRoute, parsed.Intent, toolForIntent[parsed.Intent])
		response, err := call(ctx)
		if err != nil {
			r.l.Warnf(ctx, "%s: tool %s failed: %v", LogPrefixRoute, toolForIntent[parsed.Intent], err)
			msg := fmt.Sprintf(MsgToolError, err)
			return r.finish(userInput, parsed, HandledByError, msg, msg, false, start)
		}
		return r.finish(userInput, parsed, HandledByTools, response, response, true, start)
	}

	r.l.Debugf(ctx, "%s: llm intent=%s confidence=%.2f", LogPrefixRoute, parsed.Intent, parsed.Confidence)
	response, ok := r.handleWithLLM(ctx, userInput, parsed)
	if !ok {
		return r.finish(userInput, parsed, HandledByLLM, MsgLLMFailed, MsgLLMFailedHistory, false, start)
	}
	return r.finish(userInput, parsed, HandledByLLM, response, response, true, start)
}

// finish records the turn exactly once and builds the result.
func (r *IntentRouter) finish(userInput string, parsed intent.ParsedIntent, by HandledBy, response, recorded string, success bool, start time.Time) Result {
	elapsed := r.now().Sub(start)
	turn := r.store.RecordTurn(userInput, parsed, recorded, elapsed, success)
	return Result{
		Response:      response,
		HandledBy:     by,
		ExecutionTime: elapsed,
		Success:       success,
		Turn:          turn,
	}
}

func (r *IntentRouter) record(ctx context.Context, parsed intent.ParsedIntent, res Result) {
	r.l.Infof(ctx, "%s: intent=%s handled_by=%s success=%t duration=%s",
		LogPrefixRoute, parsed.Intent, res.HandledBy, res.Success, res.ExecutionTime)
	if r.metrics == nil {
		return
	}
	r.metrics.Record(ctx, metrics.Event{
		Name:       MetricsEventRoute,
		Intent:     string(parsed.Intent),
		HandledBy:  string(res.HandledBy),
		Success:    res.Success,
		Confidence: parsed.Confidence,
		Duration:   res.ExecutionTime,
	})
}

func (r *IntentRouter) canHandleDirectly(p intent.ParsedIntent) bool {
	_, ok := r.direct[p.Intent]
	return ok && p.Confidence >= DirectThreshold
}

// toolCall resolves the collaborator for p. A registered collaborator without
// the required capability counts as unavailable.
func (r *IntentRouter) toolCall(p intent.ParsedIntent) (func(context.Context) (string, error), bool) {
	if p.Confidence < ToolsThreshold {
		return nil, false
	}
	name, ok := toolForIntent[p.Intent]
	if !ok {
		return nil, false
	}
	tool, ok := r.tool(name)
	if !ok || tool == nil {
		return nil, false
	}

	switch p.Intent {
	case intent.IntentAnalyze:
		analyzer, ok := tool.(ProjectAnalyzer)
		if !ok {
			return nil, false
		}
		target := orDefault(p.Target, r.cfg.AnalyzePath)
		return func(ctx context.Context) (string, error) {
			out, err := analyzer.AnalyzeProject(ctx, target)
			return HeaderAnalysis + out, err
		}, true

	case intent.IntentFind:
		finder, ok := tool.(FileFinder)
		if !ok {
			return nil, false
		}
		pattern := orDefault(p.Target, r.cfg.FindPattern)
		return func(ctx context.Context) (string, error) {
			out, err := finder.FindFiles(ctx, pattern)
			return HeaderSearch + out, err
		}, true

	case intent.IntentCreate:
		creator, ok := tool.(FileCreator)
		if !ok {
			return nil, false
		}
		path := orDefault(p.Target, r.cfg.CreatePath)
		fileType := orDefault(p.Detail(intent.DetailType), r.cfg.CreateFileType)
		return func(ctx context.Context) (string, error) {
			out, err := creator.CreateFile(ctx, path, fileType)
			return HeaderCreated + out, err
		}, true
	}
	return nil, false
}

type completion struct {
	text string
	ok   bool
}

// handleWithLLM waits at most LLMTimeout even if the completer ignores ctx.
func (r *IntentRouter) handleWithLLM(ctx context.Context, userInput string, parsed intent.ParsedIntent) (string, bool) {
	if r.completer == nil {
		r.l.Warnf(ctx, "%s: no generative service configured", LogPrefixRoute)
		return "", false
	}

	messages := []Message{
		{Role: RoleSystem, Content: r.buildPrompt(parsed)},
		{Role: RoleUser, Content: userInput},
	}
	taskType := TaskTypeFor(parsed.Intent)

	ctx, cancel := context.WithTimeout(ctx, r.cfg.LLMTimeout)
	defer cancel()

	done := make(chan completion, 1)
	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				r.l.Errorf(ctx, "%s: completer panic: %v", LogPrefixRoute, rec)
				done <- completion{}
			}
		}()
		text, ok := r.completer.Complete(ctx, messages, taskType)
		done <- completion{text: text, ok: ok}
	}()

	select {
	case c := <-done:
		if !c.ok || c.text == "" {
			return "", false
		}
		return c.text, true
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			r.l.Warnf(ctx, "%s: generative service timed out after %s", LogPrefixRoute, r.cfg.LLMTimeout)
		}
		return "", false
	}
}

// TaskTypeFor maps an intent to its model-selection category.
func TaskTypeFor(in intent.Intent) TaskType {
	switch in {
	case intent.IntentAnalyze, intent.IntentOptimize:
		return TaskTypeComplex
	case intent.IntentCreate, intent.IntentExplain:
		return TaskTypeCoding
	default:
		return TaskTypeGeneral
	}
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
