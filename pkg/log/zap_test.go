package log

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := NewWithZap(zap.New(core))

	t.Run("Key value pairs become fields", func(t *testing.T) {
		l.Info(context.Background(), "LLM generation successful", "provider", "ollama", "model", "qwen")

		entries := logs.TakeAll()
		if len(entries) != 1 {
			t.Fatalf("expected 1 entry, got %d", len(entries))
		}
		if entries[0].Message != "LLM generation successful" {
			t.Errorf("unexpected message %q", entries[0].Message)
		}
		fields := entries[0].ContextMap()
		if fields["provider"] != "ollama" || fields["model"] != "qwen" {
			t.Errorf("unexpected fields: %v", fields)
		}
	})

	t.Run("Even args are concatenated", func(t *testing.T) {
		l.Error(context.Background(), "failed to run server: ", "boom")

		entries := logs.TakeAll()
		if len(entries) != 1 || entries[0].Message != "failed to run server: boom" {
			t.Errorf("unexpected entries: %+v", entries)
		}
	})

	t.Run("Session id from context", func(t *testing.T) {
		ctx := context.WithValue(context.Background(), SessionIDKey, "conv_1")
		l.Warnf(ctx, "rate limited %d", 3)

		entries := logs.TakeAll()
		if len(entries) != 1 {
			t.Fatalf("expected 1 entry, got %d", len(entries))
		}
		if entries[0].ContextMap()["session_id"] != "conv_1" {
			t.Errorf("expected session_id field, got %v", entries[0].ContextMap())
		}
		if entries[0].Message != "rate limited 3" {
			t.Errorf("unexpected message %q", entries[0].Message)
		}
	})
}

func TestParseLevel(t *testing.T) {
	tests := map[string]zapcore.Level{
		"debug": zapcore.DebugLevel,
		"WARN":  zapcore.WarnLevel,
		"":      zapcore.InfoLevel,
		"bogus": zapcore.InfoLevel,
	}
	for in, want := range tests {
		if got := parseLevel(in); got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
