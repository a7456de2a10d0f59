package conversation

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"intent-pipeline/internal/intent"
)

// Save writes the session as JSON via a temp file and rename.
func (s *MemoryStore) Save(ctx context.Context, path string) error {
	if s.ctx == nil {
		return ErrNoActiveSession
	}

	c := s.ctx.clone()
	payload, err := json.MarshalIndent(document{
		Context:             &c,
		ConversationHistory: s.History(),
		SessionStart:        s.sessionStart,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("%s: encode: %w", LogPrefixSave, err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%s: create dir: %w", LogPrefixSave, err)
	}
	tmp, err := os.CreateTemp(dir, ".conversation-*.json")
	if err != nil {
		return fmt.Errorf("%s: create temp file: %w", LogPrefixSave, err)
	}
	tmpPath := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpPath) }

	if _, err := tmp.Write(payload); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("%s: write temp file: %w", LogPrefixSave, err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("%s: close temp file: %w", LogPrefixSave, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		cleanup()
		return fmt.Errorf("%s: replace file: %w", LogPrefixSave, err)
	}

	s.l.Infof(ctx, "%s: session=%s turns=%d path=%s", LogPrefixSave, c.SessionID, len(s.history), path)
	return nil
}

func (s *MemoryStore) Load(ctx context.Context, path string) bool {
	doc, err := readDocument(path)
	if err != nil {
		s.l.Warnf(ctx, "%s: %v, starting a fresh session", LogPrefixLoad, err)
		s.Start("")
		return false
	}

	c := doc.Context.clone()
	s.ctx = &c
	if !doc.SessionStart.IsZero() {
		s.sessionStart = doc.SessionStart
	}
	s.history = doc.ConversationHistory
	if over := len(s.history) - s.maxTurns; over > 0 {
		s.history = s.history[over:]
	}

	s.l.Infof(ctx, "%s: session=%s turns=%d", LogPrefixLoad, c.SessionID, len(s.history))
	return true
}

func readDocument(path string) (document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return document{}, err
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return document{}, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if doc.Context == nil || doc.Context.SessionID == "" {
		return document{}, fmt.Errorf("%w: missing context", ErrInvalidDocument)
	}

	doc.Context.CurrentTask = normalizeIntent(string(doc.Context.CurrentTask))
	for i := range doc.ConversationHistory {
		p := &doc.ConversationHistory[i].ParsedIntent
		p.Intent = normalizeIntent(string(p.Intent))
	}
	return doc, nil
}

// normalizeIntent accepts values like "analyze", "ANALYZE" or "IntentType.ANALYZE".
func normalizeIntent(v string) intent.Intent {
	if v == "" {
		return ""
	}
	if i := strings.LastIndex(v, "."); i >= 0 {
		v = v[i+1:]
	}
	in := intent.Intent(strings.ToLower(v))
	if !in.Valid() {
		return intent.IntentUnknown
	}
	return in
}
