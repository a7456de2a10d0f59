package conversation

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"intent-pipeline/internal/intent"
)

// NewSessionID returns a time-ordered unique session id.
func NewSessionID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return SessionIDPrefix + uuid.NewString()
	}
	return SessionIDPrefix + id.String()
}

func (s *MemoryStore) Start(sessionID string) string {
	if sessionID == "" {
		sessionID = s.newID()
	}
	s.ctx = &Context{
		SessionID:       sessionID,
		StartedAt:       s.now(),
		UserPreferences: map[string]int{},
		RecentActions:   []string{},
	}
	s.history = nil

	s.l.Debugf(context.Background(), "%s: session=%s", LogPrefixStart, sessionID)
	return sessionID
}

func (s *MemoryStore) RecordTurn(userInput string, parsed intent.ParsedIntent, response string, executionTime time.Duration, success bool) Turn {
	turn := Turn{
		Timestamp:     s.now(),
		UserInput:     userInput,
		ParsedIntent:  parsed,
		Response:      response,
		ExecutionTime: executionTime,
		Success:       success,
	}

	s.history = append(s.history, turn)
	if over := len(s.history) - s.maxTurns; over > 0 {
		s.history = append([]Turn(nil), s.history[over:]...)
	}

	s.updateContext(parsed)
	return turn
}

// updateContext is a no-op before Start.
func (s *MemoryStore) updateContext(p intent.ParsedIntent) {
	if s.ctx == nil {
		return
	}

	if taskIntents[p.Intent] {
		s.ctx.CurrentTask = p.Intent
		if p.HasTarget() {
			s.ctx.CurrentTarget = p.Target
		}
	}

	s.ctx.RecentActions = append(s.ctx.RecentActions, actionDescriptor(p))
	if over := len(s.ctx.RecentActions) - MaxRecentActions; over > 0 {
		s.ctx.RecentActions = append([]string(nil), s.ctx.RecentActions[over:]...)
	}

	s.learnPreferences(p)
}

func (s *MemoryStore) learnPreferences(p intent.ParsedIntent) {
	prefs := s.ctx.UserPreferences
	prefs[PreferenceIntentPrefix+string(p.Intent)]++
	if p.HasTarget() {
		prefs[PreferenceTargetPrefix+p.Target]++
	}
	for k, v := range p.Details {
		prefs[fmt.Sprintf("%s%s_%s", PreferenceDetailPrefix, k, v)]++
	}
}

func actionDescriptor(p intent.ParsedIntent) string {
	target := p.Target
	if target == "" {
		target = ActionGeneral
	}
	return string(p.Intent) + ":" + target
}

func (s *MemoryStore) IsContinuation(p intent.ParsedIntent) bool {
	if s.ctx == nil || s.ctx.CurrentTask == "" {
		return false
	}
	if p.Intent == s.ctx.CurrentTask && p.Target == s.ctx.CurrentTarget {
		return true
	}
	for _, related := range relatedTasks[s.ctx.CurrentTask] {
		if related == p.Intent {
			return true
		}
	}
	return false
}

// Context returns a copy of the live context, or the zero Context before Start.
func (s *MemoryStore) Context() Context {
	if s.ctx == nil {
		return Context{}
	}
	return s.ctx.clone()
}

// History returns a copy of the bounded turn window, oldest first.
func (s *MemoryStore) History() []Turn {
	return append([]Turn{}, s.history...)
}

func (s *MemoryStore) Active() bool {
	return s.ctx != nil
}
