package conversation

import (
	"sort"
	"strings"

	"intent-pipeline/internal/intent"
)

// Snapshot is deterministic: without an intervening turn and with a fixed clock
// two calls return equal values. Before Start it returns the zero view.
func (s *MemoryStore) Snapshot() Snapshot {
	snap := Snapshot{
		RecentActions:          []string{},
		RecentConversation:     []TurnSummary{},
		SuggestedContinuations: []string{},
	}
	if s.ctx == nil {
		return snap
	}

	snap.SessionDurationMinutes = s.now().Sub(s.ctx.StartedAt).Minutes()
	snap.CurrentTask = s.ctx.CurrentTask
	snap.CurrentTarget = s.ctx.CurrentTarget
	snap.RecentActions = append(snap.RecentActions, tail(s.ctx.RecentActions, SnapshotWindow)...)

	start := len(s.history) - SnapshotWindow
	if start < 0 {
		start = 0
	}
	for _, t := range s.history[start:] {
		snap.RecentConversation = append(snap.RecentConversation, TurnSummary{
			User:    t.UserInput,
			Intent:  t.ParsedIntent.Intent,
			Success: t.Success,
		})
	}

	snap.UserPatterns = s.patterns()
	snap.SuggestedContinuations = append(snap.SuggestedContinuations, s.suggestedContinuations()...)
	return snap
}

// Summary is a pure read over the session.
func (s *MemoryStore) Summary() Summary {
	if s.ctx == nil {
		return Summary{}
	}

	sum := Summary{
		SessionID:       s.ctx.SessionID,
		DurationMinutes: s.now().Sub(s.ctx.StartedAt).Minutes(),
		TotalTurns:      len(s.history),
		CurrentTask:     s.ctx.CurrentTask,
		UserPatterns:    s.patterns(),
	}

	var total float64
	for _, t := range s.history {
		if t.Success {
			sum.SuccessfulTurns++
		} else {
			sum.FailedTurns++
		}
		total += t.ExecutionTime.Seconds()
	}
	if n := len(s.history); n > 0 {
		sum.SuccessRate = float64(sum.SuccessfulTurns) / float64(n)
		sum.AvgExecutionTime = total / float64(n)
	}
	return sum
}

func (s *MemoryStore) patterns() UsagePatterns {
	p := UsagePatterns{TotalInteractions: len(s.history)}
	if s.ctx == nil {
		return p
	}
	if k := mostCommon(s.ctx.UserPreferences, PreferenceIntentPrefix); k != "" {
		p.MostCommonIntent = intent.Intent(k)
	}
	p.MostCommonTarget = mostCommon(s.ctx.UserPreferences, PreferenceTargetPrefix)
	return p
}

// mostCommon returns the highest counter under prefix with the prefix stripped.
// Ties go to the lexicographically smallest key.
func mostCommon(prefs map[string]int, prefix string) string {
	keys := make([]string, 0, len(prefs))
	for k := range prefs {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	best, bestCount := "", 0
	for _, k := range keys {
		if prefs[k] > bestCount {
			best, bestCount = k, prefs[k]
		}
	}
	return strings.TrimPrefix(best, prefix)
}

func (s *MemoryStore) suggestedContinuations() []string {
	if len(s.history) == 0 {
		return nil
	}
	table := continuations[s.history[len(s.history)-1].ParsedIntent.Intent]
	if len(table) > MaxContinuations {
		table = table[:MaxContinuations]
	}
	return table
}

func tail(in []string, n int) []string {
	if len(in) <= n {
		return in
	}
	return in[len(in)-n:]
}
