package presenter

import (
	"fmt"
	"strings"

	"intent-pipeline/internal/conversation"
	"intent-pipeline/internal/intent"
)

func suggest(parsed intent.ParsedIntent, snap *conversation.Snapshot) Suggestions {
	s := Suggestions{
		Actions:   []string{},
		FollowUp:  []string{},
		Proactive: []string{},
	}

	if table, ok := suggestionTable[parsed.Intent]; ok {
		s.FollowUp = append(s.FollowUp, head(table.followUp, MaxIntentHints)...)
		s.Proactive = append(s.Proactive, head(table.proactive, MaxIntentHints)...)
	}

	if snap == nil {
		return s
	}
	s.Actions = append(s.Actions, contextSuggestions(parsed, snap)...)
	if c, ok := taskContinuation(parsed, snap); ok {
		s.Actions = append(s.Actions, c)
	}
	return s
}

// contextSuggestions looks for two-step patterns in the last recorded actions
// and reminds the user of an unfinished task.
func contextSuggestions(parsed intent.ParsedIntent, snap *conversation.Snapshot) []string {
	var out []string

	if n := len(snap.RecentActions); n >= TwoStepWindow {
		last := snap.RecentActions[n-TwoStepWindow:]
		if hasAction(last, intent.IntentAnalyze) && parsed.Intent == intent.IntentCreate {
			out = append(out, HintTestsForCreated)
		}
		if hasAction(last, intent.IntentCreate) && parsed.Intent == intent.IntentOptimize {
			out = append(out, HintOptimizeImpact)
		}
	}

	switch {
	case snap.CurrentTask == intent.IntentAnalyze && parsed.Intent != intent.IntentAnalyze:
		out = append(out, HintBackToAnalysis)
	case snap.CurrentTask == intent.IntentCreate && parsed.Intent != intent.IntentCreate:
		out = append(out, HintContinueCreation)
	}

	return head(out, MaxContextHints)
}

func taskContinuation(parsed intent.ParsedIntent, snap *conversation.Snapshot) (string, bool) {
	if snap.CurrentTask == "" {
		return "", false
	}
	c, ok := taskContinuations[taskIntent{task: snap.CurrentTask, next: parsed.Intent}]
	if !ok {
		return "", false
	}
	target := snap.CurrentTarget
	if target == "" {
		target = c.fallback
	}
	return fmt.Sprintf(c.format, target), true
}

// hasAction reports whether any "<intent>:<target>" descriptor starts with in.
func hasAction(actions []string, in intent.Intent) bool {
	for _, a := range actions {
		name, _, _ := strings.Cut(a, ":")
		if intent.Intent(name) == in {
			return true
		}
	}
	return false
}

func head(in []string, n int) []string {
	if len(in) > n {
		return in[:n]
	}
	return in
}
