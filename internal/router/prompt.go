package router

import (
	"fmt"
	"strings"

	"intent-pipeline/internal/intent"
)

// buildPrompt composes the system instruction from the persona, the intent
// guidance and whatever context the session has.
func (r *IntentRouter) buildPrompt(p intent.ParsedIntent) string {
	snap := r.store.Snapshot()

	parts := []string{fmt.Sprintf(PromptPersona, r.cfg.AssistantName)}
	if g, ok := intentGuidance[p.Intent]; ok {
		parts = append(parts, g)
	}
	if snap.CurrentTask != "" {
		parts = append(parts, fmt.Sprintf(PromptContext, snap.CurrentTask))
	}
	if n := len(snap.RecentActions); n > 0 {
		recent := snap.RecentActions
		if n > PromptRecentActionsMax {
			recent = recent[n-PromptRecentActionsMax:]
		}
		parts = append(parts, fmt.Sprintf(PromptRecentActions, strings.Join(recent, ", ")))
	}
	if p.HasTarget() {
		parts = append(parts, fmt.Sprintf(PromptTarget, p.Target))
	}
	parts = append(parts, PromptClosing)

	return strings.Join(parts, PromptSeparator)
}
