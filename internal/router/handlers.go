package router

import (
	"fmt"
	"strings"
)

func (r *IntentRouter) handleStatus() string {
	if !r.store.Active() {
		return MsgNoActiveSession
	}

	sum := r.store.Summary()
	snap := r.store.Snapshot()

	out := fmt.Sprintf(statusText,
		sum.DurationMinutes,
		sum.TotalTurns, sum.SuccessfulTurns,
		sum.AvgExecutionTime,
		sum.SuccessRate*100,
		orDefault(string(snap.CurrentTask), "Ninguna"),
		orDefault(snap.CurrentTarget, "Ninguno"),
		strings.Join(snap.RecentActions, ", "),
	)

	if len(snap.SuggestedContinuations) > 0 {
		out += "\n\n💡 **Sugerencias**:\n• " + strings.Join(snap.SuggestedContinuations, "\n• ")
	}
	return out
}

func (r *IntentRouter) handleHelp() string {
	out := fmt.Sprintf(helpText, r.cfg.AssistantName)

	if !r.store.Active() {
		return out
	}
	snap := r.store.Snapshot()
	if snap.CurrentTask == "" {
		return out
	}
	out += fmt.Sprintf("\n🎯 **Contexto actual**: Estás trabajando en %s", snap.CurrentTask)
	if len(snap.SuggestedContinuations) > 0 {
		out += "\n💡 **Puedes continuar con**: " + snap.SuggestedContinuations[0]
	}
	return out
}
