package conversation

import (
	"encoding/json"
	"time"

	"intent-pipeline/internal/intent"
)

// Turn is one finished exchange. Appended to history in arrival order.
type Turn struct {
	Timestamp     time.Time           `json:"timestamp"`
	UserInput     string              `json:"user_input"`
	ParsedIntent  intent.ParsedIntent `json:"parsed_intent"`
	Response      string              `json:"response"`
	ExecutionTime time.Duration       `json:"-"`
	Success       bool                `json:"success"`
}

type turnJSON struct {
	Timestamp     time.Time           `json:"timestamp"`
	UserInput     string              `json:"user_input"`
	ParsedIntent  intent.ParsedIntent `json:"parsed_intent"`
	Response      string              `json:"response"`
	ExecutionTime float64             `json:"execution_time"`
	Success       bool                `json:"success"`
}

// MarshalJSON encodes the execution time in seconds.
func (t Turn) MarshalJSON() ([]byte, error) {
	return json.Marshal(turnJSON{
		Timestamp:     t.Timestamp,
		UserInput:     t.UserInput,
		ParsedIntent:  t.ParsedIntent,
		Response:      t.Response,
		ExecutionTime: t.ExecutionTime.Seconds(),
		Success:       t.Success,
	})
}

// UnmarshalJSON decodes a turn written by MarshalJSON. A missing success flag means true.
func (t *Turn) UnmarshalJSON(data []byte) error {
	raw := turnJSON{Success: true}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*t = Turn{
		Timestamp:     raw.Timestamp,
		UserInput:     raw.UserInput,
		ParsedIntent:  raw.ParsedIntent,
		Response:      raw.Response,
		ExecutionTime: time.Duration(raw.ExecutionTime * float64(time.Second)),
		Success:       raw.Success,
	}
	return nil
}

// Context is the live derived state of a session.
type Context struct {
	SessionID       string         `json:"session_id"`
	StartedAt       time.Time      `json:"started_at"`
	CurrentTask     intent.Intent  `json:"current_task,omitempty"`
	CurrentTarget   string         `json:"current_target,omitempty"`
	UserPreferences map[string]int `json:"user_preferences"`
	RecentActions   []string       `json:"recent_actions"`
}

func (c Context) clone() Context {
	out := c
	out.UserPreferences = make(map[string]int, len(c.UserPreferences))
	for k, v := range c.UserPreferences {
		out.UserPreferences[k] = v
	}
	out.RecentActions = append([]string{}, c.RecentActions...)
	return out
}

// TurnSummary is the compact view of a turn exposed in snapshots.
type TurnSummary struct {
	User    string        `json:"user"`
	Intent  intent.Intent `json:"intent"`
	Success bool          `json:"success"`
}

// UsagePatterns are derived from the preference counters.
type UsagePatterns struct {
	MostCommonIntent  intent.Intent `json:"most_common_intent,omitempty"`
	MostCommonTarget  string        `json:"most_common_target,omitempty"`
	TotalInteractions int           `json:"total_interactions"`
}

// Snapshot is the read-only context view handed to the router and presenter.
type Snapshot struct {
	SessionDurationMinutes float64       `json:"session_duration_minutes"`
	CurrentTask            intent.Intent `json:"current_task,omitempty"`
	CurrentTarget          string        `json:"current_target,omitempty"`
	RecentActions          []string      `json:"recent_actions"`
	RecentConversation     []TurnSummary `json:"recent_conversation"`
	UserPatterns           UsagePatterns `json:"user_patterns"`
	SuggestedContinuations []string      `json:"suggested_continuations"`
}

// Summary aggregates the whole session.
type Summary struct {
	SessionID        string        `json:"session_id"`
	DurationMinutes  float64       `json:"duration_minutes"`
	TotalTurns       int           `json:"total_turns"`
	SuccessfulTurns  int           `json:"successful_turns"`
	FailedTurns      int           `json:"failed_turns"`
	SuccessRate      float64       `json:"success_rate"`
	AvgExecutionTime float64       `json:"avg_execution_time"`
	CurrentTask      intent.Intent `json:"current_task,omitempty"`
	UserPatterns     UsagePatterns `json:"user_patterns"`
}

// document is the on-disk layout written by Save.
type document struct {
	Context             *Context  `json:"context"`
	ConversationHistory []Turn    `json:"conversation_history"`
	SessionStart        time.Time `json:"session_start"`
}
