package metrics

import "time"

// Event is one observation emitted after a routed turn.
type Event struct {
	Name       string
	Intent     string
	HandledBy  string
	Success    bool
	Confidence float64
	Duration   time.Duration
}

// Stats is a point-in-time view of the collector.
type Stats struct {
	Total          int            `json:"total"`
	Successes      int            `json:"successes"`
	Failures       int            `json:"failures"`
	SuccessRate    float64        `json:"success_rate"`
	ByHandler      map[string]int `json:"by_handler"`
	ByIntent       map[string]int `json:"by_intent"`
	AvgDurationSec float64        `json:"avg_duration_seconds"`
	AvgConfidence  float64        `json:"avg_confidence"`
}
