package metrics

import (
	"context"
	"sync"
	"time"

	pkgLog "intent-pipeline/pkg/log"
)

const LogPrefixRecord = "internal.metrics.Record"

// Recorder is the narrow capability handed to the router.
type Recorder interface {
	Record(ctx context.Context, e Event)
}

// Collector aggregates events in memory. Safe for concurrent use.
type Collector struct {
	l pkgLog.Logger

	mu            sync.Mutex
	total         int
	successes     int
	byHandler     map[string]int
	byIntent      map[string]int
	totalDuration time.Duration
	totalConf     float64
}

var _ Recorder = (*Collector)(nil)

func NewCollector(l pkgLog.Logger) *Collector {
	return &Collector{
		l:         l,
		byHandler: map[string]int{},
		byIntent:  map[string]int{},
	}
}

func (c *Collector) Record(ctx context.Context, e Event) {
	c.mu.Lock()
	c.total++
	if e.Success {
		c.successes++
	}
	c.byHandler[e.HandledBy]++
	c.byIntent[e.Intent]++
	c.totalDuration += e.Duration
	c.totalConf += e.Confidence
	c.mu.Unlock()

	c.l.Debugf(ctx, "%s: %s intent=%s handled_by=%s success=%t confidence=%.2f duration=%s",
		LogPrefixRecord, e.Name, e.Intent, e.HandledBy, e.Success, e.Confidence, e.Duration)
}

// Snapshot returns copies of the aggregated counters.
func (c *Collector) Snapshot() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Stats{
		Total:     c.total,
		Successes: c.successes,
		Failures:  c.total - c.successes,
		ByHandler: make(map[string]int, len(c.byHandler)),
		ByIntent:  make(map[string]int, len(c.byIntent)),
	}
	for k, v := range c.byHandler {
		s.ByHandler[k] = v
	}
	for k, v := range c.byIntent {
		s.ByIntent[k] = v
	}
	if c.total > 0 {
		n := float64(c.total)
		s.SuccessRate = float64(c.successes) / n
		s.AvgDurationSec = c.totalDuration.Seconds() / n
		s.AvgConfidence = c.totalConf / n
	}
	return s
}
