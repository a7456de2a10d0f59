package metrics

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	pkgLog "intent-pipeline/pkg/log"
)

func TestCollector_Snapshot(t *testing.T) {
	c := NewCollector(pkgLog.NewNop())
	ctx := context.Background()

	if got := c.Snapshot(); got.Total != 0 || got.SuccessRate != 0 {
		t.Errorf("empty snapshot = %+v", got)
	}

	c.Record(ctx, Event{Name: "route", Intent: "analyze", HandledBy: "tools", Success: true, Confidence: 0.8, Duration: time.Second})
	c.Record(ctx, Event{Name: "route", Intent: "unknown", HandledBy: "llm", Success: false, Confidence: 0.2, Duration: 3 * time.Second})

	want := Stats{
		Total:          2,
		Successes:      1,
		Failures:       1,
		SuccessRate:    0.5,
		ByHandler:      map[string]int{"tools": 1, "llm": 1},
		ByIntent:       map[string]int{"analyze": 1, "unknown": 1},
		AvgDurationSec: 2,
		AvgConfidence:  0.5,
	}
	if diff := cmp.Diff(want, c.Snapshot()); diff != "" {
		t.Errorf("Snapshot() mismatch (-want +got):\n%s", diff)
	}
}

func TestCollector_Concurrent(t *testing.T) {
	c := NewCollector(pkgLog.NewNop())
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Record(context.Background(), Event{Name: "route", Intent: "find", HandledBy: "tools", Success: true})
		}()
	}
	wg.Wait()

	if got := c.Snapshot(); got.Total != 50 || got.ByIntent["find"] != 50 {
		t.Errorf("snapshot = %+v", got)
	}
}
