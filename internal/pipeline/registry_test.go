package pipeline

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"intent-pipeline/internal/conversation"
	pkgLog "intent-pipeline/pkg/log"
)

func newTestRegistry(t *testing.T, arch Archiver, cfg RegistryConfig) *Registry {
	t.Helper()
	r := NewRegistry(pkgLog.NewNop(), func(id string) *Pipeline {
		return New(pkgLog.NewNop(), Deps{Archiver: arch}, id)
	}, cfg)
	t.Cleanup(r.Close)
	return r
}

func TestRegistry_Create(t *testing.T) {
	r := newTestRegistry(t, nil, RegistryConfig{})
	ctx := context.Background()

	id := r.Create(ctx, "")
	if !strings.HasPrefix(id, conversation.SessionIDPrefix) {
		t.Errorf("generated id %q lacks prefix", id)
	}
	if got := r.Create(ctx, "mine"); got != "mine" {
		t.Errorf("Create(mine) = %q", got)
	}
	if got := r.Create(ctx, " mine "); got != "mine" {
		t.Errorf("Create of existing id = %q", got)
	}
	if r.Len() != 2 {
		t.Errorf("Len = %d, want 2", r.Len())
	}
}

func TestRegistry_Handle(t *testing.T) {
	r := newTestRegistry(t, nil, RegistryConfig{})
	ctx := context.Background()
	id := r.Create(ctx, "s1")

	out, err := r.Handle(ctx, id, "Estado del progreso")
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if out.SessionID != "s1" || !out.Success {
		t.Errorf("output = %+v", out)
	}

	tests := []struct {
		name string
		id   string
		text string
		want error
	}{
		{name: "Unknown session", id: "nope", text: "hola", want: ErrSessionNotFound},
		{name: "Empty text", id: id, text: "   ", want: ErrEmptyText},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := r.Handle(ctx, tt.id, tt.text); !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestRegistry_RateLimit(t *testing.T) {
	r := newTestRegistry(t, nil, RegistryConfig{RateLimitPerMin: 1, Burst: 1})
	ctx := context.Background()
	a := r.Create(ctx, "a")
	b := r.Create(ctx, "b")

	if _, err := r.Handle(ctx, a, "ayuda"); err != nil {
		t.Fatalf("first turn: %v", err)
	}
	if _, err := r.Handle(ctx, a, "ayuda"); !errors.Is(err, ErrRateLimited) {
		t.Errorf("second turn err = %v, want ErrRateLimited", err)
	}
	if _, err := r.Handle(ctx, b, "ayuda"); err != nil {
		t.Errorf("other session limited: %v", err)
	}
}

func TestRegistry_SessionIsolation(t *testing.T) {
	r := newTestRegistry(t, nil, RegistryConfig{})
	ctx := context.Background()
	a := r.Create(ctx, "a")
	b := r.Create(ctx, "b")

	r.Handle(ctx, a, "Analiza este proyecto")
	r.Handle(ctx, a, "Crea una función")
	r.Handle(ctx, b, "Estado del progreso")

	sumA, err := r.Summary(a)
	if err != nil {
		t.Fatal(err)
	}
	sumB, _ := r.Summary(b)
	if sumA.TotalTurns != 2 || sumB.TotalTurns != 1 {
		t.Errorf("turns a=%d b=%d", sumA.TotalTurns, sumB.TotalTurns)
	}

	snapB, _ := r.Snapshot(b)
	if snapB.CurrentTask != "" {
		t.Errorf("session b inherited task %q", snapB.CurrentTask)
	}
	if _, err := r.Snapshot("nope"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Snapshot(nope) err = %v", err)
	}
}

func TestRegistry_ConcurrentTurnsSameSession(t *testing.T) {
	r := newTestRegistry(t, nil, RegistryConfig{RateLimitPerMin: 6000, Burst: 100})
	ctx := context.Background()
	id := r.Create(ctx, "busy")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.Handle(ctx, id, "Estado del progreso")
		}()
	}
	wg.Wait()

	sum, _ := r.Summary(id)
	if sum.TotalTurns != 8 {
		t.Errorf("turns = %d, want 8", sum.TotalTurns)
	}
}

func TestRegistry_EndArchivesContext(t *testing.T) {
	arch := &mockArchiver{}
	r := newTestRegistry(t, arch, RegistryConfig{})
	ctx := context.Background()
	id := r.Create(ctx, "bye")
	r.Handle(ctx, id, "Crea una función")

	if err := r.End(ctx, id); err != nil {
		t.Fatalf("End: %v", err)
	}
	if err := r.End(ctx, id); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("second End err = %v", err)
	}
	r.retiring.Wait()

	recs := arch.all()
	last := recs[len(recs)-1]
	if last.Turn != nil || last.Context == nil || last.Context.SessionID != "bye" {
		t.Errorf("final record = %+v", last)
	}
	if _, err := r.Handle(ctx, id, "hola"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Handle after End err = %v", err)
	}
}

func TestRegistry_ExpiryArchives(t *testing.T) {
	arch := &mockArchiver{}
	r := newTestRegistry(t, arch, RegistryConfig{TTL: 20 * time.Millisecond})
	id := r.Create(context.Background(), "short")

	deadline := time.Now().Add(2 * time.Second)
	for r.Len() > 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if r.Len() != 0 {
		t.Fatal("session did not expire")
	}
	r.retiring.Wait()

	recs := arch.all()
	if len(recs) != 1 || recs[0].SessionID != id {
		t.Errorf("records = %+v", recs)
	}
}

func TestRegistry_CapacityEvictsOldest(t *testing.T) {
	r := newTestRegistry(t, nil, RegistryConfig{MaxSessions: 2})
	ctx := context.Background()
	r.Create(ctx, "one")
	r.Create(ctx, "two")
	r.Create(ctx, "three")

	if r.Len() != 2 {
		t.Errorf("Len = %d", r.Len())
	}
	if _, err := r.Summary("one"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("oldest session still live: %v", err)
	}
}

func TestRegistry_CloseWhileExpiring(t *testing.T) {
	arch := &mockArchiver{}
	r := newTestRegistry(t, arch, RegistryConfig{TTL: 5 * time.Millisecond})
	ctx := context.Background()

	const n = 50
	for i := 0; i < n; i++ {
		r.Create(ctx, "")
		if i%10 == 0 {
			time.Sleep(time.Millisecond)
		}
	}
	r.Close()

	if got := len(arch.all()); got != n {
		t.Errorf("archived %d sessions after Close, want %d", got, n)
	}
}

func TestRegistry_EvictAfterClose(t *testing.T) {
	arch := &mockArchiver{}
	r := newTestRegistry(t, arch, RegistryConfig{})
	ctx := context.Background()
	r.Close()

	id := r.Create(ctx, "late")
	if err := r.End(ctx, id); err != nil {
		t.Fatalf("End: %v", err)
	}
	recs := arch.all()
	if len(recs) != 1 || recs[0].SessionID != "late" {
		t.Errorf("late session not retired inline: %+v", recs)
	}
}
