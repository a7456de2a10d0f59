package main

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

type shutdownLog struct {
	mu     sync.Mutex
	events []string
}

func (l *shutdownLog) add(e string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, e)
}

type drainingServer struct {
	log *shutdownLog
	err error
}

func (s *drainingServer) Run(ctx context.Context) error {
	<-ctx.Done()
	time.Sleep(20 * time.Millisecond)
	s.log.add("server drained")
	return s.err
}

type fakeRegistry struct{ log *shutdownLog }

func (r *fakeRegistry) Close() { r.log.add("sessions retired") }

type fakeArchive struct {
	log *shutdownLog
	err error
}

func (a *fakeArchive) Close() error {
	a.log.add("archive closed")
	return a.err
}

func TestServe_ClosesAfterDrain(t *testing.T) {
	runErr := errors.New("listen failed")
	closeErr := errors.New("flush failed")
	tests := []struct {
		name     string
		runErr   error
		closeErr error
		want     []error
	}{
		{name: "Graceful"},
		{name: "Server error", runErr: runErr, want: []error{runErr}},
		{name: "Archive error", closeErr: closeErr, want: []error{closeErr}},
		{name: "Both errors", runErr: runErr, closeErr: closeErr, want: []error{runErr, closeErr}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := &shutdownLog{}
			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			err := serve(ctx, &drainingServer{log: log, err: tt.runErr}, &fakeRegistry{log: log}, &fakeArchive{log: log, err: tt.closeErr})

			if len(tt.want) == 0 && err != nil {
				t.Errorf("serve = %v", err)
			}
			for _, w := range tt.want {
				if !errors.Is(err, w) {
					t.Errorf("serve = %v, want %v", err, w)
				}
			}
			want := []string{"server drained", "sessions retired", "archive closed"}
			if len(log.events) != len(want) {
				t.Fatalf("events = %v", log.events)
			}
			for i := range want {
				if log.events[i] != want[i] {
					t.Errorf("events = %v, want %v", log.events, want)
					break
				}
			}
		})
	}
}
