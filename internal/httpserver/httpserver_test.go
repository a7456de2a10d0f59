package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"intent-pipeline/internal/metrics"
	"intent-pipeline/pkg/log"
	"intent-pipeline/pkg/response"
)

type fixedStats struct{ stats metrics.Stats }

func (f fixedStats) Snapshot() metrics.Stats { return f.stats }

func newTestServer(t *testing.T, cfg Config) *HTTPServer {
	t.Helper()
	cfg.Mode = "test"
	cfg.Port = 8080
	srv, err := New(log.NewNop(), cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return srv
}

func get(srv *HTTPServer, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestNew_Validate(t *testing.T) {
	tests := []struct {
		name string
		l    log.Logger
		cfg  Config
	}{
		{name: "No logger", cfg: Config{Mode: "test", Port: 1}},
		{name: "No mode", l: log.NewNop(), cfg: Config{Port: 1}},
		{name: "No port", l: log.NewNop(), cfg: Config{Mode: "test"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.l, tt.cfg); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestSystemRoutes(t *testing.T) {
	srv := newTestServer(t, Config{})
	for _, path := range []string{"/health", "/live", "/ready"} {
		t.Run(path, func(t *testing.T) {
			if w := get(srv, path); w.Code != http.StatusOK {
				t.Errorf("status = %d", w.Code)
			}
		})
	}
}

func TestReadyCheck(t *testing.T) {
	srv := newTestServer(t, Config{ReadyChecks: map[string]ReadyFunc{
		"archive": func(ctx context.Context) error { return nil },
		"llm":     func(ctx context.Context) error { return errors.New("no provider answered") },
	}})

	w := get(srv, "/ready")
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d", w.Code)
	}
	var data struct {
		Status string            `json:"status"`
		Checks map[string]string `json:"checks"`
	}
	json.Unmarshal(w.Body.Bytes(), &response.Resp{Data: &data})
	if data.Status != "not_ready" || data.Checks["archive"] != "ok" || data.Checks["llm"] != "no provider answered" {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestMetricsRoute(t *testing.T) {
	srv := newTestServer(t, Config{Stats: fixedStats{stats: metrics.Stats{Total: 3, Successes: 2}}})

	w := get(srv, "/metrics")
	var stats metrics.Stats
	json.Unmarshal(w.Body.Bytes(), &response.Resp{Data: &stats})
	if stats.Total != 3 || stats.Successes != 2 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestConversationRoutesOptional(t *testing.T) {
	srv := newTestServer(t, Config{})
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/conversations", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404 without handler", w.Code)
	}
}
