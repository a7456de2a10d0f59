package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "environment:\n  name: test\n"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Environment.Name != "test" {
		t.Errorf("environment = %q", cfg.Environment.Name)
	}
	if cfg.Conversation.MaxTurns != 10 {
		t.Errorf("max turns = %d", cfg.Conversation.MaxTurns)
	}
	if cfg.Router.LLMTimeout != 120*time.Second {
		t.Errorf("llm timeout = %s", cfg.Router.LLMTimeout)
	}
	if cfg.Router.FindPattern != "*" || cfg.Router.CreatePath != "new_file.py" {
		t.Errorf("router defaults = %+v", cfg.Router)
	}
	if cfg.Sessions.TTL != 30*time.Minute {
		t.Errorf("session ttl = %s", cfg.Sessions.TTL)
	}
	if cfg.Archive.Enabled {
		t.Error("archive enabled by default")
	}
	if len(cfg.LLM.Providers) != 0 {
		t.Errorf("providers = %v", cfg.LLM.Providers)
	}
}

func TestLoad_Providers(t *testing.T) {
	t.Setenv("PIPELINE_TEST_KEY", "secret")

	cfg, err := Load(writeConfig(t, `
llm:
  providers:
    - name: ollama
      enabled: true
      priority: 1
      model: llama3.2:3b
      models:
        coding: coder
    - name: deepseek
      enabled: true
      priority: 2
      api_key: ${PIPELINE_TEST_KEY}
      model: deepseek-chat
      timeout: 30s
`))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	want := []ProviderConfig{
		{Name: "ollama", Enabled: true, Priority: 1, Model: "llama3.2:3b", Models: ModelsConfig{Coding: "coder"}},
		{Name: "deepseek", Enabled: true, Priority: 2, APIKey: "secret", Model: "deepseek-chat", Timeout: "30s"},
	}
	if diff := cmp.Diff(want, cfg.LLM.Providers); diff != "" {
		t.Errorf("providers mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_InvalidProviders(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{
			name: "Missing model",
			body: "llm:\n  providers:\n    - name: ollama\n      enabled: true\n      priority: 1\n",
		},
		{
			name: "Duplicate priority",
			body: "llm:\n  providers:\n    - name: a\n      enabled: true\n      priority: 1\n      model: m\n    - name: b\n      enabled: true\n      priority: 1\n      model: m\n",
		},
		{
			name: "Non positive priority",
			body: "llm:\n  providers:\n    - name: a\n      enabled: true\n      priority: 0\n      model: m\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tt.body)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing explicit config file")
	}
}
