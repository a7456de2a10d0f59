package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestChat(t *testing.T) {
	var got ChatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/chat" || r.Method != http.MethodPost {
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Error(err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"model":"llama3.2:3b","message":{"role":"assistant","content":"hola"},"done":true,"prompt_eval_count":7,"eval_count":3}`))
	}))
	defer server.Close()

	client, err := New(Config{BaseURL: server.URL + "/"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	resp, err := client.Chat(context.Background(), &ChatRequest{
		Messages: []Message{{Role: "user", Content: "hi"}},
		Stream:   true,
		Options:  &Options{Temperature: 0.3},
	})
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}

	if resp.Message.Content != "hola" || resp.EvalCount != 3 || resp.PromptEvalCount != 7 {
		t.Errorf("unexpected response: %+v", resp)
	}
	if got.Model != DefaultModel {
		t.Errorf("request model = %q, want default", got.Model)
	}
	if got.Stream {
		t.Error("request must not stream")
	}
	if got.Options == nil || got.Options.Temperature != 0.3 {
		t.Errorf("options = %+v", got.Options)
	}
}

func TestChat_APIError(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "JSON error", body: `{"error":"model not found"}`, want: "model not found"},
		{name: "Plain body", body: "boom", want: "boom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client, _ := New(Config{BaseURL: server.URL})
			_, err := client.Chat(context.Background(), &ChatRequest{Messages: []Message{{Role: "user", Content: "hi"}}})
			if err == nil || !strings.Contains(err.Error(), tt.want) || !strings.Contains(err.Error(), "404") {
				t.Errorf("err = %v, want to contain %q", err, tt.want)
			}
		})
	}
}

func TestListModels(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tags" {
			t.Errorf("path = %s", r.URL.Path)
		}
		w.Write([]byte(`{"models":[{"name":"llama3.2:3b"},{"name":"qwen2.5-coder:7b"}]}`))
	}))
	defer server.Close()

	client, _ := New(Config{BaseURL: server.URL, Model: "custom"})
	if client.Model() != "custom" {
		t.Errorf("model = %q", client.Model())
	}

	names, err := client.ListModels(context.Background())
	if err != nil {
		t.Fatalf("ListModels: %v", err)
	}
	if len(names) != 2 || names[1] != "qwen2.5-coder:7b" {
		t.Errorf("names = %v", names)
	}
}
