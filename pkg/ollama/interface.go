package ollama

import "context"

// IOllama defines the interface for the Ollama chat client
type IOllama interface {
	Chat(ctx context.Context, req *ChatRequest) (*ChatResponse, error)
	ListModels(ctx context.Context) ([]string, error)
	Model() string
}
