package llmprovider

import (
	"context"
	"fmt"

	"intent-pipeline/pkg/deepseek"
	"intent-pipeline/pkg/ollama"
)

// OllamaAdapter adapts pkg/ollama to llmprovider.Provider interface
type OllamaAdapter struct {
	client ollama.IOllama
	models TaskModels
}

// NewOllamaAdapter creates a new Ollama adapter. models may be nil.
func NewOllamaAdapter(client ollama.IOllama, models TaskModels) *OllamaAdapter {
	return &OllamaAdapter{client: client, models: models}
}

// GenerateContent implements Provider interface
func (a *OllamaAdapter) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	ollamaReq := &ollama.ChatRequest{
		Model: a.models.resolve(req.TaskType),
	}
	if req.SystemInstruction != nil {
		ollamaReq.Messages = append(ollamaReq.Messages, ollama.Message{Role: "system", Content: req.SystemInstruction.Text()})
	}
	for _, msg := range req.Messages {
		ollamaReq.Messages = append(ollamaReq.Messages, ollama.Message{Role: msg.Role, Content: msg.Text()})
	}
	if req.Temperature > 0 || req.MaxTokens > 0 {
		ollamaReq.Options = &ollama.Options{Temperature: req.Temperature, NumPredict: req.MaxTokens}
	}

	resp, err := a.client.Chat(ctx, ollamaReq)
	if err != nil {
		return nil, fmt.Errorf("ollama: %w", err)
	}

	model := resp.Model
	if model == "" {
		model = ollamaReq.Model
	}
	return &Response{
		Content:      TextMessage("assistant", resp.Message.Content),
		ProviderName: a.Name(),
		ModelName:    model,
		Usage: &Usage{
			InputTokens:  resp.PromptEvalCount,
			OutputTokens: resp.EvalCount,
			TotalTokens:  resp.PromptEvalCount + resp.EvalCount,
		},
	}, nil
}

// Name returns provider name
func (a *OllamaAdapter) Name() string {
	return "ollama"
}

// Model returns model name
func (a *OllamaAdapter) Model() string {
	return a.client.Model()
}

// Ping checks the server by listing installed models.
func (a *OllamaAdapter) Ping(ctx context.Context) error {
	if _, err := a.client.ListModels(ctx); err != nil {
		return fmt.Errorf("ollama: %w", err)
	}
	return nil
}

// DeepSeekAdapter adapts pkg/deepseek to llmprovider.Provider interface.
// It also serves other OpenAI-compatible endpoints under a different name.
type DeepSeekAdapter struct {
	client deepseek.IDeepSeek
	name   string
	models TaskModels
}

// NewDeepSeekAdapter creates a new DeepSeek adapter. models may be nil.
func NewDeepSeekAdapter(client deepseek.IDeepSeek, name string, models TaskModels) *DeepSeekAdapter {
	if name == "" {
		name = "deepseek"
	}
	return &DeepSeekAdapter{client: client, name: name, models: models}
}

// GenerateContent implements Provider interface
func (a *DeepSeekAdapter) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	deepseekReq := &deepseek.Request{
		Model:       a.models.resolve(req.TaskType),
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}

	// System instruction goes first
	if req.SystemInstruction != nil {
		deepseekReq.Messages = append(deepseekReq.Messages, deepseek.Message{Role: "system", Content: req.SystemInstruction.Text()})
	}
	for _, msg := range req.Messages {
		deepseekReq.Messages = append(deepseekReq.Messages, deepseek.Message{Role: msg.Role, Content: msg.Text()})
	}

	resp, err := a.client.GenerateContent(ctx, deepseekReq)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", a.name, err)
	}

	return &Response{
		Content:      TextMessage("assistant", resp.Choices[0].Message.Content),
		ProviderName: a.name,
		ModelName:    resp.Model,
		Usage: &Usage{
			InputTokens:  resp.Usage.PromptTokens,
			OutputTokens: resp.Usage.CompletionTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		},
	}, nil
}

// Name returns the provider name
func (a *DeepSeekAdapter) Name() string {
	return a.name
}

// Model returns the model name
func (a *DeepSeekAdapter) Model() string {
	return a.client.Model()
}
