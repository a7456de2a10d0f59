package llmprovider

import (
	"context"
	"strings"
)

// Provider defines the interface for LLM providers
type Provider interface {
	// GenerateContent sends a generation request and returns a response
	GenerateContent(ctx context.Context, req *Request) (*Response, error)

	// Name returns the provider name (e.g., "ollama", "deepseek")
	Name() string

	// Model returns the default model being used
	Model() string
}

// Request represents a normalized LLM generation request
type Request struct {
	SystemInstruction *Message
	Messages          []Message
	// TaskType lets each provider pick its own model for the call
	TaskType    string
	Temperature float64
	MaxTokens   int
}

// Message represents a conversation message
type Message struct {
	Role  string // "user", "assistant", "system"
	Parts []Part
}

// Part represents a text fragment of a message
type Part struct {
	Text string
}

// Text joins the text parts of m.
func (m Message) Text() string {
	if len(m.Parts) == 1 {
		return m.Parts[0].Text
	}
	texts := make([]string, 0, len(m.Parts))
	for _, p := range m.Parts {
		texts = append(texts, p.Text)
	}
	return strings.Join(texts, "")
}

// Response represents a normalized LLM generation response
type Response struct {
	Content      Message
	ProviderName string
	ModelName    string
	Usage        *Usage
}

// Usage tracks token consumption
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// Pinger is implemented by providers that can check reachability without generating.
type Pinger interface {
	Ping(ctx context.Context) error
}

// TaskModels maps a task type to a model name of one provider.
type TaskModels map[string]string

// resolve returns the model for taskType, empty for the provider default.
func (m TaskModels) resolve(taskType string) string {
	if m == nil {
		return ""
	}
	return m[taskType]
}

// TextMessage builds a single-part message.
func TextMessage(role, text string) Message {
	return Message{Role: role, Parts: []Part{{Text: text}}}
}
