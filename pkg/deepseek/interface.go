package deepseek

import "context"

// IDeepSeek defines the interface for an OpenAI-compatible chat completions client
type IDeepSeek interface {
	GenerateContent(ctx context.Context, req *Request) (*Response, error)
	Model() string
}
