package ollama

import "time"

const (
	// DefaultBaseURL is the local Ollama daemon
	DefaultBaseURL = "http://localhost:11434"

	// DefaultModel is the default model to use
	DefaultModel = "llama3.2:3b"

	DefaultTimeout = 120 * time.Second
)
