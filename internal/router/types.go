package router

import (
	"context"
	"time"

	"intent-pipeline/internal/conversation"
)

// HandledBy names the execution path that produced a result.
type HandledBy string

const (
	HandledByDirect HandledBy = "direct"
	HandledByTools  HandledBy = "tools"
	HandledByLLM    HandledBy = "llm"
	HandledByError  HandledBy = "error"
)

// TaskType is the coarse category used for model selection.
type TaskType string

const (
	TaskTypeComplex TaskType = "complex"
	TaskTypeCoding  TaskType = "coding"
	TaskTypeGeneral TaskType = "general"
)

// Message roles
const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// Message is one chat message sent to the generative service.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Result is the outcome of one routed turn.
type Result struct {
	Response      string            `json:"response"`
	HandledBy     HandledBy         `json:"handled_by"`
	ExecutionTime time.Duration     `json:"-"`
	Success       bool              `json:"success"`
	Turn          conversation.Turn `json:"-"`
}

// Completer is the generative text service. It reports ok=false instead of erroring.
type Completer interface {
	Complete(ctx context.Context, messages []Message, taskType TaskType) (string, bool)
}

// ProjectAnalyzer is the capability required from code_analyzer.
type ProjectAnalyzer interface {
	AnalyzeProject(ctx context.Context, path string) (string, error)
}

// FileFinder is the capability required from workspace_explorer.
type FileFinder interface {
	FindFiles(ctx context.Context, pattern string) (string, error)
}

// FileCreator is the capability required from file_manager.
type FileCreator interface {
	CreateFile(ctx context.Context, path, fileType string) (string, error)
}

// Config holds the tunable parts of the router.
type Config struct {
	LLMTimeout     time.Duration
	AssistantName  string
	AnalyzePath    string
	FindPattern    string
	CreatePath     string
	CreateFileType string
}

// directHandler answers an intent without tools or the generative service.
type directHandler func() string
