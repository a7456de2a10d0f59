package workspace

import "context"

// Workspace bundles the file-system capabilities the router looks up by name.
type Workspace interface {
	AnalyzeProject(ctx context.Context, path string) (string, error)
	FindFiles(ctx context.Context, pattern string) (string, error)
	CreateFile(ctx context.Context, path, fileType string) (string, error)
}
