package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Root is a directory all tool paths are resolved inside.
type Root struct {
	dir string
}

// NewRoot returns a Root for dir, made absolute.
func NewRoot(dir string) (Root, error) {
	if strings.TrimSpace(dir) == "" {
		return Root{}, ErrEmptyRoot
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return Root{}, fmt.Errorf("resolve workspace root: %w", err)
	}
	return Root{dir: abs}, nil
}

func (r Root) Dir() string {
	return r.dir
}

// Resolve joins rel onto the root and refuses anything that lands outside it.
func (r Root) Resolve(rel string) (string, error) {
	p := rel
	if !filepath.IsAbs(p) {
		p = filepath.Join(r.dir, rel)
	}
	p = filepath.Clean(p)

	out, err := filepath.Rel(r.dir, p)
	if err != nil || out == ".." || strings.HasPrefix(out, ".."+string(os.PathSeparator)) {
		return "", fmt.Errorf("%w: %s", ErrOutsideRoot, rel)
	}
	return p, nil
}

// Rel returns p relative to the root with forward slashes.
func (r Root) Rel(p string) string {
	out, err := filepath.Rel(r.dir, p)
	if err != nil {
		return p
	}
	return filepath.ToSlash(out)
}

func shouldSkipDir(name string) bool {
	return ignoredDirs[name] || (strings.HasPrefix(name, ".") && name != "." && name != "..")
}

func shouldSkipFile(name string) bool {
	return strings.HasPrefix(name, ".")
}

// detectType maps a file name to a coarse type, "unknown" when unmapped.
func detectType(name string) string {
	if t, ok := extensionTypes[strings.ToLower(filepath.Ext(name))]; ok {
		return t
	}
	return "unknown"
}

func formatSize(size int64) string {
	switch {
	case size < 1024:
		return fmt.Sprintf("%dB", size)
	case size < 1024*1024:
		return fmt.Sprintf("%.1fKB", float64(size)/1024)
	default:
		return fmt.Sprintf("%.1fMB", float64(size)/(1024*1024))
	}
}
