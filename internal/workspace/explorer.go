package workspace

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// FindFiles matches base names under the root case-insensitively. Patterns with
// glob metacharacters are matched as globs, anything else as a substring.
func (w *Local) FindFiles(ctx context.Context, pattern string) (string, error) {
	match := matcher(pattern)

	var matches []string
	err := filepath.WalkDir(w.root.Dir(), func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			if p != w.root.Dir() && shouldSkipDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if shouldSkipFile(d.Name()) {
			return nil
		}
		if match(strings.ToLower(d.Name())) {
			matches = append(matches, w.root.Rel(p))
		}
		return nil
	})
	if err != nil {
		w.l.Errorf(ctx, "%s: filepath.WalkDir: %v", LogPrefixFind, err)
		return "", fmt.Errorf("%s: %w", LogPrefixFind, err)
	}

	if len(matches) == 0 {
		return fmt.Sprintf(MsgNoMatches, pattern), nil
	}
	sort.Strings(matches)

	var b strings.Builder
	fmt.Fprintf(&b, MsgMatchesHeader, len(matches), pattern)
	for _, m := range matches[:min(len(matches), MaxFindResults)] {
		fmt.Fprintf(&b, MsgMatchLine, m)
	}
	if extra := len(matches) - MaxFindResults; extra > 0 {
		fmt.Fprintf(&b, MsgMoreMatches, extra)
	}
	return b.String(), nil
}

func matcher(pattern string) func(name string) bool {
	p := strings.ToLower(strings.TrimSpace(pattern))
	if strings.ContainsAny(p, "*?[") {
		if _, err := filepath.Match(p, ""); err == nil {
			return func(name string) bool {
				ok, _ := filepath.Match(p, name)
				return ok
			}
		}
	}
	return func(name string) bool {
		return strings.Contains(name, p)
	}
}
