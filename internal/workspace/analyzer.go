package workspace

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ProjectInfo is what a walk over a project directory collects.
type ProjectInfo struct {
	Name          string
	TotalFiles    int
	TotalSize     int64
	Languages     map[string]int
	ConfigFiles   []string
	Documentation []string
	Tests         []string
	Structure     Structure
}

// AnalyzeProject walks path under the workspace root and renders a basic report.
// Missing or escaping paths produce a user-facing message, not an error.
func (w *Local) AnalyzeProject(ctx context.Context, path string) (string, error) {
	if path == "" {
		path = "."
	}

	dir, err := w.root.Resolve(path)
	if err != nil {
		w.l.Warnf(ctx, "%s: %v", LogPrefixAnalyze, err)
		return fmt.Sprintf(MsgOutsideRoot, path), nil
	}

	st, err := os.Stat(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Sprintf(MsgDirNotFound, path), nil
	}
	if err != nil {
		w.l.Errorf(ctx, "%s: os.Stat: %v", LogPrefixAnalyze, err)
		return "", fmt.Errorf("%s: stat %s: %w", LogPrefixAnalyze, path, err)
	}
	if !st.IsDir() {
		return fmt.Sprintf(MsgNotADirectory, path), nil
	}

	info, err := w.gather(ctx, dir)
	if err != nil {
		w.l.Errorf(ctx, "%s: gather: %v", LogPrefixAnalyze, err)
		return "", fmt.Errorf("%s: %w", LogPrefixAnalyze, err)
	}

	w.l.Debugf(ctx, "%s: %s files=%d parsed=%d", LogPrefixAnalyze, info.Name, info.TotalFiles, info.Structure.ParsedFiles)
	return renderAnalysis(info), nil
}

func (w *Local) gather(ctx context.Context, dir string) (ProjectInfo, error) {
	info := ProjectInfo{
		Name:      filepath.Base(dir),
		Languages: make(map[string]int),
	}

	parser := newStructureParser()
	defer parser.Close()

	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			if p != dir && shouldSkipDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if shouldSkipFile(d.Name()) || !d.Type().IsRegular() {
			return nil
		}

		fi, err := d.Info()
		if err != nil {
			return err
		}

		rel, _ := filepath.Rel(dir, p)
		rel = filepath.ToSlash(rel)
		kind := detectType(d.Name())
		lower := strings.ToLower(rel)

		info.TotalFiles++
		info.TotalSize += fi.Size()
		info.Languages[kind]++

		switch {
		case kind == "json" || kind == "yaml" || kind == "toml" || strings.Contains(lower, "config"):
			info.ConfigFiles = append(info.ConfigFiles, rel)
		case kind == "markdown" || strings.Contains(lower, "readme"):
			info.Documentation = append(info.Documentation, rel)
		case strings.Contains(lower, "test"):
			info.Tests = append(info.Tests, rel)
		}

		if !w.structure || fi.Size() > MaxParsedFileBytes {
			return nil
		}
		if _, ok := grammars[kind]; !ok {
			return nil
		}
		content, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		if err := parser.Add(ctx, kind, content, &info.Structure); err != nil {
			w.l.Warnf(ctx, "%s: parse %s: %v", LogPrefixAnalyze, rel, err)
		}
		return nil
	})
	return info, err
}

type languageCount struct {
	name  string
	count int
}

// topLanguages orders by count, then by name.
func topLanguages(langs map[string]int, n int) []languageCount {
	out := make([]languageCount, 0, len(langs))
	for name, count := range langs {
		out = append(out, languageCount{name, count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].count != out[j].count {
			return out[i].count > out[j].count
		}
		return out[i].name < out[j].name
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

func renderAnalysis(info ProjectInfo) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📊 **Análisis básico del proyecto '%s':**\n\n", info.Name)

	b.WriteString("📁 **Estadísticas:**\n")
	fmt.Fprintf(&b, "  • %d archivos\n", info.TotalFiles)
	fmt.Fprintf(&b, "  • %s de tamaño total\n\n", formatSize(info.TotalSize))

	b.WriteString("💻 **Tecnologías:**\n")
	for _, lc := range topLanguages(info.Languages, MaxLanguagesShown) {
		fmt.Fprintf(&b, "  • %s: %d archivos\n", lc.name, lc.count)
	}
	b.WriteString("\n")

	if s := info.Structure; s.ParsedFiles > 0 {
		b.WriteString("🧩 **Estructura:**\n")
		fmt.Fprintf(&b, "  • %d archivos de código analizados\n", s.ParsedFiles)
		fmt.Fprintf(&b, "  • %d funciones\n", s.Functions)
		fmt.Fprintf(&b, "  • %d clases o tipos\n", s.Classes)
		if s.BrokenFiles > 0 {
			fmt.Fprintf(&b, "  • ⚠️ %d archivos con errores de sintaxis\n", s.BrokenFiles)
		}
		b.WriteString("\n")
	}

	b.WriteString("✅ **Evaluación:**\n")
	if n := len(info.Documentation); n > 0 {
		fmt.Fprintf(&b, "  • ✅ Tiene documentación (%d archivos)\n", n)
	} else {
		b.WriteString("  • ⚠️ Falta documentación\n")
	}
	if n := len(info.Tests); n > 0 {
		fmt.Fprintf(&b, "  • ✅ Tiene tests (%d archivos)\n", n)
	} else {
		b.WriteString("  • ⚠️ No se encontraron tests\n")
	}
	if len(info.ConfigFiles) > 0 {
		b.WriteString("  • ✅ Archivos de configuración presentes\n")
	}
	return b.String()
}
