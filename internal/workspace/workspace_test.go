package workspace

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	pkgLog "intent-pipeline/pkg/log"
)

func newTestWorkspace(t *testing.T, opts ...Option) (*Local, string) {
	t.Helper()
	dir := t.TempDir()
	w, err := New(pkgLog.NewNop(), dir, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return w, dir
}

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		p := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestNew_EmptyRoot(t *testing.T) {
	if _, err := New(pkgLog.NewNop(), "  "); err != ErrEmptyRoot {
		t.Errorf("err = %v, want ErrEmptyRoot", err)
	}
}

func TestRoot_Resolve(t *testing.T) {
	root, err := NewRoot(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		in      string
		wantErr bool
	}{
		{name: "Dot", in: "."},
		{name: "Nested", in: "src/main.py"},
		{name: "Cleaned inside", in: "src/../main.py"},
		{name: "Parent", in: "..", wantErr: true},
		{name: "Escape", in: "../etc/passwd", wantErr: true},
		{name: "Absolute outside", in: "/etc/passwd", wantErr: true},
		{name: "Absolute inside", in: filepath.Join(root.Dir(), "a.txt")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := root.Resolve(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Errorf("Resolve(%q) = %q, want error", tt.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Resolve(%q): %v", tt.in, err)
			}
			if !strings.HasPrefix(got, root.Dir()) {
				t.Errorf("Resolve(%q) = %q, outside %q", tt.in, got, root.Dir())
			}
		})
	}
}

func TestFormatSize(t *testing.T) {
	tests := map[int64]string{
		0:               "0B",
		1023:            "1023B",
		1024:            "1.0KB",
		1536:            "1.5KB",
		1024 * 1024 * 3: "3.0MB",
	}
	for in, want := range tests {
		if got := formatSize(in); got != want {
			t.Errorf("formatSize(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestAnalyzeProject(t *testing.T) {
	w, dir := newTestWorkspace(t)
	writeFiles(t, dir, map[string]string{
		"README.md":            "# demo\n",
		"main.py":              "def a():\n    pass\n\n\nclass B:\n    def m(self):\n        pass\n",
		"test_main.py":         "def test_a():\n    pass\n",
		"config.json":          "{}\n",
		".hidden/secret.py":    "def hidden():\n    pass\n",
		"node_modules/dep.js":  "function dep() {}\n",
		"__pycache__/main.pyc": "x",
	})

	out, err := w.AnalyzeProject(context.Background(), ".")
	if err != nil {
		t.Fatalf("AnalyzeProject: %v", err)
	}

	want := []string{
		fmt.Sprintf("📊 **Análisis básico del proyecto '%s':**\n\n", filepath.Base(dir)),
		"  • 4 archivos\n",
		"💻 **Tecnologías:**\n  • python: 2 archivos\n  • json: 1 archivos\n  • markdown: 1 archivos\n\n",
		"  • 2 archivos de código analizados\n",
		"  • 3 funciones\n",
		"  • 1 clases o tipos\n",
		"  • ✅ Tiene documentación (1 archivos)\n",
		"  • ✅ Tiene tests (1 archivos)\n",
		"  • ✅ Archivos de configuración presentes\n",
	}
	for _, s := range want {
		if !strings.Contains(out, s) {
			t.Errorf("output missing %q:\n%s", s, out)
		}
	}
	if strings.Contains(out, "errores de sintaxis") {
		t.Errorf("unexpected syntax warning:\n%s", out)
	}
}

func TestAnalyzeProject_GoAndJavaScript(t *testing.T) {
	w, dir := newTestWorkspace(t)
	writeFiles(t, dir, map[string]string{
		"svc/main.go": "package main\n\ntype T struct{}\n\nfunc (T) M() {}\n\nfunc main() {}\n",
		"web/app.js":  "class App {\n  run() {}\n}\nfunction boot() {}\n",
	})

	out, err := w.AnalyzeProject(context.Background(), ".")
	if err != nil {
		t.Fatalf("AnalyzeProject: %v", err)
	}
	for _, s := range []string{"  • 4 funciones\n", "  • 2 clases o tipos\n", "  • ⚠️ Falta documentación\n", "  • ⚠️ No se encontraron tests\n"} {
		if !strings.Contains(out, s) {
			t.Errorf("output missing %q:\n%s", s, out)
		}
	}
	if strings.Contains(out, "configuración presentes") {
		t.Errorf("unexpected config line:\n%s", out)
	}
}

func TestAnalyzeProject_SyntaxErrors(t *testing.T) {
	w, dir := newTestWorkspace(t)
	writeFiles(t, dir, map[string]string{
		"broken.py": "def (:\n  return\n",
	})

	out, err := w.AnalyzeProject(context.Background(), ".")
	if err != nil {
		t.Fatalf("AnalyzeProject: %v", err)
	}
	if !strings.Contains(out, "⚠️ 1 archivos con errores de sintaxis") {
		t.Errorf("missing syntax warning:\n%s", out)
	}
}

func TestAnalyzeProject_WithoutStructure(t *testing.T) {
	w, dir := newTestWorkspace(t, WithStructure(false))
	writeFiles(t, dir, map[string]string{"main.py": "def a():\n    pass\n"})

	out, err := w.AnalyzeProject(context.Background(), "")
	if err != nil {
		t.Fatalf("AnalyzeProject: %v", err)
	}
	if strings.Contains(out, "Estructura") {
		t.Errorf("structure section rendered:\n%s", out)
	}
}

func TestAnalyzeProject_Messages(t *testing.T) {
	w, dir := newTestWorkspace(t)
	writeFiles(t, dir, map[string]string{"file.txt": "x"})

	tests := []struct {
		name string
		path string
		want string
	}{
		{name: "Missing", path: "nope", want: "❌ El directorio 'nope' no existe"},
		{name: "Outside", path: "../..", want: "❌ La ruta '../..' está fuera del espacio de trabajo"},
		{name: "File", path: "file.txt", want: "❌ 'file.txt' no es un directorio"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := w.AnalyzeProject(context.Background(), tt.path)
			if err != nil {
				t.Fatalf("AnalyzeProject: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAnalyzeProject_Cancelled(t *testing.T) {
	w, dir := newTestWorkspace(t)
	writeFiles(t, dir, map[string]string{"a.py": "x = 1\n"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := w.AnalyzeProject(ctx, "."); err == nil {
		t.Error("expected error on cancelled context")
	}
}

func TestTopLanguages(t *testing.T) {
	got := topLanguages(map[string]int{"go": 2, "python": 2, "json": 5, "css": 1, "sql": 1, "bash": 1}, 5)
	want := []languageCount{{"json", 5}, {"go", 2}, {"python", 2}, {"bash", 1}, {"css", 1}}
	if diff := cmp.Diff(want, got, cmp.AllowUnexported(languageCount{})); diff != "" {
		t.Errorf("topLanguages mismatch (-want +got):\n%s", diff)
	}
}

func TestFindFiles(t *testing.T) {
	w, dir := newTestWorkspace(t)
	writeFiles(t, dir, map[string]string{
		"main.py":          "",
		"src/Main_test.py": "",
		"src/util.go":      "",
		".git/main.py":     "",
		".env.main":        "",
	})

	tests := []struct {
		name    string
		pattern string
		want    string
	}{
		{
			name:    "Substring case insensitive",
			pattern: "MAIN",
			want:    "🔍 Encontrados 2 archivos que coinciden con 'MAIN':\n  📄 main.py\n  📄 src/Main_test.py\n",
		},
		{
			name:    "Glob",
			pattern: "*.go",
			want:    "🔍 Encontrados 1 archivos que coinciden con '*.go':\n  📄 src/util.go\n",
		},
		{
			name:    "No match",
			pattern: "zzz",
			want:    "🔍 No se encontraron archivos que coincidan con 'zzz'",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := w.FindFiles(context.Background(), tt.pattern)
			if err != nil {
				t.Fatalf("FindFiles: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFindFiles_Truncates(t *testing.T) {
	w, dir := newTestWorkspace(t)
	files := make(map[string]string)
	for i := 0; i < 25; i++ {
		files[fmt.Sprintf("f%02d.txt", i)] = ""
	}
	writeFiles(t, dir, files)

	got, err := w.FindFiles(context.Background(), "*")
	if err != nil {
		t.Fatalf("FindFiles: %v", err)
	}
	if !strings.HasPrefix(got, "🔍 Encontrados 25 archivos que coinciden con '*':\n") {
		t.Errorf("header: %q", got)
	}
	if n := strings.Count(got, "📄"); n != MaxFindResults {
		t.Errorf("listed %d, want %d", n, MaxFindResults)
	}
	if !strings.HasSuffix(got, "  ... y 5 archivos más\n") {
		t.Errorf("missing overflow line: %q", got)
	}
	if strings.Contains(got, "f20.txt") {
		t.Error("listed a file past the limit")
	}
}

func TestCreateFile(t *testing.T) {
	fixed := time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC)
	w, dir := newTestWorkspace(t, WithAuthor("Tester"), WithClock(func() time.Time { return fixed }))

	got, err := w.CreateFile(context.Background(), "src/app.py", "api")
	if err != nil {
		t.Fatalf("CreateFile: %v", err)
	}

	content, err := os.ReadFile(filepath.Join(dir, "src", "app.py"))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	want := fmt.Sprintf("✅ Archivo creado: src/app.py (%s)\n📝 Tipo: python\n🔧 Template aplicado automáticamente", formatSize(int64(len(content))))
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	for _, s := range []string{"app.py\n", "Autor: Tester", "Fecha: 2026-01-02", "def main():"} {
		if !strings.Contains(string(content), s) {
			t.Errorf("content missing %q:\n%s", s, content)
		}
	}

	t.Run("Exists", func(t *testing.T) {
		got, err := w.CreateFile(context.Background(), "src/app.py", "python")
		if err != nil {
			t.Fatalf("CreateFile: %v", err)
		}
		if got != "❌ El archivo 'src/app.py' ya existe. Usa /edit para modificarlo." {
			t.Errorf("got %q", got)
		}
	})

	t.Run("Outside", func(t *testing.T) {
		got, err := w.CreateFile(context.Background(), "../evil.py", "python")
		if err != nil {
			t.Fatalf("CreateFile: %v", err)
		}
		if !strings.HasPrefix(got, "❌ La ruta '../evil.py'") {
			t.Errorf("got %q", got)
		}
	})

	t.Run("Plain text is empty", func(t *testing.T) {
		got, err := w.CreateFile(context.Background(), "notes", "")
		if err != nil {
			t.Fatalf("CreateFile: %v", err)
		}
		if !strings.Contains(got, "(0B)\n📝 Tipo: text") {
			t.Errorf("got %q", got)
		}
	})
}

func TestResolveFileType(t *testing.T) {
	tests := []struct {
		path, fileType, want string
	}{
		{"main.go", "python", "go"},
		{"index.HTML", "", "html"},
		{".gitignore", "", "gitignore"},
		{"service", "api", "python"},
		{"service", "Class", "python"},
		{"readme", "markdown", "markdown"},
		{"Dockerfile", "dockerfile", "dockerfile"},
		{"thing", "weird", "text"},
	}
	for _, tt := range tests {
		if got := ResolveFileType(tt.path, tt.fileType); got != tt.want {
			t.Errorf("ResolveFileType(%q, %q) = %q, want %q", tt.path, tt.fileType, got, tt.want)
		}
	}
}
