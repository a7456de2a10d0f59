package workspace

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"text/template"
)

// CreateFile writes a templated file at path. The extension decides the template
// when it is known; otherwise fileType does, after mapping artifact kinds.
func (w *Local) CreateFile(ctx context.Context, path, fileType string) (string, error) {
	target, err := w.root.Resolve(path)
	if err != nil {
		w.l.Warnf(ctx, "%s: %v", LogPrefixCreate, err)
		return fmt.Sprintf(MsgOutsideRoot, path), nil
	}

	if _, err := os.Stat(target); err == nil {
		return fmt.Sprintf(MsgFileExists, path), nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		w.l.Errorf(ctx, "%s: os.Stat: %v", LogPrefixCreate, err)
		return "", fmt.Errorf("%s: stat %s: %w", LogPrefixCreate, path, err)
	}

	kind := ResolveFileType(path, fileType)
	content, err := w.render(kind, path)
	if err != nil {
		w.l.Errorf(ctx, "%s: render: %v", LogPrefixCreate, err)
		return "", fmt.Errorf("%s: %w", LogPrefixCreate, err)
	}

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		if errors.Is(err, fs.ErrPermission) {
			return fmt.Sprintf(MsgPermissionDenied, path), nil
		}
		w.l.Errorf(ctx, "%s: os.MkdirAll: %v", LogPrefixCreate, err)
		return "", fmt.Errorf("%s: mkdir: %w", LogPrefixCreate, err)
	}

	f, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if errors.Is(err, fs.ErrExist) {
		return fmt.Sprintf(MsgFileExists, path), nil
	}
	if errors.Is(err, fs.ErrPermission) {
		return fmt.Sprintf(MsgPermissionDenied, path), nil
	}
	if err != nil {
		w.l.Errorf(ctx, "%s: os.OpenFile: %v", LogPrefixCreate, err)
		return "", fmt.Errorf("%s: open: %w", LogPrefixCreate, err)
	}
	_, werr := f.Write(content)
	cerr := f.Close()
	if err := errors.Join(werr, cerr); err != nil {
		w.l.Errorf(ctx, "%s: write: %v", LogPrefixCreate, err)
		return "", fmt.Errorf("%s: write: %w", LogPrefixCreate, err)
	}

	w.l.Infof(ctx, "%s: created %s type=%s", LogPrefixCreate, w.root.Rel(target), kind)
	return fmt.Sprintf(MsgFileCreated, path, formatSize(int64(len(content))), kind), nil
}

// ResolveFileType picks the template kind for path.
func ResolveFileType(path, fileType string) string {
	if kind := detectType(filepath.Base(path)); kind != "unknown" {
		return kind
	}
	t := strings.ToLower(strings.TrimSpace(fileType))
	if mapped, ok := artifactTypes[t]; ok {
		return mapped
	}
	if _, ok := templates[t]; ok {
		return t
	}
	return "text"
}

type templateData struct {
	Name   string
	Date   string
	Year   int
	Author string
}

func (w *Local) render(kind, path string) ([]byte, error) {
	src, ok := templates[kind]
	if !ok {
		return nil, nil
	}
	tmpl, err := template.New(kind).Parse(src)
	if err != nil {
		return nil, err
	}

	base := filepath.Base(path)
	now := w.now()
	data := templateData{
		Name:   strings.TrimSuffix(base, filepath.Ext(base)),
		Date:   now.Format("2006-01-02"),
		Year:   now.Year(),
		Author: w.author,
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
