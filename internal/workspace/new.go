package workspace

import (
	"time"

	pkgLog "intent-pipeline/pkg/log"
)

const defaultAuthor = "DevAsistente"

type Option func(*Local)

// WithAuthor sets the author written into file templates.
func WithAuthor(name string) Option {
	return func(w *Local) {
		if name != "" {
			w.author = name
		}
	}
}

// WithClock overrides the clock used for template dates.
func WithClock(now func() time.Time) Option {
	return func(w *Local) {
		if now != nil {
			w.now = now
		}
	}
}

// WithStructure toggles syntax-tree parsing during project analysis.
func WithStructure(enabled bool) Option {
	return func(w *Local) {
		w.structure = enabled
	}
}

// Local is a Workspace over a directory on the local disk.
type Local struct {
	l         pkgLog.Logger
	root      Root
	author    string
	now       func() time.Time
	structure bool
}

var _ Workspace = (*Local)(nil)

// New returns a Local rooted at dir.
func New(l pkgLog.Logger, dir string, opts ...Option) (*Local, error) {
	root, err := NewRoot(dir)
	if err != nil {
		return nil, err
	}
	w := &Local{
		l:         l,
		root:      root,
		author:    defaultAuthor,
		now:       time.Now,
		structure: true,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

func (w *Local) Root() Root {
	return w.root
}
