package presenter

import "time"

// Generator is the default Presenter.
type Generator struct {
	now func() time.Time
}

var _ Presenter = (*Generator)(nil)

// Option configures a Generator.
type Option func(*Generator)

func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		if now != nil {
			g.now = now
		}
	}
}

func New(opts ...Option) *Generator {
	g := &Generator{now: time.Now}
	for _, opt := range opts {
		opt(g)
	}
	return g
}
