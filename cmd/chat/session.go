package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"intent-pipeline/internal/metrics"
	"intent-pipeline/internal/pipeline"
)

const (
	cmdExit    = "/salir"
	cmdStatus  = "/estado"
	cmdSave    = "/guardar"
	cmdMetrics = "/metricas"

	msgGoodbye   = "👋 ¡Hasta luego!"
	msgSaved     = "💾 Sesión guardada en %s"
	msgNoState   = "⚠️ No hay archivo de estado configurado (usa --state)"
	msgRestored  = "📂 Sesión %s restaurada (%d turnos)"
	msgUnknown   = "❓ Comando desconocido: %s"
	msgTurnMeta  = "[%s · %.2f · %s · %.2fs]"
	msgRefineTip = "💡 Prueba también: %s"
)

type statsSource interface {
	Snapshot() metrics.Stats
}

// chatSession drives one pipeline from a line-oriented terminal.
type chatSession struct {
	p     *pipeline.Pipeline
	stats statsSource
	out   io.Writer
	r     renderer
	state string
}

func newChatSession(p *pipeline.Pipeline, stats statsSource, out io.Writer, r renderer, state string) *chatSession {
	return &chatSession{p: p, stats: stats, out: out, r: r, state: state}
}

// restore loads the state file when one is set and present.
// A missing file keeps the current session id.
func (s *chatSession) restore(ctx context.Context) {
	if s.state == "" {
		return
	}
	if _, err := os.Stat(s.state); err != nil {
		return
	}
	if s.p.Load(ctx, s.state) {
		fmt.Fprintln(s.out, s.r.Meta(fmt.Sprintf(msgRestored, s.p.SessionID(), len(s.p.History()))))
	}
}

// finish saves the session when a state file is set.
func (s *chatSession) finish(ctx context.Context) {
	if s.state == "" {
		return
	}
	if err := s.p.Save(ctx, s.state); err != nil {
		fmt.Fprintln(s.out, s.r.Error(err.Error()))
	}
}

// loop reads utterances until EOF, /salir or ctx cancellation.
func (s *chatSession) loop(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(s.out, s.r.Prompt())
		if !scanner.Scan() {
			fmt.Fprintln(s.out)
			return scanner.Err()
		}
		if ctx.Err() != nil {
			return nil
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "/") {
			if !s.command(ctx, line) {
				return nil
			}
			continue
		}
		s.turn(ctx, line)
	}
}

// command runs a slash command. It returns false when the session should end.
func (s *chatSession) command(ctx context.Context, line string) bool {
	switch strings.Fields(line)[0] {
	case cmdExit:
		fmt.Fprintln(s.out, msgGoodbye)
		return false
	case cmdStatus:
		s.printJSON(s.p.Snapshot())
	case cmdSave:
		if s.state == "" {
			fmt.Fprintln(s.out, s.r.Error(msgNoState))
			break
		}
		if err := s.p.Save(ctx, s.state); err != nil {
			fmt.Fprintln(s.out, s.r.Error(err.Error()))
			break
		}
		fmt.Fprintf(s.out, msgSaved+"\n", s.state)
	case cmdMetrics:
		s.printJSON(s.stats.Snapshot())
	default:
		fmt.Fprintln(s.out, s.r.Error(fmt.Sprintf(msgUnknown, line)))
	}
	return true
}

func (s *chatSession) turn(ctx context.Context, text string) {
	out := s.p.Handle(ctx, text)
	fmt.Fprint(s.out, s.r.Render(out.Presentation))
	fmt.Fprintln(s.out, s.r.Meta(fmt.Sprintf(msgTurnMeta,
		out.Intent, out.Confidence, out.HandledBy, out.ExecutionTime.Seconds())))
	if len(out.Refinements) > 0 {
		fmt.Fprintln(s.out, s.r.Meta(fmt.Sprintf(msgRefineTip, strings.Join(out.Refinements, " | "))))
	}
}

func (s *chatSession) printJSON(v any) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintln(s.out, s.r.Error(err.Error()))
		return
	}
	fmt.Fprintln(s.out, string(b))
}

func joinArgs(args []string) string {
	return strings.Join(args, " ")
}
