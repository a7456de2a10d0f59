package main

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

const wordWrap = 100

var (
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	metaStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// renderer turns a markdown reply into terminal output.
type renderer interface {
	Render(markdown string) string
	Prompt() string
	Meta(line string) string
	Error(line string) string
}

type plainRenderer struct{}

func (plainRenderer) Render(md string) string  { return strings.TrimRight(md, "\n") + "\n" }
func (plainRenderer) Prompt() string           { return "> " }
func (plainRenderer) Meta(line string) string  { return line }
func (plainRenderer) Error(line string) string { return line }

type termRenderer struct {
	md *glamour.TermRenderer
}

// newRenderer falls back to plain output when glamour cannot build a style.
func newRenderer(plain bool) renderer {
	if plain {
		return plainRenderer{}
	}
	md, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wordWrap),
	)
	if err != nil {
		return plainRenderer{}
	}
	return termRenderer{md: md}
}

func (r termRenderer) Render(md string) string {
	out, err := r.md.Render(md)
	if err != nil {
		return plainRenderer{}.Render(md)
	}
	return out
}

func (termRenderer) Prompt() string           { return promptStyle.Render("> ") }
func (termRenderer) Meta(line string) string  { return metaStyle.Render(line) }
func (termRenderer) Error(line string) string { return errorStyle.Render(line) }
