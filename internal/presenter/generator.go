package presenter

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"intent-pipeline/internal/conversation"
	"intent-pipeline/internal/intent"
	"intent-pipeline/internal/router"
)

// Present formats raw, attaches suggestions and rates the overall confidence.
func (g *Generator) Present(raw string, parsed intent.ParsedIntent, routing router.Result, snap *conversation.Snapshot) Output {
	start := g.now()

	category := CategoryFor(routing)
	formatted := formatResponse(raw, parsed, category)
	sugg := suggest(parsed, snap)
	level := ConfidenceLevelFor(parsed.Confidence, routing.Success, routing.ExecutionTime.Seconds())

	meta := Metadata{
		SuggestedActions:     sugg.Actions,
		ConfidenceLevel:      level,
		FollowUpQuestions:    sugg.FollowUp,
		ProactiveSuggestions: sugg.Proactive,
	}
	meta.GenerationTime = g.now().Sub(start).Seconds()

	return Output{
		Category:          category,
		FormattedResponse: formatted,
		Metadata:          meta,
		RawResponse:       raw,
		Suggestions:       sugg,
		Presentation:      presentation(formatted, meta),
	}
}

// ErrorResponse builds a low-confidence output that always carries suggestions.
func (g *Generator) ErrorResponse(message string, parsed *intent.ParsedIntent, suggestions []string) Output {
	if len(suggestions) == 0 {
		suggestions = defaultErrorSuggestions
	}
	suggestions = append([]string{}, suggestions...)

	var b strings.Builder
	fmt.Fprintf(&b, ErrorFormat, message)
	b.WriteString(ErrorSuggestions)
	for _, s := range suggestions {
		b.WriteString("\n" + Bullet + s)
	}
	formatted := b.String()

	return Output{
		Category:          CategoryError,
		FormattedResponse: formatted,
		Metadata: Metadata{
			SuggestedActions:     suggestions,
			ConfidenceLevel:      ConfidenceLow,
			FollowUpQuestions:    []string{},
			ProactiveSuggestions: []string{},
		},
		RawResponse: message,
		Suggestions: Suggestions{
			Actions:   suggestions,
			FollowUp:  []string{},
			Proactive: []string{},
		},
		Presentation: formatted,
	}
}

// EnhanceLLMResponse normalizes bullets, bolds short label lines and notes the
// ongoing task when the reply is about something else.
func (g *Generator) EnhanceLLMResponse(text string, parsed intent.ParsedIntent, snap *conversation.Snapshot) string {
	if text == "" {
		return text
	}

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		s := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(s, "-") || strings.HasPrefix(s, "*"):
			lines[i] = Bullet + strings.TrimSpace(s[1:])
		case utf8.RuneCountInString(s) < TitleMaxRunes && strings.Contains(s, ":") && !strings.HasSuffix(s, "."):
			lines[i] = "**" + s + "**"
		}
	}
	out := strings.Join(lines, "\n")

	if snap != nil && snap.CurrentTask != "" && snap.CurrentTask != parsed.Intent {
		out += fmt.Sprintf(ContinuationFooter, snap.CurrentTask)
	}
	return out
}

// CategoryFor classifies a routing result.
func CategoryFor(r router.Result) Category {
	if !r.Success {
		return CategoryError
	}
	switch r.HandledBy {
	case router.HandledByDirect:
		return CategoryDirect
	case router.HandledByTools:
		return CategoryTools
	case router.HandledByLLM:
		return CategoryLLM
	default:
		return CategoryError
	}
}

// ErrorKindFor sub-classifies a failed response by its text.
func ErrorKindFor(raw string) ErrorKind {
	lower := strings.ToLower(raw)
	switch {
	case strings.Contains(lower, MarkerParsingError):
		return ErrorParsing
	case strings.Contains(lower, MarkerToolError):
		return ErrorTool
	default:
		return ErrorExecution
	}
}

// ConfidenceLevelFor weighs classifier confidence, success and speed.
// The time term only applies when executionSeconds > 0.
func ConfidenceLevelFor(confidence float64, success bool, executionSeconds float64) ConfidenceLevel {
	score := confidence * WeightParse
	if success {
		score += WeightSuccess
	}
	if executionSeconds > 0 {
		score += math.Max(0, 1-executionSeconds/SlowExecutionSecond) * WeightTime
	}

	switch {
	case score >= LevelHighScore:
		return ConfidenceHigh
	case score >= LevelMediumMark:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

func formatResponse(raw string, parsed intent.ParsedIntent, category Category) string {
	var prefix string
	switch category {
	case CategoryDirect:
		prefix = fmt.Sprintf(TemplateDirect, parsed.Intent.Title())
	case CategoryTools:
		prefix = TemplateTools
	case CategoryLLM:
		prefix = TemplateLLM
	default:
		switch ErrorKindFor(raw) {
		case ErrorParsing:
			prefix = TemplateParsing
		case ErrorTool:
			prefix = TemplateTool
		default:
			prefix = TemplateExecution
		}
	}
	return prefix + "\n\n" + raw
}

func presentation(formatted string, meta Metadata) string {
	parts := []string{formatted}
	if len(meta.FollowUpQuestions) > 0 {
		parts = append(parts, BlockFollowUp)
		for _, q := range meta.FollowUpQuestions {
			parts = append(parts, Bullet+q)
		}
	}
	if len(meta.SuggestedActions) > 0 {
		parts = append(parts, BlockSuggestions)
		for _, a := range meta.SuggestedActions {
			parts = append(parts, Bullet+a)
		}
	}
	if meta.ConfidenceLevel == ConfidenceLow {
		parts = append(parts, BlockLowConfidence)
	}
	return strings.Join(parts, "\n")
}
