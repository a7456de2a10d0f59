package intent

import (
	"math"
	"strings"
)

// Classify scores text against every pattern group and returns the best match.
func (c *PatternClassifier) Classify(text string) ParsedIntent {
	normalized := strings.ToLower(strings.TrimSpace(text))
	if normalized == "" {
		return ParsedIntent{
			Intent:       IntentUnknown,
			Confidence:   0,
			Details:      map[string]string{},
			OriginalText: text,
		}
	}

	best := IntentUnknown
	bestScore := 0.0
	for _, g := range c.groups {
		// strict > keeps the first registered group on ties
		if score := g.score(normalized); score > bestScore {
			bestScore = score
			best = g.intent
		}
	}

	return ParsedIntent{
		Intent:       best,
		Confidence:   bestScore,
		Target:       extractTarget(normalized),
		Details:      extractDetails(normalized, best),
		OriginalText: text,
	}
}

// IsConfident reports whether p clears the configured threshold.
func (c *PatternClassifier) IsConfident(p ParsedIntent) bool {
	return p.Confidence >= c.threshold
}

// Suggestions returns refinement hints for text the classifier is unsure about.
// Lexical hints come first, then the static ones, capped at MaxSuggestions.
func (c *PatternClassifier) Suggestions(text string) []string {
	if c.IsConfident(c.Classify(text)) {
		return []string{}
	}

	lower := strings.ToLower(text)
	hints := make([]string, 0, MaxSuggestions+2)
	if strings.Contains(lower, "archivo") {
		hints = append(hints, HintFileLocation)
	}
	if containsAny(lower, failureWords) {
		hints = append(hints, HintExamplePhrase)
	}
	hints = append(hints, staticHints...)

	if len(hints) > MaxSuggestions {
		hints = hints[:MaxSuggestions]
	}
	return hints
}

func (g patternGroup) score(text string) float64 {
	score := 0.0
	for _, re := range g.patterns {
		if re.MatchString(text) {
			score += g.confidence * PatternWeight
			break
		}
	}

	if len(g.keywords) > 0 {
		matched := 0
		for _, kw := range g.keywords {
			if strings.Contains(text, kw) {
				matched++
			}
		}
		score += KeywordWeight * float64(matched) / float64(len(g.keywords))
	}

	return math.Min(score, 1.0)
}

func extractTarget(text string) string {
	for _, re := range targetPatterns {
		if m := re.FindStringSubmatch(text); len(m) > 1 {
			return m[1]
		}
	}
	return ""
}

func extractDetails(text string, i Intent) map[string]string {
	details := map[string]string{}
	switch i {
	case IntentAnalyze:
		details[DetailFocus] = "general"
		if v := firstRule(text, analyzeFocus); v != "" {
			details[DetailFocus] = v
		}
	case IntentCreate:
		if v := firstRule(text, createType); v != "" {
			details[DetailType] = v
		}
	case IntentOptimize:
		if v := firstRule(text, optimizeAxis); v != "" {
			details[DetailTarget] = v
		}
	}
	return details
}

func firstRule(text string, rules []detailRule) string {
	for _, r := range rules {
		if containsAny(text, r.keywords) {
			return r.value
		}
	}
	return ""
}

func containsAny(text string, words []string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}
