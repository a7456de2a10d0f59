package intent

import (
	"regexp"
	"strings"
)

// Intent is the closed set of actions a user can ask for.
type Intent string

const (
	IntentAnalyze  Intent = "analyze"
	IntentCreate   Intent = "create"
	IntentModify   Intent = "modify"
	IntentFind     Intent = "find"
	IntentExplain  Intent = "explain"
	IntentOptimize Intent = "optimize"
	IntentTest     Intent = "test"
	IntentStatus   Intent = "status"
	IntentHelp     Intent = "help"
	IntentUnknown  Intent = "unknown"
)

// All lists every intent in declaration order.
var All = []Intent{
	IntentAnalyze, IntentCreate, IntentModify, IntentFind, IntentExplain,
	IntentOptimize, IntentTest, IntentStatus, IntentHelp, IntentUnknown,
}

// Valid reports whether i belongs to the closed set.
func (i Intent) Valid() bool {
	for _, v := range All {
		if v == i {
			return true
		}
	}
	return false
}

// Title returns the intent name with an upper-case first letter.
func (i Intent) Title() string {
	if i == "" {
		return ""
	}
	s := string(i)
	return strings.ToUpper(s[:1]) + s[1:]
}

// ParsedIntent is the classifier output for one utterance. Treat as read-only.
type ParsedIntent struct {
	Intent       Intent            `json:"intent"`
	Confidence   float64           `json:"confidence"`
	Target       string            `json:"target,omitempty"`
	Details      map[string]string `json:"action_details,omitempty"`
	OriginalText string            `json:"original_text"`
}

// HasTarget reports whether a target was extracted.
func (p ParsedIntent) HasTarget() bool {
	return p.Target != ""
}

// Detail returns the detail value for key, or "".
func (p ParsedIntent) Detail(key string) string {
	if p.Details == nil {
		return ""
	}
	return p.Details[key]
}

// patternGroup is one scored family of regexes and keywords for an intent.
type patternGroup struct {
	intent     Intent
	confidence float64
	patterns   []*regexp.Regexp
	keywords   []string
}
