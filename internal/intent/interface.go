package intent

// Classifier maps raw text to a ParsedIntent. Implementations are stateless and
// safe to share between sessions.
type Classifier interface {
	Classify(text string) ParsedIntent
	IsConfident(p ParsedIntent) bool
	Suggestions(text string) []string
}
