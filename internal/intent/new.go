package intent

// PatternClassifier scores text against the registered pattern groups.
type PatternClassifier struct {
	threshold float64
	groups    []patternGroup
}

var _ Classifier = (*PatternClassifier)(nil)

// New creates a PatternClassifier. A threshold outside (0, 1] uses DefaultConfidenceThreshold.
func New(threshold float64) *PatternClassifier {
	if threshold <= 0 || threshold > 1 {
		threshold = DefaultConfidenceThreshold
	}
	return &PatternClassifier{
		threshold: threshold,
		groups:    patternGroups,
	}
}

// Threshold returns the confidence threshold used by IsConfident.
func (c *PatternClassifier) Threshold() float64 {
	return c.threshold
}
