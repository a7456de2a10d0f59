package presenter

// Category of a presented response.
type Category string

const (
	CategoryDirect Category = "direct_action"
	CategoryTools  Category = "tool_response"
	CategoryLLM    Category = "llm_response"
	CategoryError  Category = "error"
)

// ErrorKind refines CategoryError from the raw response text.
type ErrorKind string

const (
	ErrorParsing   ErrorKind = "parsing_error"
	ErrorExecution ErrorKind = "execution_error"
	ErrorTool      ErrorKind = "tool_error"
)

// ConfidenceLevel is the overall confidence shown to the user.
type ConfidenceLevel string

const (
	ConfidenceHigh   ConfidenceLevel = "high"
	ConfidenceMedium ConfidenceLevel = "medium"
	ConfidenceLow    ConfidenceLevel = "low"
)

// Metadata describes how a response was generated. GenerationTime is in seconds.
type Metadata struct {
	GenerationTime       float64         `json:"generation_time"`
	SuggestedActions     []string        `json:"suggested_actions"`
	ConfidenceLevel      ConfidenceLevel `json:"confidence_level"`
	FollowUpQuestions    []string        `json:"follow_up_questions"`
	ProactiveSuggestions []string        `json:"proactive_suggestions"`
}

// Suggestions groups every suggestion list of a response.
type Suggestions struct {
	Actions   []string `json:"actions"`
	FollowUp  []string `json:"follow_up"`
	Proactive []string `json:"proactive"`
}

// Output is the presented form of one turn.
type Output struct {
	Category          Category    `json:"category"`
	FormattedResponse string      `json:"formatted_response"`
	Metadata          Metadata    `json:"metadata"`
	RawResponse       string      `json:"raw_response"`
	Suggestions       Suggestions `json:"suggestions"`
	Presentation      string      `json:"presentation"`
}

type intentSuggestions struct {
	followUp  []string
	proactive []string
}
