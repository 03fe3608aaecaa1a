package query

// Answer is the result shape shared by the heuristic and model paths.
type Answer struct {
	Text      string  `json:"text"`
	Intent    string  `json:"intent"`
	StartDate *string `json:"start_date,omitempty"`
	EndDate   *string `json:"end_date,omitempty"`
	// Raw echoes the model reply when it could not be parsed.
	Raw string `json:"raw,omitempty"`
}

// Intents produced by the model path.
const (
	IntentLLMUnparseable = "llm_unparseable"
	IntentLLMRejected    = "llm_rejected"
	IntentLLMQueryPrefix = "llm_query:"
)
