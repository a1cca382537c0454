package models

// EvaluationResult scores the quality of a recommendation for monitoring.
// Every field is independently clamped to [0,1]; scores never gate
// user-facing behavior.
type EvaluationResult struct {
	Empathy       float64 `json:"empathy"`
	Accuracy      float64 `json:"accuracy"`
	Actionability float64 `json:"actionability"`
	Relevance     float64 `json:"relevance"`
}
