package model

// AnswerStatus indicates whether a question produced a usable answer.
type AnswerStatus string

const (
	StatusSuccess AnswerStatus = "success"
	StatusError   AnswerStatus = "error"
)

// AnswerRecord is the per-question output handed to the reporting layer.
type AnswerRecord struct {
	Question string       `json:"question"`
	Answer   string       `json:"answer"`
	Status   AnswerStatus `json:"status"`
	Intent   string       `json:"intent,omitempty"`
	Metric   string       `json:"resolved_metric,omitempty"`
}
