package hermes

import "time"

type EvaluationCompletedEvent struct {
	EvaluationID string    `json:"evaluation_id"`
	Variant      string    `json:"variant"`
	BookCount    int       `json:"book_count"`
	TopBook      string    `json:"top_book"`
	TopScore     float64   `json:"top_score"`
	Timestamp    time.Time `json:"timestamp"`
}

type EvaluationRejectedEvent struct {
	EvaluationID string    `json:"evaluation_id"`
	Variant      string    `json:"variant"`
	Code         string    `json:"code"`
	Error        string    `json:"error"`
	Timestamp    time.Time `json:"timestamp"`
}
