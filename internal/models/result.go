package models

import "time"

// GameResult is the archived summary of a finished game.
type GameResult struct {
	ID           int64          `json:"id"`
	SessionID    string         `json:"session_id"`
	ContentKind  ContentKind    `json:"content_kind"`
	OrderingMode OrderingMode   `json:"ordering_mode"`
	Difficulty   Difficulty     `json:"difficulty"`
	AnswerMode   AnswerMode     `json:"answer_mode"`
	OptionCount  int            `json:"option_count"`
	AllowedTypes []AlphabetType `json:"allowed_types"`
	Attempts     int            `json:"attempts"`
	Correct      int            `json:"correct"`
	Points       int            `json:"points"`
	FinishReason string         `json:"finish_reason"`
	StartedAt    time.Time      `json:"started_at"`
	FinishedAt   time.Time      `json:"finished_at"`
	CreatedAt    time.Time      `json:"created_at"`
}

// Accuracy is the share of correct attempts, 0 when nothing was attempted.
func (r GameResult) Accuracy() float64 {
	if r.Attempts == 0 {
		return 0
	}
	return float64(r.Correct) / float64(r.Attempts)
}

type ResultFilter struct {
	OrderingMode OrderingMode
	Difficulty   Difficulty
	AnswerMode   AnswerMode
	FinishReason string
	Since        *time.Time
	Limit        int
	Offset       int
}

type ScoreSummary struct {
	Games         int     `json:"games"`
	Attempts      int     `json:"attempts"`
	Correct       int     `json:"correct"`
	TotalPoints   int     `json:"total_points"`
	BestPoints    int     `json:"best_points"`
	AveragePoints float64 `json:"average_points"`
	Accuracy      float64 `json:"accuracy"`
}
