package dto

import "time"

// AttemptSubmitDTO carries the raw answer tokens exactly as the client sent
// them, keyed by question id. Tokens that do not parse as a choice index are
// normalized to "no answer" by the engine rather than rejected.
type AttemptSubmitDTO struct {
	Answers map[string]string `json:"answers" binding:"required"`
}

// AttemptViewDTO is the start-or-resume response. For an in-progress attempt
// the question list is populated; for a completed one the result fields are.
type AttemptViewDTO struct {
	AttemptID uint              `json:"attempt_id"`
	TestID    uint              `json:"test_id"`
	TestTitle string            `json:"test_title"`
	TimeLimit int               `json:"time_limit"`
	TimeUnit  string            `json:"time_unit"`
	Completed bool              `json:"completed"`
	Questions []QuestionViewDTO `json:"questions,omitempty"`
	Result    *AttemptResultDTO `json:"result,omitempty"`
}

type AttemptResultDTO struct {
	AttemptID      uint           `json:"attempt_id"`
	TestID         uint           `json:"test_id"`
	TestTitle      string         `json:"test_title,omitempty"`
	Score          int            `json:"score"`
	TotalQuestions int            `json:"total_questions"`
	Answers        map[string]int `json:"answers"`
	CompletedAt    *time.Time     `json:"completed_at,omitempty"`
	ReviewAllowed  bool           `json:"review_allowed"`
}

type AttemptReviewDTO struct {
	AttemptID   uint                `json:"attempt_id"`
	TestID      uint                `json:"test_id"`
	TestTitle   string              `json:"test_title"`
	Score       int                 `json:"score"`
	CompletedAt *time.Time          `json:"completed_at,omitempty"`
	Questions   []QuestionReviewDTO `json:"questions"`
}
