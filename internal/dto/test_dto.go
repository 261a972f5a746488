package dto

import "time"

type TestCreateDTO struct {
	Title         string `json:"title" binding:"required"`
	TimeLimit     int    `json:"time_limit" binding:"min=0"`
	TimeUnit      string `json:"time_unit" binding:"omitempty,oneof=seconds minutes hours"`
	PreventReview bool   `json:"prevent_review"`
}

type TestUpdateDTO struct {
	Title         *string `json:"title"`
	TimeLimit     *int    `json:"time_limit" binding:"omitempty,min=0"`
	TimeUnit      *string `json:"time_unit" binding:"omitempty,oneof=seconds minutes hours"`
	PreventReview *bool   `json:"prevent_review"`
}

type TestSummaryDTO struct {
	ID            uint   `json:"id"`
	LessonID      uint   `json:"lesson_id"`
	Title         string `json:"title"`
	TimeLimit     int    `json:"time_limit"`
	TimeUnit      string `json:"time_unit"`
	PreventReview bool   `json:"prevent_review"`
	QuestionCount int    `json:"question_count"`
}

type QuestionCreateDTO struct {
	Text          string `json:"text" binding:"required"`
	Image         string `json:"image"`
	Choices       string `json:"choices" binding:"required"` // comma-delimited
	CorrectAnswer int    `json:"correct_answer" binding:"required,min=1"`
}

// QuestionViewDTO is what a student taking the test sees. It never carries
// the correct answer.
type QuestionViewDTO struct {
	ID      uint     `json:"id"`
	Text    string   `json:"text"`
	Image   string   `json:"image,omitempty"`
	Choices []string `json:"choices"`
}

// QuestionReviewDTO is the post-completion view, with the correct choice and
// what the student picked.
type QuestionReviewDTO struct {
	ID            uint     `json:"id"`
	Text          string   `json:"text"`
	Image         string   `json:"image,omitempty"`
	Choices       []string `json:"choices"`
	CorrectAnswer int      `json:"correct_answer"`
	YourAnswer    int      `json:"your_answer"` // 0 when unanswered
	Correct       bool     `json:"correct"`
}

type QuestionResponseDTO struct {
	ID            uint      `json:"id"`
	TestID        uint      `json:"test_id"`
	Text          string    `json:"text"`
	Image         string    `json:"image,omitempty"`
	Choices       string    `json:"choices"`
	CorrectAnswer int       `json:"correct_answer"`
	CreatedAt     time.Time `json:"created_at"`
}
