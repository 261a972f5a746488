package dto

import "time"

type ProfileUpdateDTO struct {
	FullName string `json:"full_name"`
	Email    string `json:"email" binding:"required,email"`
	// Optional password change bundled with the profile form; requires the
	// current password.
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password" binding:"omitempty,min=4"`
}

type AttemptHistoryItemDTO struct {
	AttemptID       uint       `json:"attempt_id"`
	TestID          uint       `json:"test_id"`
	TestTitle       string     `json:"test_title"`
	LessonID        uint       `json:"lesson_id"`
	LessonTitle     string     `json:"lesson_title"`
	Score           int        `json:"score"`
	TotalQuestions  int        `json:"total_questions"`
	ScorePercentage int        `json:"score_percentage"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
}

type ProfileDTO struct {
	UserID                uint                    `json:"user_id"`
	Username              string                  `json:"username"`
	Email                 string                  `json:"email"`
	FullName              string                  `json:"full_name"`
	Role                  string                  `json:"role"`
	RecentAttempts        []AttemptHistoryItemDTO `json:"recent_attempts"`
	TotalAttempts         int64                   `json:"total_attempts"`
	CompletedLessonsCount int                     `json:"completed_lessons_count"`
	AverageScore          int                     `json:"average_score"` // mean of best percentage per lesson
	StudyTime             string                  `json:"study_time"`    // "3h 25m", from test time limits
}

type UserProgressDTO struct {
	UserID        uint   `json:"user_id"`
	Username      string `json:"username"`
	FullName      string `json:"full_name"`
	Role          string `json:"role"`
	AttemptsCount int    `json:"attempts_count"`
	TotalScore    int    `json:"total_score"`
}

type DashboardDTO struct {
	UsersProgress []UserProgressDTO  `json:"users_progress"`
	Lessons       []LessonSummaryDTO `json:"lessons"`
}
