package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AnswerMap records what the student submitted, keyed by question id. The
// value is the chosen 1-based choice index; 0 marks a missing or unparsable
// answer and never matches any correct choice.
type AnswerMap map[string]int

type Attempt struct {
	ID            uint                          `gorm:"primarykey" json:"id"`
	UserID        uint                          `json:"user_id" gorm:"not null;uniqueIndex:idx_attempts_user_test"`
	TestID        uint                          `json:"test_id" gorm:"not null;uniqueIndex:idx_attempts_user_test"`
	User          User                          `json:"-" gorm:"foreignKey:UserID"`
	Test          Test                          `json:"test,omitempty" gorm:"foreignKey:TestID"`
	Score         int                           `json:"score" gorm:"default:0"`
	Completed     bool                          `json:"completed" gorm:"default:false"`
	CompletedAt   *time.Time                    `json:"completed_at,omitempty"`
	Answers       datatypes.JSONType[AnswerMap] `json:"answers"`
	ReviewEnabled bool                          `json:"review_enabled" gorm:"default:false"` // frozen at submission; later test edits do not touch it
	CreatedAt     time.Time                     `json:"created_at"`
	UpdatedAt     time.Time                     `json:"updated_at"`
	DeletedAt     gorm.DeletedAt                `gorm:"index" json:"-"`
}

// ReviewAllowed implements the review gate. The per-attempt flag can be
// flipped by an admin to override the test-level policy, so a completed
// attempt with ReviewEnabled set stays reviewable even if the test later
// turns review off.
func (a *Attempt) ReviewAllowed() bool {
	return !(a.Test.PreventReview && !a.ReviewEnabled)
}
