package model

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

type Question struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	TestID        uint           `json:"test_id" gorm:"not null;index"`
	Text          string         `json:"text" gorm:"type:text"`
	Image         string         `json:"image,omitempty"` // key into the media store
	Choices       string         `json:"choices" gorm:"type:text;not null"` // comma-delimited, order significant
	CorrectAnswer int            `json:"correct_answer" gorm:"not null"`    // 1-based index into Choices
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// ChoiceList splits the stored choice string into its ordered options.
func (q *Question) ChoiceList() []string {
	parts := strings.Split(q.Choices, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// CorrectChoiceText returns the text of the correct option, or "" when the
// stored index is out of bounds.
func (q *Question) CorrectChoiceText() string {
	choices := q.ChoiceList()
	idx := q.CorrectAnswer - 1
	if idx >= 0 && idx < len(choices) {
		return choices[idx]
	}
	return ""
}
