package model

import (
	"time"

	"gorm.io/gorm"
)

type TimeUnit string

const (
	UnitSeconds TimeUnit = "seconds"
	UnitMinutes TimeUnit = "minutes"
	UnitHours   TimeUnit = "hours"
)

type Test struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	LessonID      uint           `json:"lesson_id" gorm:"not null;index"`
	Lesson        *Lesson        `json:"-" gorm:"foreignKey:LessonID"`
	Title         string         `json:"title" gorm:"not null"`
	TimeLimit     int            `json:"time_limit" gorm:"default:0"`
	TimeUnit      TimeUnit       `json:"time_unit" gorm:"type:varchar(10);default:'minutes'"`
	PreventReview bool           `json:"prevent_review" gorm:"default:false"`
	Questions     []Question     `json:"questions,omitempty" gorm:"foreignKey:TestID"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// Duration converts the time limit into a time.Duration. A zero limit means
// the test is untimed.
func (t *Test) Duration() time.Duration {
	switch t.TimeUnit {
	case UnitSeconds:
		return time.Duration(t.TimeLimit) * time.Second
	case UnitHours:
		return time.Duration(t.TimeLimit) * time.Hour
	default:
		return time.Duration(t.TimeLimit) * time.Minute
	}
}
