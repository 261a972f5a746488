package model

import (
	"time"

	"gorm.io/gorm"
)

type LessonType string

const (
	LessonText      LessonType = "text"
	LessonVideo     LessonType = "video"
	LessonTextVideo LessonType = "text_video"
)

type Lesson struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	Title        string         `json:"title" gorm:"not null"`
	LessonType   LessonType     `json:"lesson_type" gorm:"type:varchar(20);default:'text'"`
	Content      string         `json:"content" gorm:"type:text"`
	VideoFile    string         `json:"video_file,omitempty"` // key into the media store
	PDFFile      string         `json:"pdf_file,omitempty"`
	TextPosition string         `json:"text_position,omitempty" gorm:"type:varchar(10);default:'top'"` // top|bottom, relative to the video
	IsHidden     bool           `json:"is_hidden" gorm:"default:false"`
	Test         *Test          `json:"test,omitempty" gorm:"foreignKey:LessonID"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// VisibleTo reports whether the lesson may be shown to a user with the given
// role. Hidden lessons are admin-only.
func (l *Lesson) VisibleTo(role Role) bool {
	return !l.IsHidden || role == RoleAdmin
}
