package dto

import "time"

type LessonCreateDTO struct {
	Title        string `json:"title" binding:"required"`
	LessonType   string `json:"lesson_type" binding:"required,oneof=text video text_video"`
	Content      string `json:"content"`
	TextPosition string `json:"text_position" binding:"omitempty,oneof=top bottom"`
	IsHidden     bool   `json:"is_hidden"`
}

// LessonUpdateDTO uses pointers so that omitted fields keep their stored
// values.
type LessonUpdateDTO struct {
	Title        *string `json:"title"`
	LessonType   *string `json:"lesson_type" binding:"omitempty,oneof=text video text_video"`
	Content      *string `json:"content"`
	TextPosition *string `json:"text_position" binding:"omitempty,oneof=top bottom"`
	IsHidden     *bool   `json:"is_hidden"`
}

type LessonSummaryDTO struct {
	ID         uint      `json:"id"`
	Title      string    `json:"title"`
	LessonType string    `json:"lesson_type"`
	IsHidden   bool      `json:"is_hidden"`
	HasVideo   bool      `json:"has_video"`
	HasTest    bool      `json:"has_test"`
	CreatedAt  time.Time `json:"created_at"`
}

type LessonDetailDTO struct {
	ID           uint            `json:"id"`
	Title        string          `json:"title"`
	LessonType   string          `json:"lesson_type"`
	Content      string          `json:"content,omitempty"`
	TextPosition string          `json:"text_position,omitempty"`
	IsHidden     bool            `json:"is_hidden"`
	HasVideo     bool            `json:"has_video"`
	HasPDF       bool            `json:"has_pdf"`
	Test         *TestSummaryDTO `json:"test,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

type MediaUploadResponseDTO struct {
	Key  string `json:"key"`
	Kind string `json:"kind"` // video|pdf
}
