package service

import (
	"errors"

	"github.com/madrasa-lms/madrasa/internal/apperror"
	"github.com/madrasa-lms/madrasa/internal/dto"
	"github.com/madrasa-lms/madrasa/internal/model"
	"github.com/madrasa-lms/madrasa/internal/repository"
	"gorm.io/gorm"
)

type LessonService interface {
	ListLessons(role model.Role) ([]dto.LessonSummaryDTO, error)
	GetLesson(id uint, role model.Role) (*dto.LessonDetailDTO, error)
	ListTests() ([]dto.TestSummaryDTO, error)
}

type lessonService struct {
	lessonRepo repository.LessonRepository
	testRepo   repository.TestRepository
}

func NewLessonService(lessonRepo repository.LessonRepository, testRepo repository.TestRepository) LessonService {
	return &lessonService{lessonRepo: lessonRepo, testRepo: testRepo}
}

func (s *lessonService) ListLessons(role model.Role) ([]dto.LessonSummaryDTO, error) {
	lessons, err := s.lessonRepo.FindAll(role == model.RoleAdmin)
	if err != nil {
		return nil, err
	}
	dtos := make([]dto.LessonSummaryDTO, 0, len(lessons))
	for _, l := range lessons {
		dtos = append(dtos, dto.LessonSummaryDTO{
			ID:         l.ID,
			Title:      l.Title,
			LessonType: string(l.LessonType),
			IsHidden:   l.IsHidden,
			HasVideo:   l.VideoFile != "",
			HasTest:    l.Test != nil,
			CreatedAt:  l.CreatedAt,
		})
	}
	return dtos, nil
}

func (s *lessonService) GetLesson(id uint, role model.Role) (*dto.LessonDetailDTO, error) {
	lesson, err := s.lessonRepo.FindByIDWithTest(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("lesson not found")
		}
		return nil, err
	}
	if !lesson.VisibleTo(role) {
		return nil, apperror.Forbidden("this lesson is not available")
	}

	detail := &dto.LessonDetailDTO{
		ID:           lesson.ID,
		Title:        lesson.Title,
		LessonType:   string(lesson.LessonType),
		Content:      lesson.Content,
		TextPosition: lesson.TextPosition,
		IsHidden:     lesson.IsHidden,
		HasVideo:     lesson.VideoFile != "",
		HasPDF:       lesson.PDFFile != "",
		CreatedAt:    lesson.CreatedAt,
	}
	if lesson.Test != nil {
		detail.Test = &dto.TestSummaryDTO{
			ID:            lesson.Test.ID,
			LessonID:      lesson.ID,
			Title:         lesson.Test.Title,
			TimeLimit:     lesson.Test.TimeLimit,
			TimeUnit:      string(lesson.Test.TimeUnit),
			PreventReview: lesson.Test.PreventReview,
		}
	}
	return detail, nil
}

func (s *lessonService) ListTests() ([]dto.TestSummaryDTO, error) {
	tests, err := s.testRepo.FindAllWithQuestionCount()
	if err != nil {
		return nil, err
	}
	dtos := make([]dto.TestSummaryDTO, 0, len(tests))
	for _, t := range tests {
		dtos = append(dtos, dto.TestSummaryDTO{
			ID:            t.ID,
			LessonID:      t.LessonID,
			Title:         t.Title,
			TimeLimit:     t.TimeLimit,
			TimeUnit:      string(t.TimeUnit),
			PreventReview: t.PreventReview,
			QuestionCount: t.QuestionCount,
		})
	}
	return dtos, nil
}
