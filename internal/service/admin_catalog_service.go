package service

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/jinzhu/copier"
	"github.com/madrasa-lms/madrasa/internal/apperror"
	"github.com/madrasa-lms/madrasa/internal/dto"
	"github.com/madrasa-lms/madrasa/internal/model"
	"github.com/madrasa-lms/madrasa/internal/repository"
	"github.com/madrasa-lms/madrasa/internal/storage"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// AdminCatalogService is the admin-side CRUD surface for lessons, tests and
// questions.
type AdminCatalogService interface {
	CreateLesson(req dto.LessonCreateDTO) (*dto.LessonDetailDTO, error)
	UpdateLesson(id uint, req dto.LessonUpdateDTO) (*dto.LessonDetailDTO, error)
	UploadLessonMedia(lessonID uint, kind, filename string, r io.Reader) (*dto.MediaUploadResponseDTO, error)
	CreateTestForLesson(lessonID uint, req dto.TestCreateDTO) (*dto.TestSummaryDTO, error)
	UpdateTest(testID uint, req dto.TestUpdateDTO) (*dto.TestSummaryDTO, error)
	AddQuestion(testID uint, req dto.QuestionCreateDTO) (*dto.QuestionResponseDTO, error)
}

type adminCatalogService struct {
	lessonRepo   repository.LessonRepository
	testRepo     repository.TestRepository
	questionRepo repository.QuestionRepository
	blobs        storage.BlobStore
}

func NewAdminCatalogService(
	lessonRepo repository.LessonRepository,
	testRepo repository.TestRepository,
	questionRepo repository.QuestionRepository,
	blobs storage.BlobStore,
) AdminCatalogService {
	return &adminCatalogService{
		lessonRepo:   lessonRepo,
		testRepo:     testRepo,
		questionRepo: questionRepo,
		blobs:        blobs,
	}
}

func (s *adminCatalogService) CreateLesson(req dto.LessonCreateDTO) (*dto.LessonDetailDTO, error) {
	lesson := model.Lesson{
		Title:        req.Title,
		LessonType:   model.LessonType(req.LessonType),
		Content:      req.Content,
		TextPosition: req.TextPosition,
		IsHidden:     req.IsHidden,
	}
	if lesson.TextPosition == "" {
		lesson.TextPosition = "top"
	}
	if err := s.lessonRepo.Create(&lesson); err != nil {
		log.Error().Err(err).Msg("Failed to create lesson")
		return nil, err
	}
	return lessonDetail(&lesson), nil
}

func (s *adminCatalogService) UpdateLesson(id uint, req dto.LessonUpdateDTO) (*dto.LessonDetailDTO, error) {
	lesson, err := s.lessonRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("lesson not found")
		}
		return nil, err
	}
	if req.Title != nil {
		lesson.Title = *req.Title
	}
	if req.LessonType != nil {
		lesson.LessonType = model.LessonType(*req.LessonType)
	}
	if req.Content != nil {
		lesson.Content = *req.Content
	}
	if req.TextPosition != nil {
		lesson.TextPosition = *req.TextPosition
	}
	if req.IsHidden != nil {
		lesson.IsHidden = *req.IsHidden
	}
	if err := s.lessonRepo.Update(lesson); err != nil {
		return nil, err
	}
	return lessonDetail(lesson), nil
}

// UploadLessonMedia stores an uploaded video or PDF and records its key on
// the lesson.
func (s *adminCatalogService) UploadLessonMedia(lessonID uint, kind, filename string, r io.Reader) (*dto.MediaUploadResponseDTO, error) {
	lesson, err := s.lessonRepo.FindByID(lessonID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("lesson not found")
		}
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(filename))
	var key string
	switch kind {
	case "video":
		key = fmt.Sprintf("videos/lesson_%d%s", lesson.ID, ext)
	case "pdf":
		key = fmt.Sprintf("pdfs/lesson_%d%s", lesson.ID, ext)
	default:
		return nil, apperror.Validation("media kind must be video or pdf")
	}

	if _, err := s.blobs.Put(key, r); err != nil {
		log.Error().Err(err).Str("key", key).Msg("Failed to store uploaded media")
		return nil, err
	}
	switch kind {
	case "video":
		lesson.VideoFile = key
	case "pdf":
		lesson.PDFFile = key
	}
	if err := s.lessonRepo.Update(lesson); err != nil {
		return nil, err
	}
	log.Info().Uint("lessonID", lesson.ID).Str("key", key).Msg("Lesson media uploaded")
	return &dto.MediaUploadResponseDTO{Key: key, Kind: kind}, nil
}

func (s *adminCatalogService) CreateTestForLesson(lessonID uint, req dto.TestCreateDTO) (*dto.TestSummaryDTO, error) {
	lesson, err := s.lessonRepo.FindByID(lessonID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("lesson not found")
		}
		return nil, err
	}
	if _, err := s.testRepo.FindByLessonID(lesson.ID); err == nil {
		return nil, apperror.Conflict("lesson already has a test")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	test := model.Test{
		LessonID:      lesson.ID,
		Title:         req.Title,
		TimeLimit:     req.TimeLimit,
		TimeUnit:      model.TimeUnit(req.TimeUnit),
		PreventReview: req.PreventReview,
	}
	if test.TimeUnit == "" {
		test.TimeUnit = model.UnitMinutes
	}
	if err := s.testRepo.Create(&test); err != nil {
		return nil, err
	}
	return testSummary(&test, 0), nil
}

func (s *adminCatalogService) UpdateTest(testID uint, req dto.TestUpdateDTO) (*dto.TestSummaryDTO, error) {
	test, err := s.testRepo.FindByID(testID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("test not found")
		}
		return nil, err
	}
	if req.Title != nil {
		test.Title = *req.Title
	}
	if req.TimeLimit != nil {
		test.TimeLimit = *req.TimeLimit
	}
	if req.TimeUnit != nil {
		test.TimeUnit = model.TimeUnit(*req.TimeUnit)
	}
	if req.PreventReview != nil {
		// Only the test-level policy changes. ReviewEnabled on completed
		// attempts stays frozen, so the change is not retroactive.
		test.PreventReview = *req.PreventReview
	}
	if err := s.testRepo.Update(test); err != nil {
		return nil, err
	}
	count, err := s.questionRepo.CountByTestID(test.ID)
	if err != nil {
		return nil, err
	}
	return testSummary(test, int(count)), nil
}

// AddQuestion validates that the correct-answer index addresses one of the
// provided choices before persisting.
func (s *adminCatalogService) AddQuestion(testID uint, req dto.QuestionCreateDTO) (*dto.QuestionResponseDTO, error) {
	test, err := s.testRepo.FindByID(testID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("test not found")
		}
		return nil, err
	}

	question := model.Question{
		TestID:        test.ID,
		Text:          req.Text,
		Image:         req.Image,
		Choices:       req.Choices,
		CorrectAnswer: req.CorrectAnswer,
	}
	choices := question.ChoiceList()
	if len(choices) < 2 {
		return nil, apperror.Validation("a question needs at least two choices")
	}
	if req.CorrectAnswer < 1 || req.CorrectAnswer > len(choices) {
		return nil, apperror.Validation(fmt.Sprintf("correct_answer must be between 1 and %d", len(choices)))
	}

	if err := s.questionRepo.Create(&question); err != nil {
		return nil, err
	}
	var resp dto.QuestionResponseDTO
	if err := copier.Copy(&resp, &question); err != nil {
		return nil, err
	}
	return &resp, nil
}

func lessonDetail(l *model.Lesson) *dto.LessonDetailDTO {
	return &dto.LessonDetailDTO{
		ID:           l.ID,
		Title:        l.Title,
		LessonType:   string(l.LessonType),
		Content:      l.Content,
		TextPosition: l.TextPosition,
		IsHidden:     l.IsHidden,
		HasVideo:     l.VideoFile != "",
		HasPDF:       l.PDFFile != "",
		CreatedAt:    l.CreatedAt,
	}
}

func testSummary(t *model.Test, questionCount int) *dto.TestSummaryDTO {
	return &dto.TestSummaryDTO{
		ID:            t.ID,
		LessonID:      t.LessonID,
		Title:         t.Title,
		TimeLimit:     t.TimeLimit,
		TimeUnit:      string(t.TimeUnit),
		PreventReview: t.PreventReview,
		QuestionCount: questionCount,
	}
}
