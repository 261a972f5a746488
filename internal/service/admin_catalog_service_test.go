package service

import (
	"strings"
	"testing"

	"github.com/madrasa-lms/madrasa/internal/apperror"
	"github.com/madrasa-lms/madrasa/internal/dto"
	"github.com/madrasa-lms/madrasa/internal/repository"
	"github.com/madrasa-lms/madrasa/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newCatalogService(t *testing.T, db *gorm.DB) AdminCatalogService {
	t.Helper()
	store, err := storage.NewFSStore(t.TempDir())
	require.NoError(t, err)
	return NewAdminCatalogService(
		repository.NewLessonRepository(db),
		repository.NewTestRepository(db),
		repository.NewQuestionRepository(db),
		store,
	)
}

func TestCreateAndUpdateLesson(t *testing.T) {
	db := newTestDB(t)
	svc := newCatalogService(t, db)

	lesson, err := svc.CreateLesson(dto.LessonCreateDTO{Title: "Fiqh intro", LessonType: "text", Content: "..."})
	require.NoError(t, err)
	assert.Equal(t, "top", lesson.TextPosition)
	assert.False(t, lesson.IsHidden)

	hidden := true
	title := "Fiqh intro (revised)"
	updated, err := svc.UpdateLesson(lesson.ID, dto.LessonUpdateDTO{Title: &title, IsHidden: &hidden})
	require.NoError(t, err)
	assert.Equal(t, title, updated.Title)
	assert.True(t, updated.IsHidden)
	// Untouched fields survive the partial update.
	assert.Equal(t, "text", updated.LessonType)

	_, err = svc.UpdateLesson(9999, dto.LessonUpdateDTO{Title: &title})
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestUploadLessonMedia(t *testing.T) {
	db := newTestDB(t)
	svc := newCatalogService(t, db)

	lesson, err := svc.CreateLesson(dto.LessonCreateDTO{Title: "Video lesson", LessonType: "video"})
	require.NoError(t, err)

	resp, err := svc.UploadLessonMedia(lesson.ID, "video", "intro.MP4", strings.NewReader("data"))
	require.NoError(t, err)
	assert.Equal(t, "video", resp.Kind)
	assert.True(t, strings.HasPrefix(resp.Key, "videos/"))
	assert.True(t, strings.HasSuffix(resp.Key, ".mp4")) // extension lowercased

	detail, err := svc.UpdateLesson(lesson.ID, dto.LessonUpdateDTO{})
	require.NoError(t, err)
	assert.True(t, detail.HasVideo)

	_, err = svc.UploadLessonMedia(lesson.ID, "audio", "x.mp3", strings.NewReader("data"))
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
}

func TestCreateTestForLessonOncePerLesson(t *testing.T) {
	db := newTestDB(t)
	svc := newCatalogService(t, db)

	lesson, err := svc.CreateLesson(dto.LessonCreateDTO{Title: "With test", LessonType: "text"})
	require.NoError(t, err)

	test, err := svc.CreateTestForLesson(lesson.ID, dto.TestCreateDTO{Title: "Quiz", TimeLimit: 10})
	require.NoError(t, err)
	assert.Equal(t, "minutes", test.TimeUnit)

	_, err = svc.CreateTestForLesson(lesson.ID, dto.TestCreateDTO{Title: "Another"})
	assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))

	_, err = svc.CreateTestForLesson(9999, dto.TestCreateDTO{Title: "Orphan"})
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestAddQuestionValidatesCorrectAnswer(t *testing.T) {
	db := newTestDB(t)
	svc := newCatalogService(t, db)

	lesson, err := svc.CreateLesson(dto.LessonCreateDTO{Title: "With test", LessonType: "text"})
	require.NoError(t, err)
	test, err := svc.CreateTestForLesson(lesson.ID, dto.TestCreateDTO{Title: "Quiz"})
	require.NoError(t, err)

	q, err := svc.AddQuestion(test.ID, dto.QuestionCreateDTO{
		Text:          "Pick one",
		Choices:       "a,b,c",
		CorrectAnswer: 3,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, q.CorrectAnswer)

	// Out of bounds: only 3 choices exist.
	_, err = svc.AddQuestion(test.ID, dto.QuestionCreateDTO{
		Text:          "Pick one",
		Choices:       "a,b,c",
		CorrectAnswer: 4,
	})
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))

	_, err = svc.AddQuestion(test.ID, dto.QuestionCreateDTO{
		Text:          "Pick one",
		Choices:       "only-one",
		CorrectAnswer: 1,
	})
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))

	_, err = svc.AddQuestion(9999, dto.QuestionCreateDTO{Text: "x", Choices: "a,b", CorrectAnswer: 1})
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestUpdateTestSettings(t *testing.T) {
	db := newTestDB(t)
	svc := newCatalogService(t, db)

	lesson, err := svc.CreateLesson(dto.LessonCreateDTO{Title: "With test", LessonType: "text"})
	require.NoError(t, err)
	test, err := svc.CreateTestForLesson(lesson.ID, dto.TestCreateDTO{Title: "Quiz", TimeLimit: 10})
	require.NoError(t, err)

	prevent := true
	limit := 45
	updated, err := svc.UpdateTest(test.ID, dto.TestUpdateDTO{PreventReview: &prevent, TimeLimit: &limit})
	require.NoError(t, err)
	assert.True(t, updated.PreventReview)
	assert.Equal(t, 45, updated.TimeLimit)
	assert.Equal(t, "Quiz", updated.Title)
}
