package service

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/madrasa-lms/madrasa/internal/model"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a fresh in-memory database with the full schema migrated.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Profile{},
		&model.Lesson{},
		&model.Test{},
		&model.Question{},
		&model.Attempt{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string) *model.User {
	t.Helper()
	user := &model.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
		Profile:      &model.Profile{Role: model.RoleStudent},
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// seedLessonWithTest creates a visible lesson with a three-question test.
// Correct answers are 2, 1, 3.
func seedLessonWithTest(t *testing.T, db *gorm.DB, preventReview bool) (*model.Lesson, *model.Test) {
	t.Helper()
	lesson := &model.Lesson{Title: "Tajweed basics", LessonType: model.LessonText, Content: "..."}
	require.NoError(t, db.Create(lesson).Error)

	test := &model.Test{
		LessonID:      lesson.ID,
		Title:         "Tajweed quiz",
		TimeLimit:     30,
		TimeUnit:      model.UnitMinutes,
		PreventReview: preventReview,
	}
	require.NoError(t, db.Create(test).Error)

	questions := []model.Question{
		{TestID: test.ID, Text: "Q1", Choices: "a,b,c", CorrectAnswer: 2},
		{TestID: test.ID, Text: "Q2", Choices: "x,y", CorrectAnswer: 1},
		{TestID: test.ID, Text: "Q3", Choices: "p,q,r,s", CorrectAnswer: 3},
	}
	for i := range questions {
		require.NoError(t, db.Create(&questions[i]).Error)
	}
	return lesson, test
}
