package service

import (
	"testing"

	"github.com/madrasa-lms/madrasa/internal/apperror"
	"github.com/madrasa-lms/madrasa/internal/auth"
	"github.com/madrasa-lms/madrasa/internal/dto"
	"github.com/madrasa-lms/madrasa/internal/model"
	"github.com/madrasa-lms/madrasa/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAdminUserService(db *gorm.DB) AdminUserService {
	return NewAdminUserService(
		repository.NewUserRepository(db),
		repository.NewAttemptRepository(db),
		repository.NewLessonRepository(db),
	)
}

func TestPromoteAndDemote(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "amina")
	userRepo := repository.NewUserRepository(db)
	svc := newAdminUserService(db)

	require.NoError(t, svc.Promote(user.ID))
	reloaded, err := userRepo.FindByID(user.ID)
	require.NoError(t, err)
	assert.True(t, reloaded.IsAdmin())

	require.NoError(t, svc.Demote(user.ID))
	reloaded, err = userRepo.FindByID(user.ID)
	require.NoError(t, err)
	assert.False(t, reloaded.IsAdmin())

	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(svc.Promote(9999)))
}

func TestAdminSetPassword(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "amina")
	svc := newAdminUserService(db)

	require.NoError(t, svc.SetPassword(user.ID, dto.AdminSetPasswordDTO{NewPassword: "reset-by-admin"}))

	require.NoError(t, db.First(user, user.ID).Error)
	assert.True(t, auth.CheckPassword(user.PasswordHash, "reset-by-admin"))

	err := svc.SetPassword(9999, dto.AdminSetPasswordDTO{NewPassword: "x"})
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestDashboard(t *testing.T) {
	db := newTestDB(t)
	amina := seedUser(t, db, "amina")
	seedUser(t, db, "bilal")
	_, test := seedLessonWithTest(t, db, false)

	// A hidden lesson shows up on the admin dashboard.
	require.NoError(t, db.Create(&model.Lesson{Title: "Draft", IsHidden: true}).Error)

	attemptSvc := newAttemptService(db)
	_, err := attemptSvc.Submit(amina.ID, test.ID, dto.AttemptSubmitDTO{Answers: map[string]string{}})
	require.NoError(t, err)

	svc := newAdminUserService(db)
	dashboard, err := svc.Dashboard()
	require.NoError(t, err)

	require.Len(t, dashboard.UsersProgress, 2)
	byName := map[string]dto.UserProgressDTO{}
	for _, p := range dashboard.UsersProgress {
		byName[p.Username] = p
	}
	assert.Equal(t, 1, byName["amina"].AttemptsCount)
	assert.Equal(t, 0, byName["bilal"].AttemptsCount)

	assert.Len(t, dashboard.Lessons, 2)
}
