package repository

import (
	"time"

	"github.com/madrasa-lms/madrasa/internal/model"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type AttemptRepository interface {
	Create(attempt *model.Attempt) error
	FindByID(id uint) (*model.Attempt, error)
	FindByUserAndTest(userID, testID uint) (*model.Attempt, error)
	Finalize(attemptID uint, score int, answers model.AnswerMap, reviewEnabled bool, completedAt time.Time) (bool, error)
	FindCompletedByUser(userID uint) ([]model.Attempt, error)
	CountCompletedByUser(userID uint) (int64, error)
	ProgressByUser() ([]UserProgressRow, error)
}

// UserProgressRow is one dashboard line: a user with their completed-attempt
// count and score sum.
type UserProgressRow struct {
	UserID        uint
	Username      string
	FullName      string
	IsStaff       bool
	Role          string
	AttemptsCount int
	TotalScore    int
}

type attemptRepository struct {
	db *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) AttemptRepository {
	return &attemptRepository{db: db}
}

func (r *attemptRepository) Create(attempt *model.Attempt) error {
	return r.db.Create(attempt).Error
}

func (r *attemptRepository) FindByID(id uint) (*model.Attempt, error) {
	var attempt model.Attempt
	err := r.db.Preload("Test").First(&attempt, id).Error
	return &attempt, err
}

func (r *attemptRepository) FindByUserAndTest(userID, testID uint) (*model.Attempt, error) {
	var attempt model.Attempt
	err := r.db.Preload("Test").
		Where("user_id = ? AND test_id = ?", userID, testID).
		First(&attempt).Error
	return &attempt, err
}

// Finalize writes the grading result, guarded by completed = false so that
// concurrent submissions cannot both score. Returns false when another
// submission already won.
func (r *attemptRepository) Finalize(attemptID uint, score int, answers model.AnswerMap, reviewEnabled bool, completedAt time.Time) (bool, error) {
	res := r.db.Model(&model.Attempt{}).
		Where("id = ? AND completed = ?", attemptID, false).
		Updates(map[string]interface{}{
			"score":          score,
			"completed":      true,
			"completed_at":   completedAt,
			"answers":        datatypes.NewJSONType(answers),
			"review_enabled": reviewEnabled,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *attemptRepository) FindCompletedByUser(userID uint) ([]model.Attempt, error) {
	var attempts []model.Attempt
	err := r.db.Preload("Test").Preload("Test.Lesson").
		Where("user_id = ? AND completed = ?", userID, true).
		Order("completed_at DESC").
		Find(&attempts).Error
	return attempts, err
}

func (r *attemptRepository) CountCompletedByUser(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Attempt{}).
		Where("user_id = ? AND completed = ?", userID, true).
		Count(&count).Error
	return count, err
}

func (r *attemptRepository) ProgressByUser() ([]UserProgressRow, error) {
	var rows []UserProgressRow
	err := r.db.Table("users").
		Select(`users.id as user_id, users.username, users.full_name, users.is_staff,
			COALESCE(profiles.role, 'student') as role,
			COUNT(attempts.id) as attempts_count,
			COALESCE(SUM(attempts.score), 0) as total_score`).
		Joins("LEFT JOIN profiles ON profiles.user_id = users.id AND profiles.deleted_at IS NULL").
		Joins("LEFT JOIN attempts ON attempts.user_id = users.id AND attempts.completed = true AND attempts.deleted_at IS NULL").
		Where("users.deleted_at IS NULL").
		Group("users.id, users.username, users.full_name, users.is_staff, profiles.role").
		Order("users.username ASC").
		Scan(&rows).Error
	return rows, err
}
