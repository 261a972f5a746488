package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/madrasa-lms/madrasa/internal/apperror"
	"github.com/madrasa-lms/madrasa/internal/auth"
	"github.com/madrasa-lms/madrasa/internal/dto"
	"github.com/madrasa-lms/madrasa/internal/model"
	"github.com/madrasa-lms/madrasa/internal/repository"
	"gorm.io/gorm"
)

type ProfileService interface {
	GetProfile(userID uint) (*dto.ProfileDTO, error)
	UpdateProfile(userID uint, req dto.ProfileUpdateDTO) (*dto.ProfileDTO, error)
	ChangePassword(userID uint, req dto.PasswordChangeDTO) error
}

type profileService struct {
	userRepo    repository.UserRepository
	attemptRepo repository.AttemptRepository
}

func NewProfileService(userRepo repository.UserRepository, attemptRepo repository.AttemptRepository) ProfileService {
	return &profileService{userRepo: userRepo, attemptRepo: attemptRepo}
}

// GetProfile assembles the student dashboard: attempt history plus the
// aggregate stats derived from it.
func (s *profileService) GetProfile(userID uint) (*dto.ProfileDTO, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("user not found")
		}
		return nil, err
	}

	attempts, err := s.attemptRepo.FindCompletedByUser(userID)
	if err != nil {
		return nil, err
	}

	history := make([]dto.AttemptHistoryItemDTO, 0, len(attempts))
	bestByLesson := map[uint]int{}
	var studyTime time.Duration
	for i := range attempts {
		a := &attempts[i]
		total := len(a.Answers.Data())
		pct := 0
		if total > 0 {
			pct = a.Score * 100 / total
		}
		item := dto.AttemptHistoryItemDTO{
			AttemptID:       a.ID,
			TestID:          a.TestID,
			TestTitle:       a.Test.Title,
			LessonID:        a.Test.LessonID,
			Score:           a.Score,
			TotalQuestions:  total,
			ScorePercentage: pct,
			CompletedAt:     a.CompletedAt,
		}
		if a.Test.Lesson != nil {
			item.LessonTitle = a.Test.Lesson.Title
		}
		history = append(history, item)

		if best, ok := bestByLesson[a.Test.LessonID]; !ok || pct > best {
			bestByLesson[a.Test.LessonID] = pct
		}
		studyTime += a.Test.Duration()
	}

	avg := 0
	if len(bestByLesson) > 0 {
		sum := 0
		for _, pct := range bestByLesson {
			sum += pct
		}
		avg = sum / len(bestByLesson)
	}

	return &dto.ProfileDTO{
		UserID:                user.ID,
		Username:              user.Username,
		Email:                 user.Email,
		FullName:              user.FullName,
		Role:                  string(model.RoleOf(user)),
		RecentAttempts:        history,
		TotalAttempts:         int64(len(attempts)),
		CompletedLessonsCount: len(bestByLesson),
		AverageScore:          avg,
		StudyTime:             formatStudyTime(studyTime),
	}, nil
}

func (s *profileService) UpdateProfile(userID uint, req dto.ProfileUpdateDTO) (*dto.ProfileDTO, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("user not found")
		}
		return nil, err
	}

	taken, err := s.userRepo.ExistsByEmailExcept(req.Email, user.ID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperror.Conflict("email is already in use")
	}

	user.Email = req.Email
	user.FullName = req.FullName

	if req.NewPassword != "" {
		if !auth.CheckPassword(user.PasswordHash, req.CurrentPassword) {
			return nil, apperror.Unauthorized("current password is incorrect")
		}
		hash, err := auth.HashPassword(req.NewPassword)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return s.GetProfile(user.ID)
}

func (s *profileService) ChangePassword(userID uint, req dto.PasswordChangeDTO) error {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("user not found")
		}
		return err
	}
	if !auth.CheckPassword(user.PasswordHash, req.CurrentPassword) {
		return apperror.Unauthorized("current password is incorrect")
	}
	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	return s.userRepo.Update(user)
}

// formatStudyTime renders a duration as "3h 25m". Sub-minute totals still
// show "0m" rather than an empty string.
func formatStudyTime(d time.Duration) string {
	minutes := int(d.Minutes())
	h, m := minutes/60, minutes%60
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}
