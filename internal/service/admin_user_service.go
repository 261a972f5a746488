package service

import (
	"errors"

	"github.com/madrasa-lms/madrasa/internal/apperror"
	"github.com/madrasa-lms/madrasa/internal/auth"
	"github.com/madrasa-lms/madrasa/internal/dto"
	"github.com/madrasa-lms/madrasa/internal/model"
	"github.com/madrasa-lms/madrasa/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type AdminUserService interface {
	Dashboard() (*dto.DashboardDTO, error)
	Promote(userID uint) error
	Demote(userID uint) error
	SetPassword(userID uint, req dto.AdminSetPasswordDTO) error
}

type adminUserService struct {
	userRepo    repository.UserRepository
	attemptRepo repository.AttemptRepository
	lessonRepo  repository.LessonRepository
}

func NewAdminUserService(
	userRepo repository.UserRepository,
	attemptRepo repository.AttemptRepository,
	lessonRepo repository.LessonRepository,
) AdminUserService {
	return &adminUserService{userRepo: userRepo, attemptRepo: attemptRepo, lessonRepo: lessonRepo}
}

// Dashboard lists every user with their completed-attempt tallies, next to
// the full lesson catalog including hidden lessons.
func (s *adminUserService) Dashboard() (*dto.DashboardDTO, error) {
	rows, err := s.attemptRepo.ProgressByUser()
	if err != nil {
		return nil, err
	}
	progress := make([]dto.UserProgressDTO, 0, len(rows))
	for _, row := range rows {
		role := row.Role
		if row.IsStaff {
			role = string(model.RoleAdmin)
		}
		progress = append(progress, dto.UserProgressDTO{
			UserID:        row.UserID,
			Username:      row.Username,
			FullName:      row.FullName,
			Role:          role,
			AttemptsCount: row.AttemptsCount,
			TotalScore:    row.TotalScore,
		})
	}

	lessons, err := s.lessonRepo.FindAll(true)
	if err != nil {
		return nil, err
	}
	summaries := make([]dto.LessonSummaryDTO, 0, len(lessons))
	for _, l := range lessons {
		summaries = append(summaries, dto.LessonSummaryDTO{
			ID:         l.ID,
			Title:      l.Title,
			LessonType: string(l.LessonType),
			IsHidden:   l.IsHidden,
			HasVideo:   l.VideoFile != "",
			HasTest:    l.Test != nil,
			CreatedAt:  l.CreatedAt,
		})
	}

	return &dto.DashboardDTO{UsersProgress: progress, Lessons: summaries}, nil
}

func (s *adminUserService) Promote(userID uint) error {
	return s.setRole(userID, model.RoleAdmin)
}

func (s *adminUserService) Demote(userID uint) error {
	return s.setRole(userID, model.RoleStudent)
}

func (s *adminUserService) setRole(userID uint, role model.Role) error {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("user not found")
		}
		return err
	}
	if err := s.userRepo.SetRole(user.ID, role); err != nil {
		return err
	}
	log.Info().Uint("userID", user.ID).Str("role", string(role)).Msg("User role changed")
	return nil
}

func (s *adminUserService) SetPassword(userID uint, req dto.AdminSetPasswordDTO) error {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("user not found")
		}
		return err
	}
	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	return s.userRepo.Update(user)
}
