package service

import (
	"errors"

	"github.com/madrasa-lms/madrasa/config"
	"github.com/madrasa-lms/madrasa/internal/apperror"
	"github.com/madrasa-lms/madrasa/internal/auth"
	"github.com/madrasa-lms/madrasa/internal/dto"
	"github.com/madrasa-lms/madrasa/internal/model"
	"github.com/madrasa-lms/madrasa/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type AuthService interface {
	Register(req dto.RegisterDTO) error
	Login(req dto.LoginDTO) (*dto.LoginResponseDTO, error)
	RequestPasswordReset(req dto.PasswordResetRequestDTO) (*dto.PasswordResetTokenDTO, error)
	ConfirmPasswordReset(req dto.PasswordResetConfirmDTO) error
}

type authService struct {
	userRepo repository.UserRepository
	cfg      *config.Config
}

func NewAuthService(userRepo repository.UserRepository, cfg *config.Config) AuthService {
	return &authService{userRepo: userRepo, cfg: cfg}
}

// Register creates a student account together with its profile row. New
// accounts are always students; promotion is a separate admin operation.
func (s *authService) Register(req dto.RegisterDTO) error {
	taken, err := s.userRepo.ExistsByUsername(req.Username)
	if err != nil {
		return err
	}
	if taken {
		return apperror.Conflict("username already exists")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return err
	}
	user := model.User{
		Username:     req.Username,
		Email:        req.Email,
		FullName:     req.FullName,
		PasswordHash: hash,
		Profile:      &model.Profile{Role: model.RoleStudent},
	}
	if err := s.userRepo.Create(&user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperror.Conflict("username already exists")
		}
		return err
	}
	log.Info().Str("username", req.Username).Msg("Student account registered")
	return nil
}

func (s *authService) Login(req dto.LoginDTO) (*dto.LoginResponseDTO, error) {
	user, err := s.userRepo.FindByUsername(req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.Unauthorized("invalid username or password")
		}
		return nil, err
	}
	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		return nil, apperror.Unauthorized("invalid username or password")
	}

	token, err := auth.GenerateToken(user.ID, auth.PurposeAccess, s.cfg.Auth.JWTSecret, s.cfg.Auth.TokenTTL)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponseDTO{
		Token:    token,
		UserID:   user.ID,
		Username: user.Username,
		Role:     string(model.RoleOf(user)),
	}, nil
}

// RequestPasswordReset verifies username+email and issues a short-lived reset
// token. The token stands in for the original's session-based verify step.
func (s *authService) RequestPasswordReset(req dto.PasswordResetRequestDTO) (*dto.PasswordResetTokenDTO, error) {
	user, err := s.userRepo.FindByUsernameAndEmail(req.Username, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("no account matches that username and email")
		}
		return nil, err
	}
	token, err := auth.GenerateToken(user.ID, auth.PurposeReset, s.cfg.Auth.JWTSecret, s.cfg.Auth.ResetTokenTTL)
	if err != nil {
		return nil, err
	}
	return &dto.PasswordResetTokenDTO{ResetToken: token}, nil
}

func (s *authService) ConfirmPasswordReset(req dto.PasswordResetConfirmDTO) error {
	userID, err := auth.ParseToken(req.ResetToken, auth.PurposeReset, s.cfg.Auth.JWTSecret)
	if err != nil {
		return err
	}
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
	if err := s.userRepo.Update(user); err != nil {
		return err
	}
	log.Info().Uint("userID", user.ID).Msg("Password reset completed")
	return nil
}
