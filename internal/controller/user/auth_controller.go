package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/madrasa-lms/madrasa/internal/controller"
	"github.com/madrasa-lms/madrasa/internal/dto"
	"github.com/madrasa-lms/madrasa/internal/service"
	"github.com/rs/zerolog/log"
)

type AuthController struct {
	authSvc service.AuthService
}

func NewAuthController(authSvc service.AuthService) *AuthController {
	return &AuthController{authSvc: authSvc}
}

func (ctrl *AuthController) RegisterRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	auth.POST("/register", ctrl.Register)
	auth.POST("/login", ctrl.Login)
	auth.POST("/password-reset", ctrl.RequestPasswordReset)
	auth.POST("/password-reset/confirm", ctrl.ConfirmPasswordReset)
}

// Register godoc
// @Summary Register a new student account
// @Tags auth
// @Accept json
// @Produce json
// @Param account body dto.RegisterDTO true "Account data"
// @Success 201 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 409 {object} dto.ErrorResponse "Username already exists"
// @Router /auth/register [post]
func (ctrl *AuthController) Register(c *gin.Context) {
	var req dto.RegisterDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Failed to bind RegisterDTO")
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
		return
	}
	if err := ctrl.authSvc.Register(req); err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.MessageResponse{Message: "account created"})
}

// Login godoc
// @Summary Log in and receive a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body dto.LoginDTO true "Credentials"
// @Success 200 {object} dto.LoginResponseDTO
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Router /auth/login [post]
func (ctrl *AuthController) Login(c *gin.Context) {
	var req dto.LoginDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
		return
	}
	resp, err := ctrl.authSvc.Login(req)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RequestPasswordReset godoc
// @Summary Start a password reset by verifying username and email
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.PasswordResetRequestDTO true "Account identification"
// @Success 200 {object} dto.PasswordResetTokenDTO
// @Failure 404 {object} dto.ErrorResponse "No matching account"
// @Router /auth/password-reset [post]
func (ctrl *AuthController) RequestPasswordReset(c *gin.Context) {
	var req dto.PasswordResetRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
		return
	}
	resp, err := ctrl.authSvc.RequestPasswordReset(req)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ConfirmPasswordReset godoc
// @Summary Set a new password using a reset token
// @Tags auth
// @Accept json
// @Produce json
// @Param confirmation body dto.PasswordResetConfirmDTO true "Reset token and new password"
// @Success 200 {object} dto.MessageResponse
// @Failure 401 {object} dto.ErrorResponse "Invalid or expired reset token"
// @Router /auth/password-reset/confirm [post]
func (ctrl *AuthController) ConfirmPasswordReset(c *gin.Context) {
	var req dto.PasswordResetConfirmDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
		return
	}
	if err := ctrl.authSvc.ConfirmPasswordReset(req); err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "password updated"})
}
