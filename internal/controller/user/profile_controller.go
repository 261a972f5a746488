package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/madrasa-lms/madrasa/internal/controller"
	"github.com/madrasa-lms/madrasa/internal/dto"
	"github.com/madrasa-lms/madrasa/internal/middleware"
	"github.com/madrasa-lms/madrasa/internal/service"
)

type ProfileController struct {
	profileSvc service.ProfileService
}

func NewProfileController(profileSvc service.ProfileService) *ProfileController {
	return &ProfileController{profileSvc: profileSvc}
}

func (ctrl *ProfileController) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/profile", ctrl.GetProfile)
	rg.PUT("/profile", ctrl.UpdateProfile)
	rg.POST("/profile/password", ctrl.ChangePassword)
}

// GetProfile godoc
// @Summary Get the current user's profile and study stats
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ProfileDTO
// @Router /profile [get]
func (ctrl *ProfileController) GetProfile(c *gin.Context) {
	profile, err := ctrl.profileSvc.GetProfile(middleware.CurrentUser(c).ID)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UpdateProfile godoc
// @Summary Update email, full name, and optionally the password
// @Description Changing the password requires the current password.
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param profile body dto.ProfileUpdateDTO true "Profile data"
// @Success 200 {object} dto.ProfileDTO
// @Failure 401 {object} dto.ErrorResponse "Current password is incorrect"
// @Failure 409 {object} dto.ErrorResponse "Email already in use"
// @Router /profile [put]
func (ctrl *ProfileController) UpdateProfile(c *gin.Context) {
	var req dto.ProfileUpdateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
		return
	}
	profile, err := ctrl.profileSvc.UpdateProfile(middleware.CurrentUser(c).ID, req)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// ChangePassword godoc
// @Summary Change the current user's password
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param passwords body dto.PasswordChangeDTO true "Current and new password"
// @Success 200 {object} dto.MessageResponse
// @Failure 401 {object} dto.ErrorResponse "Current password is incorrect"
// @Router /profile/password [post]
func (ctrl *ProfileController) ChangePassword(c *gin.Context) {
	var req dto.PasswordChangeDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
		return
	}
	if err := ctrl.profileSvc.ChangePassword(middleware.CurrentUser(c).ID, req); err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "password updated"})
}
