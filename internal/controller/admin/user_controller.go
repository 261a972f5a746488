package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/madrasa-lms/madrasa/internal/controller"
	"github.com/madrasa-lms/madrasa/internal/dto"
	"github.com/madrasa-lms/madrasa/internal/service"
)

type UserController struct {
	adminUserSvc service.AdminUserService
}

func NewUserController(adminUserSvc service.AdminUserService) *UserController {
	return &UserController{adminUserSvc: adminUserSvc}
}

func (ctrl *UserController) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/dashboard", ctrl.Dashboard)
	rg.POST("/users/:user_id/promote", ctrl.Promote)
	rg.POST("/users/:user_id/demote", ctrl.Demote)
	rg.POST("/users/:user_id/password", ctrl.SetPassword)
}

// Dashboard godoc
// @Summary (Admin) Per-user progress and the full lesson catalog
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.DashboardDTO
// @Router /admin/dashboard [get]
func (ctrl *UserController) Dashboard(c *gin.Context) {
	dashboard, err := ctrl.adminUserSvc.Dashboard()
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dashboard)
}

// Promote godoc
// @Summary (Admin) Grant admin role to a user
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param user_id path int true "User ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /admin/users/{user_id}/promote [post]
func (ctrl *UserController) Promote(c *gin.Context) {
	id, ok := controller.ParseID(c, "user_id")
	if !ok {
		return
	}
	if err := ctrl.adminUserSvc.Promote(id); err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "user promoted to admin"})
}

// Demote godoc
// @Summary (Admin) Revoke a user's admin role
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param user_id path int true "User ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /admin/users/{user_id}/demote [post]
func (ctrl *UserController) Demote(c *gin.Context) {
	id, ok := controller.ParseID(c, "user_id")
	if !ok {
		return
	}
	if err := ctrl.adminUserSvc.Demote(id); err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "user demoted to student"})
}

// SetPassword godoc
// @Summary (Admin) Set a user's password without knowing the old one
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param user_id path int true "User ID"
// @Param password body dto.AdminSetPasswordDTO true "New password"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /admin/users/{user_id}/password [post]
func (ctrl *UserController) SetPassword(c *gin.Context) {
	id, ok := controller.ParseID(c, "user_id")
	if !ok {
		return
	}
	var req dto.AdminSetPasswordDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
		return
	}
	if err := ctrl.adminUserSvc.SetPassword(id, req); err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "password updated"})
}
