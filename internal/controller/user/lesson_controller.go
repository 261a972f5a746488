package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/madrasa-lms/madrasa/internal/controller"
	"github.com/madrasa-lms/madrasa/internal/middleware"
	"github.com/madrasa-lms/madrasa/internal/service"
)

type LessonController struct {
	lessonSvc service.LessonService
}

func NewLessonController(lessonSvc service.LessonService) *LessonController {
	return &LessonController{lessonSvc: lessonSvc}
}

func (ctrl *LessonController) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/lessons", ctrl.ListLessons)
	rg.GET("/lessons/:lesson_id", ctrl.GetLesson)
	rg.GET("/tests", ctrl.ListTests)
}

// ListLessons godoc
// @Summary List lessons visible to the current user
// @Description Students see visible lessons only; admins also see hidden ones.
// @Tags lessons
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.LessonSummaryDTO
// @Router /lessons [get]
func (ctrl *LessonController) ListLessons(c *gin.Context) {
	lessons, err := ctrl.lessonSvc.ListLessons(middleware.CurrentRole(c))
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, lessons)
}

// GetLesson godoc
// @Summary Get a lesson with its test summary
// @Tags lessons
// @Produce json
// @Security BearerAuth
// @Param lesson_id path int true "Lesson ID"
// @Success 200 {object} dto.LessonDetailDTO
// @Failure 403 {object} dto.ErrorResponse "Lesson is hidden"
// @Failure 404 {object} dto.ErrorResponse "Lesson not found"
// @Router /lessons/{lesson_id} [get]
func (ctrl *LessonController) GetLesson(c *gin.Context) {
	id, ok := controller.ParseID(c, "lesson_id")
	if !ok {
		return
	}
	lesson, err := ctrl.lessonSvc.GetLesson(id, middleware.CurrentRole(c))
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, lesson)
}

// ListTests godoc
// @Summary List all tests with question counts
// @Tags tests
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.TestSummaryDTO
// @Router /tests [get]
func (ctrl *LessonController) ListTests(c *gin.Context) {
	tests, err := ctrl.lessonSvc.ListTests()
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tests)
}
