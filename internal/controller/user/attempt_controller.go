package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/madrasa-lms/madrasa/internal/controller"
	"github.com/madrasa-lms/madrasa/internal/dto"
	"github.com/madrasa-lms/madrasa/internal/middleware"
	"github.com/madrasa-lms/madrasa/internal/service"
	"github.com/rs/zerolog/log"
)

type AttemptController struct {
	attemptSvc service.AttemptService
}

func NewAttemptController(attemptSvc service.AttemptService) *AttemptController {
	return &AttemptController{attemptSvc: attemptSvc}
}

func (ctrl *AttemptController) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/tests/:test_id/attempt", ctrl.StartOrResume)
	rg.POST("/tests/:test_id/attempt", ctrl.Submit)
	rg.GET("/attempts/:attempt_id/review", ctrl.Review)
}

// StartOrResume godoc
// @Summary Start taking a test, or resume the existing attempt
// @Description Each user gets exactly one attempt per test. A completed
// @Description attempt returns the stored result instead of the questions.
// @Tags attempts
// @Produce json
// @Security BearerAuth
// @Param test_id path int true "Test ID"
// @Success 200 {object} dto.AttemptViewDTO
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Router /tests/{test_id}/attempt [get]
func (ctrl *AttemptController) StartOrResume(c *gin.Context) {
	testID, ok := controller.ParseID(c, "test_id")
	if !ok {
		return
	}
	view, err := ctrl.attemptSvc.StartOrResume(middleware.CurrentUser(c).ID, testID)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// Submit godoc
// @Summary Submit answers for the test
// @Description Grades the attempt exactly once. A second submission for the
// @Description same test is rejected with 409 and never changes the score.
// @Tags attempts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param test_id path int true "Test ID"
// @Param answers body dto.AttemptSubmitDTO true "Answers keyed by question id"
// @Success 200 {object} dto.AttemptResultDTO
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Failure 409 {object} dto.ErrorResponse "Attempt already completed"
// @Router /tests/{test_id}/attempt [post]
func (ctrl *AttemptController) Submit(c *gin.Context) {
	testID, ok := controller.ParseID(c, "test_id")
	if !ok {
		return
	}
	var req dto.AttemptSubmitDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Failed to bind AttemptSubmitDTO")
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
		return
	}
	result, err := ctrl.attemptSvc.Submit(middleware.CurrentUser(c).ID, testID, req)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Review godoc
// @Summary Review a completed attempt question by question
// @Tags attempts
// @Produce json
// @Security BearerAuth
// @Param attempt_id path int true "Attempt ID"
// @Success 200 {object} dto.AttemptReviewDTO
// @Failure 403 {object} dto.ErrorResponse "Review disabled for this test"
// @Failure 404 {object} dto.ErrorResponse "Attempt not found"
// @Failure 409 {object} dto.ErrorResponse "Attempt not completed yet"
// @Router /attempts/{attempt_id}/review [get]
func (ctrl *AttemptController) Review(c *gin.Context) {
	attemptID, ok := controller.ParseID(c, "attempt_id")
	if !ok {
		return
	}
	review, err := ctrl.attemptSvc.Review(middleware.CurrentUser(c).ID, attemptID)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, review)
}
