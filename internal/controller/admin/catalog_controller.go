package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/madrasa-lms/madrasa/internal/controller"
	"github.com/madrasa-lms/madrasa/internal/dto"
	"github.com/madrasa-lms/madrasa/internal/service"
	"github.com/rs/zerolog/log"
)

// CatalogController is the admin CRUD surface for lessons, tests, questions
// and media uploads.
type CatalogController struct {
	catalogSvc service.AdminCatalogService
}

func NewCatalogController(catalogSvc service.AdminCatalogService) *CatalogController {
	return &CatalogController{catalogSvc: catalogSvc}
}

func (ctrl *CatalogController) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/lessons", ctrl.CreateLesson)
	rg.PUT("/lessons/:lesson_id", ctrl.UpdateLesson)
	rg.POST("/lessons/:lesson_id/media", ctrl.UploadMedia)
	rg.POST("/lessons/:lesson_id/test", ctrl.CreateTest)
	rg.PUT("/tests/:test_id", ctrl.UpdateTest)
	rg.POST("/tests/:test_id/questions", ctrl.AddQuestion)
}

// CreateLesson godoc
// @Summary (Admin) Create a lesson
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param lesson body dto.LessonCreateDTO true "Lesson data"
// @Success 201 {object} dto.LessonDetailDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Router /admin/lessons [post]
func (ctrl *CatalogController) CreateLesson(c *gin.Context) {
	var req dto.LessonCreateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Failed to bind LessonCreateDTO")
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
		return
	}
	lesson, err := ctrl.catalogSvc.CreateLesson(req)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, lesson)
}

// UpdateLesson godoc
// @Summary (Admin) Update a lesson
// @Description Omitted fields keep their stored values.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param lesson_id path int true "Lesson ID"
// @Param lesson body dto.LessonUpdateDTO true "Fields to change"
// @Success 200 {object} dto.LessonDetailDTO
// @Failure 404 {object} dto.ErrorResponse "Lesson not found"
// @Router /admin/lessons/{lesson_id} [put]
func (ctrl *CatalogController) UpdateLesson(c *gin.Context) {
	id, ok := controller.ParseID(c, "lesson_id")
	if !ok {
		return
	}
	var req dto.LessonUpdateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
		return
	}
	lesson, err := ctrl.catalogSvc.UpdateLesson(id, req)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, lesson)
}

// UploadMedia godoc
// @Summary (Admin) Upload a lesson's video or PDF
// @Tags admin
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param lesson_id path int true "Lesson ID"
// @Param kind formData string true "video or pdf"
// @Param file formData file true "Media file"
// @Success 200 {object} dto.MediaUploadResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Missing file or bad kind"
// @Failure 404 {object} dto.ErrorResponse "Lesson not found"
// @Router /admin/lessons/{lesson_id}/media [post]
func (ctrl *CatalogController) UploadMedia(c *gin.Context) {
	id, ok := controller.ParseID(c, "lesson_id")
	if !ok {
		return
	}
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "missing file upload"})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	defer file.Close()

	resp, err := ctrl.catalogSvc.UploadLessonMedia(id, c.PostForm("kind"), fileHeader.Filename, file)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CreateTest godoc
// @Summary (Admin) Attach a test to a lesson
// @Description A lesson can hold at most one test.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param lesson_id path int true "Lesson ID"
// @Param test body dto.TestCreateDTO true "Test data"
// @Success 201 {object} dto.TestSummaryDTO
// @Failure 404 {object} dto.ErrorResponse "Lesson not found"
// @Failure 409 {object} dto.ErrorResponse "Lesson already has a test"
// @Router /admin/lessons/{lesson_id}/test [post]
func (ctrl *CatalogController) CreateTest(c *gin.Context) {
	id, ok := controller.ParseID(c, "lesson_id")
	if !ok {
		return
	}
	var req dto.TestCreateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
		return
	}
	test, err := ctrl.catalogSvc.CreateTestForLesson(id, req)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, test)
}

// UpdateTest godoc
// @Summary (Admin) Update test settings
// @Description Changing prevent_review does not touch review flags already
// @Description frozen on completed attempts.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param test_id path int true "Test ID"
// @Param test body dto.TestUpdateDTO true "Fields to change"
// @Success 200 {object} dto.TestSummaryDTO
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Router /admin/tests/{test_id} [put]
func (ctrl *CatalogController) UpdateTest(c *gin.Context) {
	id, ok := controller.ParseID(c, "test_id")
	if !ok {
		return
	}
	var req dto.TestUpdateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
		return
	}
	test, err := ctrl.catalogSvc.UpdateTest(id, req)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, test)
}

// AddQuestion godoc
// @Summary (Admin) Add a multiple-choice question to a test
// @Description correct_answer is a 1-based index into the comma-delimited
// @Description choices and must address one of them.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param test_id path int true "Test ID"
// @Param question body dto.QuestionCreateDTO true "Question data"
// @Success 201 {object} dto.QuestionResponseDTO
// @Failure 400 {object} dto.ErrorResponse "correct_answer out of range"
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Router /admin/tests/{test_id}/questions [post]
func (ctrl *CatalogController) AddQuestion(c *gin.Context) {
	id, ok := controller.ParseID(c, "test_id")
	if !ok {
		return
	}
	var req dto.QuestionCreateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
		return
	}
	question, err := ctrl.catalogSvc.AddQuestion(id, req)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, question)
}
