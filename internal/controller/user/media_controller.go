package user

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/madrasa-lms/madrasa/internal/apperror"
	"github.com/madrasa-lms/madrasa/internal/controller"
	"github.com/madrasa-lms/madrasa/internal/dto"
	"github.com/madrasa-lms/madrasa/internal/middleware"
	"github.com/madrasa-lms/madrasa/internal/model"
	"github.com/madrasa-lms/madrasa/internal/service"
	"github.com/madrasa-lms/madrasa/internal/storage"
	"github.com/rs/zerolog/log"
)

// MediaController streams lesson videos and PDFs, honoring single-range
// requests so video players can seek.
type MediaController struct {
	mediaSvc service.MediaService
}

func NewMediaController(mediaSvc service.MediaService) *MediaController {
	return &MediaController{mediaSvc: mediaSvc}
}

func (ctrl *MediaController) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/lessons/:lesson_id/video", ctrl.DownloadVideo)
	rg.GET("/lessons/:lesson_id/stream", ctrl.StreamVideo)
	rg.GET("/lessons/:lesson_id/pdf", ctrl.StreamPDF)
}

// DownloadVideo godoc
// @Summary Download a lesson's video in full
// @Description Always sends the whole file. Seekable playback goes through
// @Description the /stream route instead.
// @Tags media
// @Produce octet-stream
// @Security BearerAuth
// @Param lesson_id path int true "Lesson ID"
// @Success 200 {file} binary
// @Failure 404 {object} dto.ErrorResponse "Lesson or media not found"
// @Router /lessons/{lesson_id}/video [get]
func (ctrl *MediaController) DownloadVideo(c *gin.Context) {
	lessonID, ok := controller.ParseID(c, "lesson_id")
	if !ok {
		return
	}
	f, info, err := ctrl.mediaSvc.OpenLessonVideo(lessonID, middleware.CurrentRole(c))
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	defer f.Close()

	c.Header("Content-Type", info.ContentType)
	c.Header("Content-Length", fmt.Sprintf("%d", info.Size))
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, f); err != nil {
		log.Warn().Err(err).Msg("Media download interrupted")
	}
}

// StreamVideo godoc
// @Summary Stream a lesson's video
// @Description Supports single byte-range requests. Without a Range header
// @Description the full file is sent; an unsatisfiable range gets 416.
// @Tags media
// @Produce octet-stream
// @Security BearerAuth
// @Param lesson_id path int true "Lesson ID"
// @Param Range header string false "Byte range, e.g. bytes=0-1023"
// @Success 200 {file} binary
// @Success 206 {file} binary
// @Failure 404 {object} dto.ErrorResponse "Lesson or media not found"
// @Failure 416 {object} dto.ErrorResponse "Range not satisfiable"
// @Router /lessons/{lesson_id}/stream [get]
func (ctrl *MediaController) StreamVideo(c *gin.Context) {
	ctrl.stream(c, func(id uint, role model.Role) (storage.File, *service.MediaInfo, error) {
		return ctrl.mediaSvc.OpenLessonVideo(id, role)
	})
}

// StreamPDF godoc
// @Summary Download a lesson's PDF
// @Tags media
// @Produce octet-stream
// @Security BearerAuth
// @Param lesson_id path int true "Lesson ID"
// @Param Range header string false "Byte range, e.g. bytes=0-1023"
// @Success 200 {file} binary
// @Success 206 {file} binary
// @Failure 404 {object} dto.ErrorResponse "Lesson or media not found"
// @Failure 416 {object} dto.ErrorResponse "Range not satisfiable"
// @Router /lessons/{lesson_id}/pdf [get]
func (ctrl *MediaController) StreamPDF(c *gin.Context) {
	ctrl.stream(c, func(id uint, role model.Role) (storage.File, *service.MediaInfo, error) {
		return ctrl.mediaSvc.OpenLessonPDF(id, role)
	})
}

func (ctrl *MediaController) stream(c *gin.Context, open func(uint, model.Role) (storage.File, *service.MediaInfo, error)) {
	lessonID, ok := controller.ParseID(c, "lesson_id")
	if !ok {
		return
	}
	f, info, err := open(lessonID, middleware.CurrentRole(c))
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	defer f.Close()

	rng, err := service.ParseRange(c.GetHeader("Range"), info.Size)
	if err != nil {
		c.Header("Content-Range", fmt.Sprintf("bytes */%d", info.Size))
		c.JSON(apperror.Status(err), dto.ErrorResponse{Message: err.Error()})
		return
	}

	c.Header("Accept-Ranges", "bytes")
	c.Header("Content-Type", info.ContentType)

	if rng == nil {
		c.Header("Content-Length", fmt.Sprintf("%d", info.Size))
		c.Status(http.StatusOK)
		if _, err := io.Copy(c.Writer, f); err != nil {
			log.Warn().Err(err).Msg("Media stream interrupted")
		}
		return
	}

	if _, err := f.Seek(rng.Start, io.SeekStart); err != nil {
		controller.RespondError(c, err)
		return
	}
	c.Header("Content-Length", fmt.Sprintf("%d", rng.Length()))
	c.Header("Content-Range", fmt.Sprintf("bytes %d-%d/%d", rng.Start, rng.End, info.Size))
	c.Status(http.StatusPartialContent)
	if _, err := io.CopyN(c.Writer, f, rng.Length()); err != nil {
		log.Warn().Err(err).Msg("Media stream interrupted")
	}
}
