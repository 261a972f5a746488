// Package controller holds helpers shared by the user and admin HTTP
// controllers.
package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/madrasa-lms/madrasa/internal/apperror"
	"github.com/madrasa-lms/madrasa/internal/dto"
	"github.com/rs/zerolog/log"
)

// RespondError maps a service error onto its HTTP status and a JSON body.
// Internal errors are logged and masked; expected errors pass their message
// through.
func RespondError(c *gin.Context, err error) {
	status := apperror.Status(err)
	if status >= 500 {
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Request failed")
		c.JSON(status, dto.ErrorResponse{Message: "internal server error"})
		return
	}
	c.JSON(status, dto.ErrorResponse{Message: err.Error()})
}

// ParseID reads a numeric path parameter. The second return is false when the
// parameter is not a valid id, in which case a 400 has already been written.
func ParseID(c *gin.Context, param string) (uint, bool) {
	val, err := strconv.ParseUint(c.Param(param), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "invalid " + param + " format"})
		return 0, false
	}
	return uint(val), true
}
