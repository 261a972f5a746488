package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/madrasa-lms/madrasa/config"
	"github.com/madrasa-lms/madrasa/internal/auth"
	"github.com/madrasa-lms/madrasa/internal/dto"
	"github.com/madrasa-lms/madrasa/internal/model"
	"github.com/madrasa-lms/madrasa/internal/repository"
)

const userContextKey = "currentUser"

// RequireAuth validates the bearer token and loads the authenticated user
// (with profile) into the request context.
func RequireAuth(userRepo repository.UserRepository, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "missing or malformed Authorization header"})
			return
		}

		userID, err := auth.ParseToken(token, auth.PurposeAccess, cfg.Auth.JWTSecret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "invalid or expired token"})
			return
		}

		user, err := userRepo.FindByID(userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "account no longer exists"})
			return
		}

		c.Set(userContextKey, user)
		c.Next()
	}
}

// RequireAdmin must run after RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !CurrentUser(c).IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.ErrorResponse{Message: "admin access required"})
			return
		}
		c.Next()
	}
}

// CurrentUser returns the user loaded by RequireAuth. It panics on routes
// that skipped the middleware, which is a wiring bug.
func CurrentUser(c *gin.Context) *model.User {
	return c.MustGet(userContextKey).(*model.User)
}

// CurrentRole resolves the effective role of the authenticated user.
func CurrentRole(c *gin.Context) model.Role {
	return model.RoleOf(CurrentUser(c))
}
