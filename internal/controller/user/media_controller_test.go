package user

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/madrasa-lms/madrasa/config"
	"github.com/madrasa-lms/madrasa/internal/auth"
	"github.com/madrasa-lms/madrasa/internal/middleware"
	"github.com/madrasa-lms/madrasa/internal/model"
	"github.com/madrasa-lms/madrasa/internal/repository"
	"github.com/madrasa-lms/madrasa/internal/service"
	"github.com/madrasa-lms/madrasa/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type mediaFixture struct {
	router *gin.Engine
	token  string
	lesson *model.Lesson
}

// newMediaTestServer stands up the authenticated media routes over an
// in-memory database and a temp-dir blob store holding a 1000-byte video.
func newMediaTestServer(t *testing.T) *mediaFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Profile{}, &model.Lesson{}))

	cfg := &config.Config{}
	cfg.Auth.JWTSecret = "test-secret"
	cfg.Auth.TokenTTL = time.Hour

	user := &model.User{Username: "amina", PasswordHash: "x", Profile: &model.Profile{Role: model.RoleStudent}}
	require.NoError(t, db.Create(user).Error)
	token, err := auth.GenerateToken(user.ID, auth.PurposeAccess, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	require.NoError(t, err)

	store, err := storage.NewFSStore(t.TempDir())
	require.NoError(t, err)
	_, err = store.Put("videos/lesson_1.mp4", bytes.NewReader(bytes.Repeat([]byte("v"), 1000)))
	require.NoError(t, err)

	lesson := &model.Lesson{Title: "Streaming", LessonType: model.LessonVideo, VideoFile: "videos/lesson_1.mp4"}
	require.NoError(t, db.Create(lesson).Error)

	lessonRepo := repository.NewLessonRepository(db)
	userRepo := repository.NewUserRepository(db)
	mediaCtrl := NewMediaController(service.NewMediaService(lessonRepo, store))

	router := gin.New()
	api := router.Group("/api/v1")
	authed := api.Group("")
	authed.Use(middleware.RequireAuth(userRepo, cfg))
	mediaCtrl.RegisterRoutes(authed)

	return &mediaFixture{router: router, token: token, lesson: lesson}
}

func (f *mediaFixture) get(t *testing.T, path, rangeHeader string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("Authorization", "Bearer "+f.token)
	if rangeHeader != "" {
		req.Header.Set("Range", rangeHeader)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func TestStreamVideoFullBody(t *testing.T) {
	f := newMediaTestServer(t)

	w := f.get(t, "/api/v1/lessons/1/stream", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1000", w.Header().Get("Content-Length"))
	assert.Equal(t, "bytes", w.Header().Get("Accept-Ranges"))
	assert.Equal(t, "video/mp4", w.Header().Get("Content-Type"))
	assert.Len(t, w.Body.Bytes(), 1000)
}

func TestDownloadVideoIgnoresRange(t *testing.T) {
	f := newMediaTestServer(t)

	// The plain video route always serves the whole file.
	w := f.get(t, "/api/v1/lessons/1/video", "bytes=100-199")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1000", w.Header().Get("Content-Length"))
	assert.Len(t, w.Body.Bytes(), 1000)
}

func TestStreamVideoBoundedRange(t *testing.T) {
	f := newMediaTestServer(t)

	w := f.get(t, "/api/v1/lessons/1/stream", "bytes=100-199")
	assert.Equal(t, http.StatusPartialContent, w.Code)
	assert.Equal(t, "100", w.Header().Get("Content-Length"))
	assert.Equal(t, "bytes 100-199/1000", w.Header().Get("Content-Range"))
	assert.Len(t, w.Body.Bytes(), 100)
}

func TestStreamVideoOpenEndedRange(t *testing.T) {
	f := newMediaTestServer(t)

	w := f.get(t, "/api/v1/lessons/1/stream", "bytes=900-")
	assert.Equal(t, http.StatusPartialContent, w.Code)
	assert.Equal(t, "bytes 900-999/1000", w.Header().Get("Content-Range"))
	assert.Len(t, w.Body.Bytes(), 100)
}

func TestStreamVideoUnsatisfiableRange(t *testing.T) {
	f := newMediaTestServer(t)

	for _, header := range []string{"bytes=1000-", "bytes=5000-6000", "bytes=200-100"} {
		w := f.get(t, "/api/v1/lessons/1/stream", header)
		assert.Equal(t, http.StatusRequestedRangeNotSatisfiable, w.Code, "header %q", header)
		assert.Equal(t, "bytes */1000", w.Header().Get("Content-Range"), "header %q", header)
	}
}

func TestStreamVideoMalformedRangeSendsFull(t *testing.T) {
	f := newMediaTestServer(t)

	w := f.get(t, "/api/v1/lessons/1/stream", "bytes=oops")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, w.Body.Bytes(), 1000)
}

func TestStreamVideoRequiresAuth(t *testing.T) {
	f := newMediaTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/lessons/1/stream", nil)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/lessons/1/stream", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	w = httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestStreamMissingMedia(t *testing.T) {
	f := newMediaTestServer(t)

	w := f.get(t, "/api/v1/lessons/1/pdf", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "media"), w.Body.String())

	w = f.get(t, "/api/v1/lessons/999/stream", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
