package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/madrasa-lms/madrasa/config"
	adminctrl "github.com/madrasa-lms/madrasa/internal/controller/admin"
	userctrl "github.com/madrasa-lms/madrasa/internal/controller/user"
	"github.com/madrasa-lms/madrasa/internal/database"
	"github.com/madrasa-lms/madrasa/internal/logger"
	"github.com/madrasa-lms/madrasa/internal/middleware"
	"github.com/madrasa-lms/madrasa/internal/model"
	"github.com/madrasa-lms/madrasa/internal/repository"
	"github.com/madrasa-lms/madrasa/internal/service"
	"github.com/madrasa-lms/madrasa/internal/storage"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title Madrasa LMS API
// @version 1.0
// @description Role-based e-learning API: lessons with streamed media, one-shot multiple-choice tests, and reviewable results.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger.Init()

	app := fx.New(
		fx.Provide(
			config.NewConfig,
			database.NewDatabase,
			NewGinEngine,
			NewBlobStore,
		),

		fx.Provide(
			repository.NewUserRepository,
			repository.NewLessonRepository,
			repository.NewTestRepository,
			repository.NewQuestionRepository,
			repository.NewAttemptRepository,
		),

		fx.Provide(
			service.NewAuthService,
			service.NewLessonService,
			service.NewMediaService,
			service.NewAttemptService,
			service.NewProfileService,
			service.NewAdminCatalogService,
			service.NewAdminUserService,
		),

		fx.Provide(
			userctrl.NewAuthController,
			userctrl.NewLessonController,
			userctrl.NewMediaController,
			userctrl.NewAttemptController,
			userctrl.NewProfileController,
			adminctrl.NewCatalogController,
			adminctrl.NewUserController,
		),

		fx.Invoke(RegisterRoutesAndStartServer),
		fx.Invoke(AutoMigrateDB),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

func NewGinEngine() *gin.Engine {
	r := gin.New()

	r.Use(middleware.RequestLogger())
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "Range"},
		ExposeHeaders:    []string{"Content-Length", "Content-Range", "Accept-Ranges"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// NewBlobStore provides lesson media storage rooted at the configured
// directory.
func NewBlobStore(cfg *config.Config) (storage.BlobStore, error) {
	return storage.NewFSStore(cfg.Media.Root)
}

// RegisterRoutesAndStartServer wires the route tree and manages the HTTP
// server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	userRepo repository.UserRepository,
	authCtrl *userctrl.AuthController,
	lessonCtrl *userctrl.LessonController,
	mediaCtrl *userctrl.MediaController,
	attemptCtrl *userctrl.AttemptController,
	profileCtrl *userctrl.ProfileController,
	catalogCtrl *adminctrl.CatalogController,
	adminUserCtrl *adminctrl.UserController,
) {
	api := router.Group("/api/v1")

	// Public: registration, login, password reset.
	authCtrl.RegisterRoutes(api)

	// Authenticated user surface.
	authed := api.Group("")
	authed.Use(middleware.RequireAuth(userRepo, cfg))
	lessonCtrl.RegisterRoutes(authed)
	mediaCtrl.RegisterRoutes(authed)
	attemptCtrl.RegisterRoutes(authed)
	profileCtrl.RegisterRoutes(authed)

	// Admin surface.
	admin := api.Group("/admin")
	admin.Use(middleware.RequireAuth(userRepo, cfg), middleware.RequireAdmin())
	catalogCtrl.RegisterRoutes(admin)
	adminUserCtrl.RegisterRoutes(admin)

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Madrasa LMS server starting on port %s", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.User{},
		&model.Profile{},
		&model.Lesson{},
		&model.Test{},
		&model.Question{},
		&model.Attempt{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed")
	return nil
}
