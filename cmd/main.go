package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/dungnh/jobhub/config"
	"github.com/dungnh/jobhub/database"
	_ "github.com/dungnh/jobhub/docs" // Swagger docs - auto-generated
	candidatectrl "github.com/dungnh/jobhub/internal/controller/candidate"
	employerctrl "github.com/dungnh/jobhub/internal/controller/employer"
	"github.com/dungnh/jobhub/internal/logger"
	"github.com/dungnh/jobhub/internal/middleware"
	"github.com/dungnh/jobhub/internal/model"
	"github.com/dungnh/jobhub/internal/repository"
	"github.com/dungnh/jobhub/internal/service"
)

// @title JobHub Assessment API
// @version 1.0
// @description Assessment lifecycle and scoring service for the JobHub portal: employer-authored timed assessments, candidate attempts with proctoring logs, automatic scoring.
// @contact.name API Support
// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
func main() {
	logger.Init()

	app := fx.New(
		fx.Provide(
			config.NewConfig,
			database.NewDatabase,
			NewGinEngine,
		),

		// Repositories
		fx.Provide(
			repository.NewAssessmentRepository,
			repository.NewAttemptRepository,
			repository.NewApplicationRepository,
		),

		// Services
		fx.Provide(
			service.NewCloudinaryStorage,
			service.NewAssessmentService,
			service.NewCandidateAssessmentService,
			service.NewAttemptService,
			service.NewResultsService,
			service.NewExpirySweeper,
		),

		// Controllers
		fx.Provide(
			employerctrl.NewAssessmentController,
			candidatectrl.NewAssessmentController,
			candidatectrl.NewAttemptController,
		),

		fx.Invoke(RegisterRoutesAndStartServer),
		fx.Invoke(RunExpirySweeper),
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

	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Actor-ID", "X-Actor-Role"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer mounts the API groups and manages the HTTP
// server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	employerCtrl *employerctrl.AssessmentController,
	candidateAssessmentCtrl *candidatectrl.AssessmentController,
	candidateAttemptCtrl *candidatectrl.AttemptController,
) {
	employerGroup := router.Group("/api/v1/employer", middleware.RequireActor(middleware.RoleEmployer))
	{
		assessments := employerGroup.Group("/assessments")
		assessments.POST("", employerCtrl.CreateAssessment)
		assessments.GET("", employerCtrl.ListAssessments)
		assessments.GET("/:id", employerCtrl.GetAssessment)
		assessments.PUT("/:id", employerCtrl.UpdateAssessment)
		assessments.DELETE("/:id", employerCtrl.DeleteAssessment)
		assessments.GET("/:id/results", employerCtrl.AssessmentResults)

		employerGroup.GET("/attempts/:attempt_id", employerCtrl.AttemptDetail)
	}

	candidateGroup := router.Group("/api/v1/candidate", middleware.RequireActor(middleware.RoleCandidate))
	{
		candidateGroup.GET("/assessments", candidateAssessmentCtrl.AvailableAssessments)
		candidateGroup.GET("/assessments/:id", candidateAssessmentCtrl.GetAssessment)

		attempts := candidateGroup.Group("/attempts")
		attempts.POST("/start", candidateAttemptCtrl.StartAttempt)
		attempts.POST("/answer", candidateAttemptCtrl.SubmitAnswer)
		attempts.POST("/upload", candidateAttemptCtrl.UploadAnswer)
		attempts.POST("/violation", candidateAttemptCtrl.RecordViolation)
		attempts.POST("/submit", candidateAttemptCtrl.SubmitAssessment)
		attempts.GET("/:attempt_id/result", candidateAttemptCtrl.ResultByAttempt)

		candidateGroup.GET("/applications/:application_id/result", candidateAttemptCtrl.ResultByApplication)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("JobHub assessment API starting on port %s", cfg.Server.Port)
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

func RunExpirySweeper(lc fx.Lifecycle, sweeper *service.ExpirySweeper) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return sweeper.Start()
		},
		OnStop: func(ctx context.Context) error {
			sweeper.Stop()
			return nil
		},
	})
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.Job{},
		&model.Application{},
		&model.Assessment{},
		&model.AssessmentQuestion{},
		&model.AssessmentAttempt{},
		&model.AttemptAnswer{},
		&model.AttemptViolation{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
