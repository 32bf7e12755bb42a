package main

import (
	"context"
	"go-jobboard-web/config"
	_ "go-jobboard-web/docs" // Important for Swagger
	v1 "go-jobboard-web/internal/delivery/http/v1"
	"go-jobboard-web/internal/domain"
	"go-jobboard-web/internal/repository/restapi"
	"go-jobboard-web/internal/repository/session"
	"go-jobboard-web/internal/usecase"
	"go-jobboard-web/pkg/email"
	"go-jobboard-web/pkg/logger"
	"go-jobboard-web/pkg/redis"
	"go-jobboard-web/pkg/security"
	"go-jobboard-web/pkg/validation"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// @title           JobBoard Web API
// @version         1.0
// @description     JSON endpoints of the job board front-end. The HTML site is served from the same process.
// @host            localhost:8080
// @BasePath        /v1
// @securityDefinitions.basic BasicAuth
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init(cfg.LogLevel)
	logger.Log.Info("Starting job board web", "port", cfg.Port, "api", cfg.APIBaseURL)

	rootCtx, stop := context.WithCancel(context.Background())
	defer stop()

	// 3. Setup Session Store (Redis, or in-memory fallback)
	var store domain.SessionStore
	if err := redis.Initialize(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
		logger.Log.Warn("Redis unavailable, using in-memory sessions", "error", err)
		mem := session.NewMemoryStore()
		mem.StartSweeper(rootCtx, 10*time.Minute)
		store = mem
	} else {
		store = session.NewRedisStore(redis.Client(), cfg.SessionTTL)
		defer func() {
			if err := redis.Close(); err != nil {
				logger.Log.Error("Failed to close redis", "error", err)
			}
		}()
	}
	tokens := session.NewTokenCodec(cfg.SessionSecret, cfg.SessionTTL)
	logins := security.NewLoginTracker(security.LoginTrackerConfig{
		MaxAttempts:   cfg.LoginMaxAttempts,
		AttemptWindow: cfg.LoginAttemptWindow,
		BlockDuration: cfg.LoginBlockDuration,
	})

	// 4. Setup Repositories
	api := restapi.NewClient(cfg.APIBaseURL, cfg.APIOrigin, nil)
	jobRepo := restapi.NewJobRepository(api)
	categoryRepo := restapi.NewCategoryRepository(api)
	applicationRepo := restapi.NewApplicationRepository(api)
	interviewRepo := restapi.NewInterviewRepository(api)
	savedJobRepo := restapi.NewSavedJobRepository(api)
	companyRepo := restapi.NewCompanyRepository(api)

	// 5. Setup Email Service
	emailService := email.NewEmailService(cfg)
	if !emailService.IsConfigured() {
		logger.Log.Warn("Email service not fully configured - contact messages will only be logged")
	}

	// 6. Setup UseCases
	validate := validation.New()
	jobUC := usecase.NewJobUsecase(jobRepo, categoryRepo, cfg.SimilarJobsLimit, logger.Log)
	applicationUC := usecase.NewApplicationUsecase(applicationRepo, interviewRepo, api, validate, logger.Log)
	companyUC := usecase.NewCompanyUsecase(companyRepo, jobRepo, store, validate, cfg.SessionTTL, logger.Log)
	savedJobUC := usecase.NewSavedJobUsecase(savedJobRepo, validate, logger.Log)
	contactUC := usecase.NewContactUsecase(emailService, validate, logger.Log)

	checks := map[string]usecase.HealthCheck{}
	if redis.Client() != nil {
		checks["redis"] = redis.HealthCheck
	}
	healthUC := usecase.NewHealthUsecase(checks)

	// 7. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		JobUC:         jobUC,
		ApplicationUC: applicationUC,
		CompanyUC:     companyUC,
		SavedJobUC:    savedJobUC,
		ContactUC:     contactUC,
		Health:        healthUC,
		Sessions:      tokens,
		Logins:        logins,
		SessionStore:  store,
		Config:        cfg,
	})

	// 8. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")
	stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
