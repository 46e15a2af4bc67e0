package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/nexusmededucacao/nexusmed-contratos/api/swagger"
	"github.com/nexusmededucacao/nexusmed-contratos/internal/handler"
	"github.com/nexusmededucacao/nexusmed-contratos/internal/middleware"
	"github.com/nexusmededucacao/nexusmed-contratos/internal/models"
	"github.com/nexusmededucacao/nexusmed-contratos/internal/pdf"
	"github.com/nexusmededucacao/nexusmed-contratos/internal/repository"
	"github.com/nexusmededucacao/nexusmed-contratos/internal/service"
	"github.com/nexusmededucacao/nexusmed-contratos/pkg/cache"
	"github.com/nexusmededucacao/nexusmed-contratos/pkg/config"
	"github.com/nexusmededucacao/nexusmed-contratos/pkg/database"
	"github.com/nexusmededucacao/nexusmed-contratos/pkg/jobs"
	"github.com/nexusmededucacao/nexusmed-contratos/pkg/logger"
	"github.com/nexusmededucacao/nexusmed-contratos/pkg/mailer"
	corsmiddleware "github.com/nexusmededucacao/nexusmed-contratos/pkg/middleware/cors"
	reqidmiddleware "github.com/nexusmededucacao/nexusmed-contratos/pkg/middleware/requestid"
	"github.com/nexusmededucacao/nexusmed-contratos/pkg/storage"
)

// @title NexusMed Portal de Contratos
// @version 1.0.0
// @description Contract generation and electronic signing for post-graduation courses
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, catalog cache disabled", "error", err)
		redisClient = nil
	}

	store, err := storage.NewLocalStorage(cfg.Storage.BaseDir)
	if err != nil {
		logr.Sugar().Fatalw("failed to init storage", "error", err)
	}
	signer := storage.NewSignedURLSigner(cfg.Storage.SignedURLSecret, cfg.Storage.SignedURLTTL)

	validate := validator.New()

	userRepo := repository.NewUserRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	contractRepo := repository.NewContractRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient)

	metricsSvc := service.NewMetricsService()

	authSvc := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		Secret:     cfg.JWT.Secret,
		Expiration: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	studentSvc := service.NewStudentService(studentRepo, validate, logr)
	userSvc := service.NewUserService(userRepo, validate, logr)
	courseSvc := service.NewCourseService(courseRepo, cacheRepo, cfg.Catalog.CacheTTL, metricsSvc, validate, logr)

	sender := mailer.NewSendGridSender(cfg.Email.APIKey, cfg.Email.FromName, cfg.Email.FromAddress, cfg.Email.SendTimeout)
	emailQueue := jobs.NewQueue("signing-email", service.NewSigningEmailHandler(sender, contractRepo, metricsSvc, logr), jobs.QueueConfig{
		Workers:    cfg.Email.Workers,
		MaxRetries: cfg.Email.MaxRetries,
		RetryDelay: 30 * time.Second,
		Logger:     logr,
	})

	converter := pdf.NewSofficeConverter(cfg.Converter.Binary, cfg.Converter.Timeout)

	contractSvc := service.NewContractService(
		contractRepo,
		studentRepo,
		courseRepo,
		userRepo,
		converter,
		store,
		emailQueue,
		metricsSvc,
		validate,
		logr,
		service.ContractConfig{
			PathPrefix:     cfg.Storage.PathPrefix,
			RetryBackoff:   cfg.Storage.RetryBackoff,
			SigningBaseURL: cfg.Signing.BaseURL,
			BalancePolicy:  cfg.Signing.BalancePolicy,
		},
	)

	signingSvc := service.NewSigningService(contractRepo, userRepo, store, signer, metricsSvc, logr, service.SigningConfig{
		BaseURL:   cfg.Signing.BaseURL,
		NameMatch: cfg.Signing.NameMatch,
	})

	authHandler := handler.NewAuthHandler(authSvc)
	studentHandler := handler.NewStudentHandler(studentSvc)
	courseHandler := handler.NewCourseHandler(courseSvc)
	contractHandler := handler.NewContractHandler(contractSvc)
	signingHandler := handler.NewSigningHandler(signingSvc)
	userHandler := handler.NewUserHandler(userSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc, db, redisClient)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	emailQueue.Start(ctx)
	defer emailQueue.Stop()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Public signing surface: the access token in the query string is the
	// only credential.
	signing := r.Group("/Assinatura")
	{
		signing.GET("", signingHandler.View)
		signing.POST("", signingHandler.Sign)
		signing.GET("/documento", signingHandler.Document)
	}

	api := r.Group(cfg.APIPrefix)
	{
		api.POST("/auth/login", authHandler.Login)

		protected := api.Group("")
		protected.Use(middleware.JWT(authSvc))
		{
			protected.GET("/auth/me", authHandler.Me)

			protected.GET("/students", studentHandler.List)
			protected.POST("/students", studentHandler.Upsert)
			protected.GET("/students/by-cpf/:cpf", studentHandler.FindByCPF)
			protected.GET("/students/:id", studentHandler.Get)
			protected.PUT("/students/:id", studentHandler.Update)

			admin := middleware.RequireRoles(models.RoleAdmin)
			protected.GET("/courses", courseHandler.Catalog)
			protected.POST("/courses", admin, courseHandler.CreateCourse)
			protected.PUT("/courses/:id", admin, courseHandler.UpdateCourse)
			protected.DELETE("/courses/:id", admin, courseHandler.DeactivateCourse)
			protected.GET("/courses/:id/cohorts", courseHandler.ListCohorts)
			protected.POST("/courses/:id/cohorts", admin, courseHandler.CreateCohort)
			protected.PUT("/cohorts/:id", admin, courseHandler.UpdateCohort)
			protected.DELETE("/cohorts/:id", admin, courseHandler.DeactivateCohort)

			protected.GET("/users", admin, userHandler.List)
			protected.POST("/users", admin, userHandler.Create)
			protected.PUT("/users/:id/status", admin, userHandler.SetStatus)

			protected.POST("/contracts/preview-schedule", contractHandler.PreviewSchedule)
			protected.POST("/contracts", contractHandler.Create)
			protected.GET("/contracts", contractHandler.List)
			protected.GET("/contracts/:id", contractHandler.Get)
			protected.POST("/contracts/:id/resend-email", contractHandler.ResendEmail)
			protected.POST("/contracts/:id/regenerate", contractHandler.RegenerateDocument)
			protected.GET("/contracts/:id/schedule/export", contractHandler.ExportSchedule)
		}
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: r,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Sugar().Infow("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("shutdown failed", "error", err)
	}
}
