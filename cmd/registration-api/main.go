package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/praxis-events/registration-api/api/swagger"
	"github.com/praxis-events/registration-api/internal/handler"
	"github.com/praxis-events/registration-api/internal/middleware"
	"github.com/praxis-events/registration-api/internal/notification"
	"github.com/praxis-events/registration-api/internal/repository"
	"github.com/praxis-events/registration-api/internal/service"
	"github.com/praxis-events/registration-api/pkg/cache"
	"github.com/praxis-events/registration-api/pkg/config"
	"github.com/praxis-events/registration-api/pkg/database"
	"github.com/praxis-events/registration-api/pkg/logger"
	"github.com/praxis-events/registration-api/pkg/mailer"
	corsmiddleware "github.com/praxis-events/registration-api/pkg/middleware/cors"
	reqidmiddleware "github.com/praxis-events/registration-api/pkg/middleware/requestid"
	"github.com/praxis-events/registration-api/pkg/storage"
)

// @title Event Registration API
// @version 1.0.0
// @description Registration intake and payment-verification review
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

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to database", "error", err)
	}
	defer db.Close() //nolint:errcheck

	store, err := storage.NewLocalStorage(cfg.Uploads.StorageDir)
	if err != nil {
		logr.Sugar().Fatalw("failed to init upload storage", "error", err)
	}

	metricsSvc := service.NewMetricsService()

	var notifier notification.Notifier = notification.Noop{}
	if cfg.Mail.Enabled {
		smtp, err := mailer.NewSMTPMailer(cfg.Mail)
		if err != nil {
			logr.Sugar().Fatalw("failed to init mailer", "error", err)
		}
		notifier = smtp
	} else {
		logr.Info("mail disabled, notifications are dropped")
	}
	notifier = notification.NewInstrumented(notifier, metricsSvc.ObserveMail)

	templates := notification.NewTemplates(cfg.EventName, nil)

	regRepo := repository.NewRegistrationRepository(db)
	validator := service.NewRegistrationValidator(cfg.Uploads.MaxFileSizeBytes)
	regSvc := service.NewRegistrationService(regRepo, store, validator, notifier, templates, cfg.Mail.AdminAlert, logr)
	exportSvc := service.NewExportService(regRepo)

	var redisClient *redis.Client
	if cfg.Stats.CacheEnabled {
		redisClient, err = cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, stats cache disabled", zap.Error(err))
			redisClient = nil
		}
	}
	statsSvc := service.NewStatsService(regRepo, redisClient, cfg.Stats.CacheTTL, cfg.Stats.CacheEnabled, logr)

	authSvc := service.NewAuthService(service.AuthConfig{
		AdminEmail:        cfg.Admin.Email,
		AdminPasswordHash: cfg.Admin.PasswordHash,
		TokenSecret:       cfg.JWT.Secret,
		TokenExpiry:       cfg.JWT.Expiration,
	})

	regHandler := handler.NewRegistrationHandler(regSvc)
	exportHandler := handler.NewExportHandler(exportSvc, statsSvc)
	authHandler := handler.NewAuthHandler(authSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/registrations", regHandler.Submit)

	admin := api.Group("/registrations", middleware.JWT(authSvc))
	admin.GET("", regHandler.List)
	admin.GET("/stats", exportHandler.Stats)
	admin.GET("/export", exportHandler.Export)
	admin.GET("/:id", regHandler.Get)
	admin.PATCH("/:id/status", regHandler.UpdateStatus)
	admin.GET("/:id/file", regHandler.DownloadProof)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
