package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/govdesk/front-office-api/api/swagger"
	"github.com/govdesk/front-office-api/internal/handler"
	"github.com/govdesk/front-office-api/internal/repository"
	"github.com/govdesk/front-office-api/internal/router"
	"github.com/govdesk/front-office-api/internal/service"
	"github.com/govdesk/front-office-api/pkg/cache"
	"github.com/govdesk/front-office-api/pkg/config"
	"github.com/govdesk/front-office-api/pkg/database"
	"github.com/govdesk/front-office-api/pkg/logger"
	corsmiddleware "github.com/govdesk/front-office-api/pkg/middleware/cors"
	reqidmiddleware "github.com/govdesk/front-office-api/pkg/middleware/requestid"
	"github.com/govdesk/front-office-api/pkg/sentiment"
	"github.com/govdesk/front-office-api/pkg/sms"
	"github.com/govdesk/front-office-api/pkg/storage"
	"github.com/govdesk/front-office-api/pkg/translate"
)

// @title Front Office API
// @version 1.0.0
// @description Appointment registry for the municipal front office
// @BasePath /api/v1
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
	sugar := logr.Sugar()

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		sugar.Fatalw("failed to connect to database", "error", err)
	}
	defer db.Close()

	// The cache is an accelerator, not a dependency. Run without it when
	// Redis is unreachable.
	redisClient, err := cache.NewRedis(cfg.Redis)
	cacheEnabled := err == nil
	if err != nil {
		sugar.Warnw("redis unavailable, running without cache", "error", err)
		redisClient = nil
	}

	attachmentStore, err := storage.NewLocalStorage(cfg.Attachments.StorageDir)
	if err != nil {
		sugar.Fatalw("failed to init attachment storage", "error", err)
	}
	reportStore, err := storage.NewLocalStorage(cfg.Reports.StorageDir)
	if err != nil {
		sugar.Fatalw("failed to init report storage", "error", err)
	}

	validate := validator.New()

	appointmentRepo := repository.NewAppointmentRepository(db)
	natureRepo := repository.NewNatureRepository(db)
	clientRepo := repository.NewClientRepository(db)
	personnelRepo := repository.NewPersonnelRepository(db)
	attachmentRepo := repository.NewAttachmentRepository(db)
	userRepo := repository.NewUserRepository(db)
	statsRepo := repository.NewStatsRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)
	defer cacheRepo.Close()

	metricsSvc := service.NewMetricsService()
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Dashboard.CacheTTL, logr, cacheEnabled)

	smsClient := sms.NewClient(sms.Config{
		GatewayURL: cfg.Notifications.GatewayURL,
		APIKey:     cfg.Notifications.APIKey,
		SenderName: cfg.Notifications.SenderName,
		Timeout:    cfg.Notifications.Timeout,
	})
	notificationSvc := service.NewNotificationService(smsClient, cfg.Notifications, logr)
	notificationSvc.Start(context.Background())
	defer notificationSvc.Stop()

	translateClient := translate.NewClient(translate.Config{
		BaseURL: cfg.Translation.BaseURL,
		APIKey:  cfg.Translation.APIKey,
		Timeout: cfg.Translation.Timeout,
	})
	sentimentClient := sentiment.NewClient(sentiment.Config{
		BaseURL: cfg.Sentiment.BaseURL,
		Timeout: cfg.Sentiment.Timeout,
	})

	admissionSvc := service.NewAdmissionService(appointmentRepo, natureRepo, clientRepo, personnelRepo, notificationSvc, cfg.Engine, validate, logr)
	lifecycleSvc := service.NewLifecycleService(appointmentRepo, personnelRepo, attachmentRepo, attachmentStore, notificationSvc, cfg.Engine, logr)
	feedbackSvc := service.NewFeedbackService(appointmentRepo, translateClient, translateClient, sentimentClient, validate, logr)
	catalogSvc := service.NewCatalogService(natureRepo, validate, logr)
	clientSvc := service.NewClientService(clientRepo, validate, logr)
	personnelSvc := service.NewPersonnelService(personnelRepo, validate, logr)

	attachmentSigner := storage.NewSignedURLSigner(cfg.Attachments.SignedURLSecret, cfg.Attachments.SignedURLTTL)
	attachmentSvc := service.NewAttachmentService(attachmentRepo, appointmentRepo, attachmentStore, attachmentSigner, cfg.Attachments, logr)

	reportSigner := storage.NewSignedURLSigner(cfg.Reports.SignedURLSecret, cfg.Reports.SignedURLTTL)
	reportSvc := service.NewReportService(statsRepo, reportStore, reportSigner, logr)

	dashboardSvc := service.NewDashboardService(statsRepo, cacheSvc, cfg.Engine, cfg.Dashboard, logr)

	authSvc := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		AccessTokenSecret:  cfg.JWT.Secret,
		AccessTokenExpiry:  cfg.JWT.Expiration,
		RefreshTokenExpiry: cfg.JWT.RefreshExpiration,
		Issuer:             "front-office-api",
	})

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "database unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	router.Setup(r, cfg.APIPrefix, router.Dependencies{
		Auth:        handler.NewAuthHandler(authSvc),
		Appointment: handler.NewAppointmentHandler(admissionSvc, lifecycleSvc, feedbackSvc, dashboardSvc, metricsSvc),
		Nature:      handler.NewNatureHandler(catalogSvc),
		Client:      handler.NewClientHandler(clientSvc),
		Personnel:   handler.NewPersonnelHandler(personnelSvc),
		Attachment:  handler.NewAttachmentHandler(attachmentSvc),
		Dashboard:   handler.NewDashboardHandler(dashboardSvc, reportSvc),
		AuthService: authSvc,
		Metrics:     metricsSvc,
		Users:       userRepo,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Reports.Enabled {
		go reportJanitor(ctx, reportSvc, cfg.Reports.SignedURLTTL)
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		sugar.Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			sugar.Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	sugar.Infow("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		sugar.Errorw("graceful shutdown failed", "error", err)
	}
}

// reportJanitor removes generated report files once their download links
// have expired.
func reportJanitor(ctx context.Context, reports *service.ReportService, ttl time.Duration) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			reports.Cleanup(ttl)
		}
	}
}
