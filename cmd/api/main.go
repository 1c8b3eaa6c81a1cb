package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"gfi/internal/config"
	"gfi/internal/database"
	"gfi/internal/domain/assessment"
	"gfi/internal/domain/friction"
	"gfi/internal/domain/lead"
	"gfi/internal/domain/snapshot"
	"gfi/internal/middleware"
	"gfi/internal/notify"
	jwtsvc "gfi/internal/pkg/jwt"
	"gfi/internal/pkg/logging"
	"gfi/internal/pkg/response"
)

func main() {
	config.LoadDotEnv()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	presets, err := config.LoadPresets(cfg.PresetsFile)
	if err != nil {
		logger.Fatal("presets", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, leads, closeStore := openStore(ctx, cfg, logger)
	defer closeStore()

	notifier := notify.NewService(newSender(cfg, logger), logger,
		notify.WithResultHook(assessment.DispatchRecorder(store, logger)))

	svc := assessment.NewService(assessment.Deps{
		Presets:       presets,
		Links:         snapshot.Links{Diagnostic: cfg.PayLinkDiagnostic, Audit: cfg.PayLinkAudit},
		Store:         store,
		Notifier:      notifier,
		FollowUpDelay: cfg.FollowUpDelay,
		Logger:        logger,
	})

	if cfg.Strict() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := newRouter(cfg, logger, presets, svc, leads)

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("listening", zap.String("addr", cfg.ListenAddr), zap.String("env", cfg.AppEnv))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownPeriod)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}

	// follow-ups are handed to the provider with a delivery time, so this
	// only waits for in-flight API calls
	notifier.Wait()
}

func newRouter(cfg *config.Config, logger *zap.Logger, presets friction.Presets, svc *assessment.Service, leads *lead.Service) *gin.Engine {
	r := gin.New()
	r.Use(middleware.ErrorLogger(logger))
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.CORS(cfg.CORSOrigins))

	r.GET("/healthz", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{
			"status":       "ok",
			"persistence":  leads != nil,
			"notification": cfg.NotificationConfigured(),
			"roles":        len(presets.Roles),
		})
	})

	v1 := r.Group("/api/v1")
	assessment.RegisterRoutes(v1, assessment.NewHandler(svc))

	admin := v1.Group("/admin")
	admin.Use(middleware.JWTAuth(jwtsvc.New(cfg.AdminJWTSecret, cfg.AdminTokenTTL)))
	admin.Use(middleware.AdminOnly())
	if leads != nil {
		lead.RegisterAdminRoutes(admin, lead.NewHandler(leads))
	} else {
		admin.Any("/*path", func(c *gin.Context) {
			response.Error(c, http.StatusServiceUnavailable, "STORAGE_UNAVAILABLE", "Lead storage is not configured")
		})
	}

	return r
}

// openStore connects the lead store. Outside strict mode a missing or
// unreachable database degrades to a sink that reports every write as failed.
func openStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (assessment.Store, *lead.Service, func()) {
	noop := func() {}

	if !cfg.PersistenceConfigured() {
		logger.Warn("DATABASE_URL not set; leads will not be stored")
		return lead.DisabledSink{}, nil, noop
	}

	db, err := database.Connect(cfg.DatabaseURL, logger)
	if err == nil {
		err = database.Migrate(ctx, db, logger)
	}
	if err != nil {
		if cfg.Strict() {
			logger.Fatal("database", zap.Error(err))
		}
		logger.Warn("database unavailable; leads will not be stored", zap.Error(err))
		return lead.DisabledSink{}, nil, noop
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("database handle", zap.Error(err))
	}

	leads := lead.NewService(lead.NewRepository(db))
	return leads, leads, func() { _ = sqlDB.Close() }
}

func newSender(cfg *config.Config, logger *zap.Logger) notify.Sender {
	if !cfg.NotificationConfigured() {
		logger.Warn("RESEND_API_KEY or MAIL_FROM not set; e-mails will not be sent")
		return notify.Disabled{}
	}
	return notify.NewResendSender(cfg.ResendAPIKey, cfg.MailFrom, cfg.MailRate)
}
