package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/onboarding-api/internal/api/http"
	"github.com/spec-kit/onboarding-api/internal/api/http/handlers"
	"github.com/spec-kit/onboarding-api/internal/auth"
	"github.com/spec-kit/onboarding-api/internal/config"
	"github.com/spec-kit/onboarding-api/internal/events"
	"github.com/spec-kit/onboarding-api/internal/observability"
	"github.com/spec-kit/onboarding-api/internal/persistence"
	"github.com/spec-kit/onboarding-api/internal/repository"
	"github.com/spec-kit/onboarding-api/internal/repository/memstore"
	"github.com/spec-kit/onboarding-api/internal/service"
	"github.com/spec-kit/onboarding-api/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	metrics := observability.NewMetrics()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if pg.Enabled() && cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(cfg.Postgres.DSN, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	var (
		userRepo        repository.UserRepository
		applicationRepo repository.ApplicationRepository
	)
	readiness := map[string]handlers.Pinger{"redis": redis}
	if pg.Enabled() {
		pool := pg.PoolHandle()
		userRepo = repository.NewUserRepository(pool)
		applicationRepo = repository.NewApplicationRepository(pool)
		readiness["postgres"] = pg
	} else {
		logger.Warn("using in-memory stores; data is lost on restart")
		userRepo = memstore.NewUserStore(nil)
		applicationRepo = memstore.NewApplicationStore(nil)
	}

	dispatcher := events.NewInMemoryDispatcher()
	notificationService := service.NewNotificationService(dispatcher, logger, metrics, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	authService, err := service.NewAuthService(*cfg, service.AuthDependencies{
		UserRepo:   userRepo,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	if err != nil {
		logger.Fatal("failed to init auth service", zap.Error(err))
	}
	applicationService := service.NewApplicationService(service.ApplicationDependencies{
		ApplicationRepo: applicationRepo,
		Dispatcher:      dispatcher,
		Logger:          logger,
	})
	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager())

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ErrorHandler: httptransport.ErrorHandler(logger, cfg.App.IsDevelopment()),
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout(), cfg.App.IsDevelopment())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, readiness),
		Applications:   handlers.NewApplicationsHandler(applicationService),
		Admin:          handlers.NewAdminApplicationsHandler(applicationService),
		Auth:           handlers.NewAuthHandler(authService),
		AuthMiddleware: authMiddleware,
		AuthRateLimit:  httptransport.RateLimit(redis.Client, "auth", cfg.RateLimit.AuthRequests, cfg.RateLimit.AuthWindow, logger),
		Metrics:        metrics.Handler(),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.Shutdown(); err != nil {
		logger.Warn("shutdown", zap.Error(err))
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
