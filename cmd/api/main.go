package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/resume-server/internal/api/http"
	"github.com/spec-kit/resume-server/internal/api/http/handlers"
	"github.com/spec-kit/resume-server/internal/auth"
	"github.com/spec-kit/resume-server/internal/config"
	"github.com/spec-kit/resume-server/internal/events"
	"github.com/spec-kit/resume-server/internal/observability"
	"github.com/spec-kit/resume-server/internal/persistence"
	"github.com/spec-kit/resume-server/internal/ratelimit"
	"github.com/spec-kit/resume-server/internal/repository"
	"github.com/spec-kit/resume-server/internal/service"
	"github.com/spec-kit/resume-server/internal/worker"
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

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	resumeRepo := repository.NewResumeRepository(pool)
	positionRepo := repository.NewPositionRepository(pool)

	loginLimiter := ratelimit.New(cfg.RateLimit.Login.Max, cfg.RateLimit.Login.Window())
	apiLimiter := ratelimit.New(cfg.RateLimit.API.Max, cfg.RateLimit.API.Window())
	loginLimiter.StartSweeper(ctx, cfg.RateLimit.SweepInterval())
	apiLimiter.StartSweeper(ctx, cfg.RateLimit.SweepInterval())

	dispatcher := events.NewInMemoryDispatcher(logger)

	authService := service.NewAuthService(*cfg, userRepo)
	userService := service.NewUserService(userRepo, cfg.Auth.BcryptCost)
	resumeService := service.NewResumeService(resumeRepo, dispatcher, redis, logger)
	positionService := service.NewPositionService(positionRepo, dispatcher, redis, logger)
	notificationService := service.NewNotificationService(dispatcher, logger)
	worker.StartNotificationWorker(notificationService)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo)

	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: cfg.App.IsProduction(),
	})
	httptransport.RegisterMiddlewares(app, httptransport.MiddlewareConfig{
		Logger:         logger,
		Metrics:        metrics,
		RequestTimeout: cfg.App.RequestTimeout(),
		Development:    !cfg.App.IsProduction(),
	})

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Users:          handlers.NewUsersHandler(userService),
		Resumes:        handlers.NewResumesHandler(resumeService),
		Positions:      handlers.NewPositionsHandler(positionService),
		AuthMiddleware: authMiddleware,
		LoginLimiter:   loginLimiter,
		APILimiter:     apiLimiter,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
