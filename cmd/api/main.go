package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/expense-service/internal/api/http"
	"github.com/spec-kit/expense-service/internal/api/http/handlers"
	"github.com/spec-kit/expense-service/internal/auth"
	"github.com/spec-kit/expense-service/internal/config"
	"github.com/spec-kit/expense-service/internal/events"
	"github.com/spec-kit/expense-service/internal/observability"
	"github.com/spec-kit/expense-service/internal/persistence"
	"github.com/spec-kit/expense-service/internal/repository"
	"github.com/spec-kit/expense-service/internal/service"
	"github.com/spec-kit/expense-service/internal/worker"
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
	categoryRepo := repository.NewCategoryRepository(pool)
	expenseRepo := repository.NewExpenseRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()
	summaryCache := service.NewRedisSummaryCache(redis, cfg.Redis.SummaryTTL())
	worker.StartCacheWorker(dispatcher, summaryCache)

	hasher := auth.NewBcryptHasher(cfg.Auth.BcryptCost)
	authService := service.NewAuthService(*cfg, userRepo, hasher, dispatcher)
	userService := service.NewUserService(userRepo, hasher)
	categoryService := service.NewCategoryService(categoryRepo, dispatcher)
	expenseService := service.NewExpenseService(expenseRepo, categoryRepo, summaryCache, dispatcher)

	authMiddleware := auth.NewMiddleware(authService.TokenManager(), userRepo, cfg.Auth.PublicRoutes)

	metrics := observability.NewMetrics()
	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Users:          handlers.NewUsersHandler(userService),
		Categories:     handlers.NewCategoriesHandler(categoryService),
		Expenses:       handlers.NewExpensesHandler(expenseService),
		AuthMiddleware: authMiddleware,
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
