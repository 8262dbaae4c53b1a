package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	apigraphql "github.com/spec-kit/eats-service/internal/api/graphql"
	httptransport "github.com/spec-kit/eats-service/internal/api/http"
	"github.com/spec-kit/eats-service/internal/api/http/handlers"
	"github.com/spec-kit/eats-service/internal/auth"
	"github.com/spec-kit/eats-service/internal/config"
	"github.com/spec-kit/eats-service/internal/events"
	"github.com/spec-kit/eats-service/internal/observability"
	"github.com/spec-kit/eats-service/internal/persistence"
	"github.com/spec-kit/eats-service/internal/repository"
	"github.com/spec-kit/eats-service/internal/service"
	"github.com/spec-kit/eats-service/internal/worker"
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
	verificationRepo := repository.NewVerificationRepository(pool)

	dispatcher := events.NewInMemoryDispatcher(logger)
	mailService := service.NewMailService(cfg.App.Name, cfg.Mail, logger)
	accountService := service.NewAccountService(*cfg, service.AccountDependencies{
		UserRepo:         userRepo,
		VerificationRepo: verificationRepo,
		Mailer:           mailService,
		Dispatcher:       dispatcher,
		Logger:           logger,
	})

	notificationService := service.NewNotificationService(dispatcher, logger)
	worker.StartNotificationWorker(notificationService)

	identityMiddleware := auth.NewIdentityMiddleware(accountService.TokenManager(), accountService, cfg.Auth.HeaderName)

	schema, err := apigraphql.NewSchema(accountService)
	if err != nil {
		logger.Fatal("failed to build schema", zap.Error(err))
	}

	metrics := observability.NewMetrics()
	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:             handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		GraphQL:            handlers.NewGraphQLHandler(schema),
		IdentityMiddleware: identityMiddleware,
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
