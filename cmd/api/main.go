package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/agent-management/internal/api/http"
	"github.com/spec-kit/agent-management/internal/api/http/handlers"
	"github.com/spec-kit/agent-management/internal/config"
	"github.com/spec-kit/agent-management/internal/events"
	"github.com/spec-kit/agent-management/internal/mail"
	"github.com/spec-kit/agent-management/internal/observability"
	"github.com/spec-kit/agent-management/internal/persistence"
	"github.com/spec-kit/agent-management/internal/repository"
	"github.com/spec-kit/agent-management/internal/service"
	"github.com/spec-kit/agent-management/internal/worker"
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
	agentRepo := repository.NewAgentRepository(pool)
	collabRepo := repository.NewCollaborationRepository(pool)
	userRepo := repository.NewUserRepository(pool)

	publisher := events.NewPublisher(logger)
	notifications := service.NewNotificationService(logger, cfg.Notification)
	worker.StartNotificationWorker(publisher, notifications)

	agentService := service.NewAgentService(service.AgentDependencies{
		AgentRepo: agentRepo,
		Publisher: publisher,
		Logger:    logger,
		Workers:   cfg.Workers.Agent,
		QueueSize: cfg.Workers.QueueSize,
	})
	defer agentService.Close()

	collabService := service.NewCollaborationService(service.CollaborationDependencies{
		CollaborationRepo: collabRepo,
		Logger:            logger,
		Workers:           cfg.Workers.Collaboration,
		QueueSize:         cfg.Workers.QueueSize,
	})
	defer collabService.Close()

	mailService := service.NewMailService(service.MailDependencies{
		CollaborationRepo: collabRepo,
		Transport:         mail.NewSMTPTransport(cfg.Mail, logger),
		Logger:            logger,
		Workers:           cfg.Workers.Mail,
		QueueSize:         cfg.Workers.QueueSize,
	})
	defer mailService.Close()

	authService := service.NewAuthService(cfg.Auth, service.AuthDependencies{
		UserRepo:   userRepo,
		TokenStore: redis,
	})

	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(pg, redis, metrics),
		Agents:         handlers.NewAgentsHandler(agentService),
		Collaboration:  handlers.NewCollaborationHandler(collabService),
		Mail:           handlers.NewMailHandler(mailService),
		Auth:           handlers.NewAuthHandler(authService),
		AuthMiddleware: httptransport.AuthMiddleware(authService),
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
