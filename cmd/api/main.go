package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/registration-service/internal/api/http"
	"github.com/spec-kit/registration-service/internal/api/http/handlers"
	"github.com/spec-kit/registration-service/internal/auth"
	"github.com/spec-kit/registration-service/internal/config"
	"github.com/spec-kit/registration-service/internal/domain"
	"github.com/spec-kit/registration-service/internal/events"
	"github.com/spec-kit/registration-service/internal/observability"
	"github.com/spec-kit/registration-service/internal/persistence"
	"github.com/spec-kit/registration-service/internal/repository"
	"github.com/spec-kit/registration-service/internal/service"
	"github.com/spec-kit/registration-service/internal/ticket"
	"github.com/spec-kit/registration-service/internal/worker"
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

	var (
		kv    repository.KV
		pg    *persistence.Postgres
		redis *persistence.Redis
	)
	switch cfg.Storage.Backend {
	case "postgres":
		pg, err = persistence.NewPostgres(ctx, cfg.Postgres, logger)
		if err != nil {
			logger.Fatal("failed to connect postgres", zap.Error(err))
		}
		defer pg.Close()
		if cfg.Postgres.RunMigrations {
			if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
				logger.Fatal("failed to run migrations", zap.Error(err))
			}
		}
		if pg.PoolHandle() == nil {
			logger.Fatal("postgres backend selected but POSTGRES_DSN not set")
		}
		kv = repository.NewPostgresKV(pg.PoolHandle())
	case "memory":
		logger.Warn("using in-memory storage; registrations will not survive restarts")
		kv = repository.NewMemoryKV()
	default:
		redis = persistence.NewRedis(cfg.Redis, logger)
		defer redis.Close()
		kv = repository.NewRedisKV(redis)
	}

	store := repository.NewRegistrationStore(kv, cfg.Storage.Key, logger)

	staffPIN, err := auth.NewPlaintextVerifier(cfg.Auth.StaffPIN, cfg.Auth.BcryptCost)
	if err != nil {
		logger.Fatal("failed to init staff PIN policy", zap.Error(err))
	}
	adminPassword, err := auth.NewPlaintextVerifier(cfg.Auth.AdminPassword, cfg.Auth.BcryptCost)
	if err != nil {
		logger.Fatal("failed to init admin password policy", zap.Error(err))
	}
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes)
	adminMiddleware := auth.NewAdminMiddleware(tokens)

	dispatcher := events.NewInMemoryDispatcher(logger)
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	pricing := cfg.Pricing
	prices := func() domain.PriceTable {
		return domain.PriceTable{
			domain.TicketTypeSolo:  pricing.SoloPrice,
			domain.TicketTypeGuest: pricing.GuestPrice,
		}
	}

	registrationService := service.NewRegistrationService(service.RegistrationDependencies{
		Store:      store,
		Prices:     prices,
		StaffPIN:   staffPIN,
		Dispatcher: dispatcher,
		Form:       cfg.Form,
	})
	ledgerService := service.NewLedgerService(service.LedgerDependencies{
		Store:      store,
		Renderer:   ticket.NewQRRenderer(256),
		Dispatcher: dispatcher,
	})
	checkinService := service.NewCheckinService(service.CheckinDependencies{
		Store:      store,
		Dispatcher: dispatcher,
	})
	exportService := service.NewExportService(store, cfg.Export.Columns)

	app := fiber.New(fiber.Config{BodyLimit: 8 << 20})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	healthHandler := handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis)
	registrationsHandler := handlers.NewRegistrationsHandler(registrationService, metrics)
	adminHandler := handlers.NewAdminHandler(handlers.AdminDependencies{
		Registrations: registrationService,
		Ledger:        ledgerService,
		Export:        exportService,
		Tokens:        tokens,
		AdminPassword: adminPassword,
		Metrics:       metrics,
	})
	checkinHandler := handlers.NewCheckinHandler(checkinService, metrics)

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:          healthHandler,
		Registrations:   registrationsHandler,
		Admin:           adminHandler,
		Checkin:         checkinHandler,
		AdminMiddleware: adminMiddleware,
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
