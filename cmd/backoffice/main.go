package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/benx421/backoffice/internal/config"
	"github.com/benx421/backoffice/internal/db"
	"github.com/benx421/backoffice/internal/events"
	"github.com/benx421/backoffice/internal/handlers"
	"github.com/benx421/backoffice/internal/middleware"
	"github.com/benx421/backoffice/internal/repository"
	"github.com/benx421/backoffice/internal/service"
	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
)

func main() {
	if err := run(); err != nil {
		slog.Error("backoffice stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Ledger, loan and card ids restart with every process; persisted rows
	// are told apart by the run that wrote them.
	runID := uuid.New()

	logger := cfg.Logger.NewLogger("backoffice").With("run_id", runID.String())
	slog.SetDefault(logger)

	logger.Info("starting backoffice api",
		"port", cfg.Server.Port,
		"log_level", cfg.Logger.Level,
		"database", cfg.Database.Enabled,
		"redis", cfg.Redis.Addr != "",
		"broker", cfg.Broker.URL != "",
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var (
		journal         service.Journal
		publisher       service.EventPublisher
		healthChecker   service.HealthChecker
		idempotencyRepo middleware.IdempotencyRepository
	)

	if cfg.Database.Enabled {
		database, err := db.Connect(ctx, &cfg.Database, logger)
		if err != nil {
			return err
		}
		defer database.Close()

		if err := database.Migrate(ctx); err != nil {
			return err
		}

		journal = repository.NewJournalRepository(database, runID)
		healthChecker = database

		if cfg.Redis.Addr == "" {
			keys := repository.NewIdempotencyRepository(database, runID)
			idempotencyRepo = keys
			go purgeIdempotencyKeys(ctx, keys, cfg.Redis.IdempotencyTTL, logger)
		}
	}

	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer client.Close()

		if err := client.Ping(ctx).Err(); err != nil {
			return err
		}
		logger.Info("idempotency keys cached in redis", "addr", cfg.Redis.Addr, "ttl", cfg.Redis.IdempotencyTTL)
		idempotencyRepo = repository.NewRedisIdempotencyRepository(client, runID, cfg.Redis.IdempotencyTTL)
	}

	if cfg.Broker.URL != "" {
		conn, err := amqp.DialConfig(cfg.Broker.URL, amqp.Config{
			Properties: amqp.Table{"connection_name": "backoffice_publisher"},
		})
		if err != nil {
			return err
		}
		defer conn.Close()

		ch, err := conn.Channel()
		if err != nil {
			return err
		}
		defer ch.Close()

		p, err := events.NewPublisher(ch, cfg.Broker.Exchange)
		if err != nil {
			return err
		}
		logger.Info("publishing events", "exchange", cfg.Broker.Exchange)
		publisher = p
	}

	engine := service.NewEngine(service.NewIDAllocator(), nil, nil)
	bank := service.NewBank(engine, journal, publisher, logger)
	handler := handlers.NewHandler(bank, bank, bank, bank, healthChecker, logger)

	router, err := handlers.NewRouter(handler, idempotencyRepo, cfg, logger)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("server listening", "address", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server stopped")
	return nil
}

// purgeIdempotencyKeys clears responses cached by earlier runs at startup,
// then expires this run's responses the way Redis TTLs expire them, checking
// once per hour until ctx is done.
func purgeIdempotencyKeys(ctx context.Context, repo repository.IdempotencyRepository, ttl time.Duration, logger *slog.Logger) {
	purge := func(now time.Time) {
		deleted, err := repo.DeleteOlderThan(ctx, now.Add(-ttl))
		if err != nil {
			logger.Error("failed to purge idempotency keys", "error", err)
			return
		}
		if deleted > 0 {
			logger.Info("purged idempotency keys", "deleted", deleted)
		}
	}

	purge(time.Now())

	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			purge(now)
		}
	}
}
