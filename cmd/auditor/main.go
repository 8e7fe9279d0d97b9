package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/benx421/backoffice/internal/config"
	"github.com/benx421/backoffice/internal/events"
	"github.com/benx421/backoffice/internal/repository"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

func main() {
	if err := run(); err != nil {
		slog.Error("auditor stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.Broker.URL == "" {
		return errors.New("AMQP_URL is required for the auditor")
	}

	logger := cfg.Logger.NewLogger("auditor")
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, err := mongo.Connect(options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		return err
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Disconnect(disconnectCtx); err != nil {
			logger.Error("failed to disconnect mongo", "error", err)
		}
	}()

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		return err
	}
	logger.Info("connected to mongo", "database", cfg.Mongo.Database)

	audit := repository.NewAuditRepository(client, cfg.Mongo.Database)

	conn, err := amqp.DialConfig(cfg.Broker.URL, amqp.Config{
		Properties: amqp.Table{"connection_name": "backoffice_auditor"},
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

	consumer, err := events.NewConsumer(ch, cfg.Broker.Exchange, cfg.Broker.Queue, "#", logger)
	if err != nil {
		return err
	}

	err = consumer.Run(ctx, "auditor", func(ctx context.Context, event *events.Event) error {
		if err := audit.Save(ctx, event); err != nil {
			return err
		}
		logger.Debug("event audited", "event_id", event.ID, "type", event.Type, "account_id", event.AccountID)
		return nil
	})

	logger.Info("auditor stopped")
	return err
}
