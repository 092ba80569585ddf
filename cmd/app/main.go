package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"makanapa/cmd"
	httpin "makanapa/internal/adapters/in/http"
	"makanapa/internal/adapters/in/telegram"
	"makanapa/internal/adapters/out/kafka"
	"makanapa/internal/adapters/out/postgres"
	"makanapa/internal/adapters/out/sessionstore"
	outtelegram "makanapa/internal/adapters/out/telegram"
	"makanapa/internal/core/ports"
	"makanapa/internal/pkg/logger"

	"github.com/labstack/gommon/log"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const shutdownTimeout = 15 * time.Second

func main() {
	configPath := flag.String("config", "", "path to the config file")
	flag.Parse()

	configs, err := cmd.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	appLogger := logger.New(configs.Log.ToLoggerOptions(configs.App.Mode))
	defer func() { _ = appLogger.Sync() }()

	if err := run(configs, appLogger); err != nil {
		appLogger.Error("application stopped with error", zap.Error(err))
		_ = appLogger.Sync()
		log.Fatalf("application stopped with error: %v", err)
	}
}

func run(configs cmd.Config, appLogger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gormDB, err := postgres.Open(configs.Database.ToDatabaseConfig())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if sqlDB, err := gormDB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}()
	if err := postgres.Migrate(gormDB); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	sessions, closeSessions, err := newSessionStore(ctx, configs.Redis)
	if err != nil {
		return err
	}
	defer closeSessions()

	events, closeEvents := newEventPublisher(configs.Kafka, appLogger)
	defer closeEvents()

	api, err := outtelegram.NewBotAPI(configs.Telegram.Token, configs.Telegram.RequestTimeout)
	if err != nil {
		return err
	}
	appLogger.Info("authorized on telegram", zap.String("bot", api.Self.UserName))

	app, err := cmd.NewCompositionRoot(configs, gormDB, cmd.Adapters{
		Notifier: outtelegram.NewNotifier(api),
		Sessions: sessions,
		Events:   events,
	}, appLogger)
	if err != nil {
		return err
	}

	// Queued events are drained on shutdown, so workers do not share the
	// signal context.
	dispatcher := app.CreateDispatcher()
	dispatcher.Start(context.Background())
	defer dispatcher.Stop()

	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	webhook := configs.Telegram.Mode == cmd.ModeWebhook
	var sink telegram.EventSink
	if webhook {
		sink = dispatcher
	}
	e := httpin.NewEcho(app.CreateHTTPServer(sink), app.HTTPRoutes(webhook))

	serverErr := make(chan error, 1)
	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTP.Port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()
	appLogger.Info("http server started", zap.String("port", configs.HTTP.Port))

	pollerDone := make(chan error, 1)
	if webhook {
		url := strings.TrimSuffix(configs.Telegram.WebhookURL, "/") + httpin.WebhookPath(configs.Telegram.WebhookSecret)
		if err := telegram.RegisterWebhook(api, url); err != nil {
			return err
		}
		appLogger.Info("webhook registered")
	} else {
		if err := telegram.DeleteWebhook(api); err != nil {
			return err
		}
		poller := telegram.NewPoller(api, dispatcher, configs.Telegram.PollTimeout(), appLogger)
		go func() { pollerDone <- poller.Run(ctx) }()
	}

	select {
	case <-ctx.Done():
		appLogger.Info("shutting down")
	case err := <-serverErr:
		return fmt.Errorf("http server failed: %w", err)
	case err := <-pollerDone:
		if err != nil {
			return fmt.Errorf("long polling failed: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		appLogger.Warn("http server shutdown failed", zap.Error(err))
	}
	return nil
}

func newSessionStore(ctx context.Context, cfg cmd.RedisConfig) (ports.SessionStore, func(), error) {
	if !cfg.Enabled {
		return sessionstore.NewMemoryStore(), func() {}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return sessionstore.NewRedisStore(client, cfg.Prefix, cfg.SessionTTL), func() { _ = client.Close() }, nil
}

func newEventPublisher(cfg cmd.KafkaConfig, appLogger *zap.Logger) (ports.OrderEventPublisher, func()) {
	brokers := kafka.ParseBrokers(cfg.Brokers)
	if len(brokers) == 0 {
		appLogger.Info("kafka brokers not configured, order events are not published")
		return kafka.NoopPublisher{}, func() {}
	}

	publisher := kafka.NewPublisher(kafka.NewWriter(brokers, cfg.Topic, cfg.WriteTimeout))
	return publisher, func() {
		if err := publisher.Close(); err != nil {
			appLogger.Warn("failed to close kafka writer", zap.Error(err))
		}
	}
}
