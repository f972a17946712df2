package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lmittmann/tint"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/segmentio/kafka-go"
	"github.com/spf13/pflag"

	"github.com/SlavaShagalov/rental-booking/internal/outbox"
	"github.com/SlavaShagalov/rental-booking/internal/pkg/app"
)

func main() {
	var configPath string
	pflag.StringVarP(&configPath, "config", "c", "configs/outbox.yaml", "Config file path")
	pflag.Parse()

	config, err := app.ReadLocalConfig(configPath)
	if err != nil {
		panic(err)
	}

	logger := slog.New(tint.NewHandler(os.Stdout, &tint.Options{Level: slog.Level(config.Logging.Level)}))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, config.DB.ConnectionString)
	if err != nil {
		panic(err)
	}
	defer pool.Close()

	kafkaWriter := &kafka.Writer{
		Addr:                   kafka.TCP(config.Kafka.Addresses...),
		Topic:                  config.Kafka.Topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
	}
	defer kafkaWriter.Close()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := outbox.NewMetrics(registry)

	repo := outbox.NewPgxRepository(pool, logger)
	publisher := outbox.NewKafkaPublisher(kafkaWriter, outbox.BreakerConfig{
		MaxFails: config.Outbox.MaxFails,
		Timeout:  time.Duration(config.Outbox.BreakerTimeoutS) * time.Second,
	}, metrics, logger)
	relay := outbox.NewRelay(repo, publisher, outbox.RelayConfig{
		BatchSize:    config.Outbox.BatchSize,
		PollInterval: time.Duration(config.Outbox.PollIntervalMs) * time.Millisecond,
	}, metrics, logger)

	metricsApp := fiber.New(fiber.Config{DisableStartupMessage: true})
	metricsApp.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))
	metricsApp.Get("/manage/health", func(c *fiber.Ctx) error {
		if err := repo.HealthCheck(c.UserContext()); err != nil {
			return c.SendStatus(fiber.StatusServiceUnavailable)
		}
		return c.SendStatus(fiber.StatusOK)
	})

	go func() {
		if err := metricsApp.Listen(config.Outbox.MetricsAddr); err != nil {
			logger.Error("metrics server stopped", slog.String("error", err.Error()))
		}
	}()

	logger.Info("outbox relay started", slog.String("topic", config.Kafka.Topic))
	relay.Run(ctx)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err = metricsApp.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Error("shutdown metrics server", slog.String("error", err.Error()))
	}
	logger.Debug("outbox relay exited")
}
