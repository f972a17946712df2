package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/lmittmann/tint"
	"github.com/segmentio/kafka-go"
	"github.com/spf13/pflag"

	"github.com/SlavaShagalov/rental-booking/internal/pkg/app"
	"github.com/SlavaShagalov/rental-booking/internal/requests/repository"
	"github.com/SlavaShagalov/rental-booking/pkg/statistics"
)

const consumerGroup = "rental-statistics"

func main() {
	var configPath string
	pflag.StringVarP(&configPath, "config", "c", "configs/statistics.yaml", "Config file path")
	pflag.Parse()

	config, err := app.ReadLocalConfig(configPath)
	if err != nil {
		panic(err)
	}

	logger := slog.New(tint.NewHandler(os.Stdout, &tint.Options{Level: slog.Level(config.Logging.Level)}))

	db, err := sqlx.Connect(config.DB.DriverName, config.DB.ConnectionString)
	if err != nil {
		panic(err)
	}

	defer func(db *sqlx.DB) {
		err = db.Close()
		if err != nil {
			panic(err)
		}
	}(db)

	repo := repository.NewSqlxRepository(db, logger)

	kafkaReader := kafka.NewReader(kafka.ReaderConfig{
		Brokers: config.Kafka.Addresses,
		Topic:   config.Kafka.StatTopic,
		GroupID: consumerGroup,
	})
	defer kafkaReader.Close()

	stat := statistics.NewKafkaStatistics(kafkaReader, nil, logger, repo)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	for ctx.Err() == nil {
		if err = stat.SaveRequest(ctx); err != nil && ctx.Err() == nil {
			logger.Error(err.Error())
		}
	}

	logger.Debug("statistics consumer exited")
}
