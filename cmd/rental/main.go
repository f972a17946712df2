package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/lmittmann/tint"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/pflag"

	authDelivery "github.com/SlavaShagalov/rental-booking/internal/auth/delivery"
	authRepository "github.com/SlavaShagalov/rental-booking/internal/auth/repository"
	authUseCase "github.com/SlavaShagalov/rental-booking/internal/auth/usecase"
	carDelivery "github.com/SlavaShagalov/rental-booking/internal/car/delivery"
	carRepository "github.com/SlavaShagalov/rental-booking/internal/car/repository"
	carUseCase "github.com/SlavaShagalov/rental-booking/internal/car/usecase"
	"github.com/SlavaShagalov/rental-booking/internal/pkg/app"
	"github.com/SlavaShagalov/rental-booking/internal/pkg/hasher"
	rentalDelivery "github.com/SlavaShagalov/rental-booking/internal/rental/delivery"
	rentalRepository "github.com/SlavaShagalov/rental-booking/internal/rental/repository"
	rentalUseCase "github.com/SlavaShagalov/rental-booking/internal/rental/usecase"
	requestsDelivery "github.com/SlavaShagalov/rental-booking/internal/requests/delivery"
	requestsRepository "github.com/SlavaShagalov/rental-booking/internal/requests/repository"
	requestsUseCase "github.com/SlavaShagalov/rental-booking/internal/requests/usecase"
	"github.com/SlavaShagalov/rental-booking/internal/service"
	"github.com/SlavaShagalov/rental-booking/pkg/migrations"
	"github.com/SlavaShagalov/rental-booking/pkg/statistics"
)

type WebApp interface {
	Start() error
	Shutdown(ctx context.Context) error
}

func startApp(webApp WebApp, config app.Config, logger *slog.Logger) {
	logger.Debug(fmt.Sprintf("web app starts at %s", config.Web.Host+":"+config.Web.Port))

	go func() {
		err := webApp.Start()
		if err != nil {
			panic(err)
		}
	}()
}

func shutdownApp(webApp WebApp, config app.Config, logger *slog.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Debug("shutdown web app ...")

	shutdownTimeout := time.Duration(config.Web.ShutdownTimeoutSec) * time.Second
	if shutdownTimeout <= 0 {
		shutdownTimeout = time.Minute
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err := webApp.Shutdown(ctx)
	if err != nil {
		panic(err)
	}

	logger.Debug("web app exited")
}

func main() {
	var configPath string
	pflag.StringVarP(&configPath, "config", "c", "configs/rental.yaml", "Config file path")
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

	err = migrations.Do(config.DB.ConnectionString, config.DB.MigrationsPath, logger)
	if err != nil {
		panic(err)
	}

	redisOpts, err := redis.ParseURL(config.Redis.URL)
	if err != nil {
		panic(err)
	}
	redisClient := redis.NewClient(redisOpts)
	defer redisClient.Close()

	kafkaStatWriter := statistics.NewWriter(config.Kafka.Addresses, config.Kafka.StatTopic, logger)
	defer kafkaStatWriter.Close()

	stat := statistics.NewKafkaStatistics(nil, kafkaStatWriter, logger, nil)
	validate := validator.New(validator.WithRequiredStructEnabled())

	tokens, err := service.NewTokenService(config.Auth.JWTSecret, config.Auth.Issuer,
		time.Duration(config.Auth.TokenTTLMin)*time.Minute)
	if err != nil {
		panic(err)
	}
	authUC := authUseCase.New(authRepository.NewSqlxRepository(db, logger), tokens, hasher.NewBcryptHasher(0), logger)

	carRepo := carRepository.NewCachedRepository(
		carRepository.NewSqlxRepository(db, logger),
		redisClient,
		time.Duration(config.Cache.CarTTLSec)*time.Second,
		logger,
	)

	routes := []app.Route{
		{Prefix: "/auth", Delivery: authDelivery.New(authUC, validate, logger)},
		{Prefix: "/cars", Delivery: carDelivery.New(carUseCase.New(carRepo, logger), validate, logger)},
		{Prefix: "/rentals", Delivery: rentalDelivery.New(
			rentalUseCase.New(rentalRepository.NewSqlxRepository(db, logger), logger),
			logger,
		)},
		{Prefix: "/statistics", Delivery: requestsDelivery.New(
			requestsUseCase.New(requestsRepository.NewSqlxRepository(db, logger), logger),
			logger,
		)},
	}

	webApp := app.NewFiberApp(config.Web, routes, app.NewAuth(authUC, logger), logger, app.NewStatisticsMW(stat, logger))

	startApp(webApp, config, logger)
	shutdownApp(webApp, config, logger)
}
