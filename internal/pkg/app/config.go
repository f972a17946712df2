package app

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/nil-go/konf"
	"github.com/nil-go/konf/provider/file"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type WebConfig struct {
	Host               string `konf:"host"`
	Port               string `konf:"port"`
	ReadTimeoutSec     int    `konf:"read_timeout_sec"`
	WriteTimeoutSec    int    `konf:"write_timeout_sec"`
	ShutdownTimeoutSec int    `konf:"shutdown_timeout_sec"`
}

type DBConfig struct {
	DriverName       string `konf:"driver_name"`
	ConnectionString string `konf:"connection_string"`
	MigrationsPath   string `konf:"migrations_path"`
}

type LoggingConfig struct {
	Level int `konf:"level"`
}

type KafkaConfig struct {
	Addresses []string `konf:"addresses"`
	Topic     string   `konf:"topic"`
	StatTopic string   `konf:"stat_topic"`
}

type RedisConfig struct {
	URL string `konf:"url"`
}

type AuthConfig struct {
	JWTSecret   string `konf:"jwt_secret"`
	Issuer      string `konf:"issuer"`
	TokenTTLMin int    `konf:"token_ttl_min"`
}

type CacheConfig struct {
	CarTTLSec int `konf:"car_ttl_sec"`
}

type OutboxConfig struct {
	BatchSize       int    `konf:"batch_size"`
	PollIntervalMs  int    `konf:"poll_interval_ms"`
	MaxFails        uint32 `konf:"max_fails"`
	BreakerTimeoutS int    `konf:"breaker_timeout_sec"`
	MetricsAddr     string `konf:"metrics_addr"`
}

type Config struct {
	Web     WebConfig     `konf:"web"`
	DB      DBConfig      `konf:"db"`
	Logging LoggingConfig `konf:"logging"`
	Kafka   KafkaConfig   `konf:"kafka"`
	Redis   RedisConfig   `konf:"redis"`
	Auth    AuthConfig    `konf:"auth"`
	Cache   CacheConfig   `konf:"cache"`
	Outbox  OutboxConfig  `konf:"outbox"`
}

// ReadLocalConfig reads a YAML config file. Secrets may reference environment
// variables as ${NAME}; a .env file in the working directory is loaded first
// when present.
func ReadLocalConfig(path string) (Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return Config{}, errors.Wrap(err, "load .env")
	}

	var loader konf.Config
	if err := loader.Load(file.New(path, file.WithUnmarshal(yaml.Unmarshal))); err != nil {
		return Config{}, errors.Wrap(err, "load config file")
	}

	var config Config
	if err := loader.Unmarshal("", &config); err != nil {
		return Config{}, errors.Wrap(err, "unmarshal config")
	}

	config.DB.ConnectionString = os.ExpandEnv(config.DB.ConnectionString)
	config.Auth.JWTSecret = os.ExpandEnv(config.Auth.JWTSecret)
	config.Redis.URL = os.ExpandEnv(config.Redis.URL)

	return config, nil
}
