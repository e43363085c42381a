package config

import (
	"log/slog"
	"time"
)

type LogLeveler string

func (l LogLeveler) Level() slog.Level {
	var level slog.Level

	_ = level.UnmarshalText([]byte(l))

	return level
}

// Config holds the server configuration.
type Config struct {
	LogLevel LogLeveler `mapstructure:"LOG_LEVEL"`
	HTTP     HTTP       `mapstructure:",squash"`
	Redis    Redis      `mapstructure:",squash"`
	Sources  Sources    `mapstructure:",squash"`
	Journey  Journey    `mapstructure:",squash"`
}

type HTTP struct {
	Port    int           `mapstructure:"HTTP_PORT"`
	Timeout time.Duration `mapstructure:"HTTP_TIMEOUT"`
}

type Redis struct {
	Addr     string        `mapstructure:"REDIS_ADDR"`
	Password string        `mapstructure:"REDIS_PASSWORD"`
	DB       int           `mapstructure:"REDIS_DB"`
	Timeout  time.Duration `mapstructure:"REDIS_TIMEOUT"`
}

// FlightSource configures the scraping-backed flight tool process.
type FlightSource struct {
	Command       string        `mapstructure:"FLIGHT_SOURCE_COMMAND"`
	Args          string        `mapstructure:"FLIGHT_SOURCE_ARGS"`
	CallTimeout   time.Duration `mapstructure:"FLIGHT_SOURCE_TIMEOUT"`
	WarmupTimeout time.Duration `mapstructure:"FLIGHT_SOURCE_WARMUP_TIMEOUT"`
	MaxRetries    int           `mapstructure:"FLIGHT_SOURCE_MAX_RETRIES"`
}

// TrainSource configures the rail ticket tool process.
type TrainSource struct {
	Command     string        `mapstructure:"TRAIN_SOURCE_COMMAND"`
	Args        string        `mapstructure:"TRAIN_SOURCE_ARGS"`
	CallTimeout time.Duration `mapstructure:"TRAIN_SOURCE_TIMEOUT"`
	RateLimit   int           `mapstructure:"TRAIN_SOURCE_RATE_LIMIT"`
}

type Sources struct {
	Flight FlightSource `mapstructure:",squash"`
	Train  TrainSource  `mapstructure:",squash"`
}

// Journey holds the planning tunables.
type Journey struct {
	HubCount         int           `mapstructure:"JOURNEY_HUB_COUNT"`
	TrainConcurrency int           `mapstructure:"JOURNEY_TRAIN_CONCURRENCY"`
	MinBufferMinutes int           `mapstructure:"JOURNEY_MIN_BUFFER_MINUTES"`
	AccommodationFee int           `mapstructure:"JOURNEY_ACCOMMODATION_FEE"`
	DigestTopN       int           `mapstructure:"JOURNEY_DIGEST_TOP_N"`
	CacheExpiration  time.Duration `mapstructure:"JOURNEY_CACHE_EXPIRATION"`
}
