package config

import (
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// MustLoad loads the configuration from environment variables and .env file.
func MustLoad[T any](cfg T) {
	_ = godotenv.Load()

	env.Must(cfg, env.Parse(cfg))
}

// Load loads the configuration from environment variables and .env file.
// A missing .env file is not an error; the environment alone may be enough.
func Load[T any](cfg T) error {
	_ = godotenv.Load()

	return env.Parse(cfg)
}

// Config holds the configuration for the matching engine service.
type Config struct {
	// Symbols lists the contracts served by this instance, one book each,
	// e.g. "BTC-PERP,ETH-0926".
	Symbols []string `env:"SYMBOLS,required"`

	OrderReaderConfig    `envPrefix:"KAFKA_ORDERS_"`
	MatchPublisherConfig `envPrefix:"KAFKA_TRADES_"`
	RedisConfig          `envPrefix:"REDIS_"`
	EngineConfig         `envPrefix:"ENGINE_"`
}

// OrderReaderConfig holds the configuration for the Kafka order intake.
type OrderReaderConfig struct {
	Brokers []string `env:"BROKER,required"`
	Topic   string   `env:"TOPIC,required"`
	GroupID string   `env:"GROUP_ID" envDefault:"matching-engine"`
}

// MatchPublisherConfig holds the configuration for the Kafka trade feed.
type MatchPublisherConfig struct {
	Brokers []string `env:"BROKER,required"`
	Topic   string   `env:"TOPIC,required"`
}

// RedisConfig holds the configuration for the Redis depth cache.
type RedisConfig struct {
	Addrs    string `env:"ADDRESS,required"`
	Password string `env:"PASSWORD" envDefault:""`
	Username string `env:"USERNAME" envDefault:""`
	DB       int    `env:"DB" envDefault:"0"`
}

// EngineConfig holds tunables for the per-symbol workers.
type EngineConfig struct {
	ExpirySweepInterval  time.Duration `env:"EXPIRY_SWEEP_INTERVAL" envDefault:"1s"`
	DepthPublishInterval time.Duration `env:"DEPTH_PUBLISH_INTERVAL" envDefault:"500ms"`
	DepthLevels          int           `env:"DEPTH_LEVELS" envDefault:"20"`
	RequestBuffer        int           `env:"REQUEST_BUFFER" envDefault:"1024"`
}
