package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	BaseURL     string        `env:"API_BASE_URL, default=http://localhost:8080/api"`
	Env         string        `env:"ENV,          default=development"`
	LogLevel    string        `env:"LOG_LEVEL,    default=info"`
	HTTPTimeout time.Duration `env:"HTTP_TIMEOUT, default=30s"`

	// SessionCheckInterval drives the background session monitor.
	// Zero disables periodic revalidation.
	SessionCheckInterval time.Duration `env:"SESSION_CHECK_INTERVAL, default=0"`

	Token TokenConfig
	Redis RedisConfig
}

// TokenConfig selects and parameterises the persistent token store.
type TokenConfig struct {
	// Store is "file" or "redis".
	Store string `env:"TOKEN_STORE,  default=file"`
	// Path is the state directory for the file store. Empty means
	// $HOME/.donation-client.
	Path string `env:"TOKEN_PATH"`
	// Secret seals the token file at rest.
	Secret string `env:"TOKEN_SECRET, default=donation-client-local"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
	// Device namespaces the token key when several kiosks share one Redis.
	Device string `env:"REDIS_DEVICE, default=default"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
