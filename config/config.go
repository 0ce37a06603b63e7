package config

import (
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	Server struct {
		Port string `env:"PORT" envDefault:"5250"`

		// Origins allowed to call the API from the browser
		AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173"`

		LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	}

	Database struct {
		// "sqlite" or "postgres"
		Driver string `env:"DB_DRIVER" envDefault:"sqlite"`

		// SQLite file, relative to the working directory
		Path string `env:"DB_PATH" envDefault:"database/imovelhub.db"`

		// Postgres DSN, used when Driver is "postgres"
		DSN string `env:"DATABASE_URL"`
	}

	// Listing cache
	Cache struct {
		TTL time.Duration `env:"CACHE_TTL" envDefault:"30s"`
	}

	// BatchProcessing configuration for bulk unit imports
	BatchProcessing struct {
		// Maximum number of units inserted in one transaction
		MaxBatchSize int `env:"BATCH_MAX_SIZE" envDefault:"100"`

		// Number of pending batches the queue holds before rejecting imports
		QueueSize int `env:"BATCH_QUEUE_SIZE" envDefault:"32"`

		// Number of concurrent batch processors
		ProcessorCount int `env:"BATCH_PROCESSOR_COUNT" envDefault:"2"`

		// Maximum number of retries for failed batches
		MaxRetries int `env:"BATCH_MAX_RETRIES" envDefault:"3"`

		// Delay between retries in seconds
		RetryDelay int `env:"BATCH_RETRY_DELAY" envDefault:"5"`
	}

	// Sales mirror reconciliation
	Reconciler struct {
		Interval time.Duration `env:"RECONCILE_INTERVAL" envDefault:"15m"`
	}

	AddressLookup struct {
		BaseURL  string        `env:"CEP_LOOKUP_URL" envDefault:"https://viacep.com.br/ws"`
		CacheDir string        `env:"CEP_CACHE_DIR"`
		Timeout  time.Duration `env:"CEP_LOOKUP_TIMEOUT" envDefault:"5s"`
	}

	Portals struct {
		CatalogPath string `env:"PORTAL_CATALOG_PATH" envDefault:"config/portals.yaml"`
	}

	// Listing events; publishing is disabled when URL is empty
	Events struct {
		URL      string `env:"RABBITMQ_URL"`
		Exchange string `env:"RABBITMQ_EXCHANGE" envDefault:"listings"`
	}

	Map struct {
		GeohashPrecision uint `env:"GEOHASH_PRECISION" envDefault:"7"`
	}
}

// LoadConfig reads an optional .env file and then the environment
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
