package config

import (
	"time"

	"github.com/caarlos0/env/v8"
	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort  string `env:"SERVER_PORT" envDefault:"8080"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`

	// StoreBackend selects the record store: "memory" or "firestore".
	StoreBackend               string `env:"STORE_BACKEND" envDefault:"memory"`
	FirebaseProject            string `env:"FIREBASE_PROJECT_ID"`
	FirebaseServiceAccountJSON string `env:"FIREBASE_SERVICE_ACCOUNT_JSON"`
	FirebaseServiceAccountPath string `env:"FIREBASE_SERVICE_ACCOUNT_PATH"`

	SimulatedLatency time.Duration `env:"SIMULATED_LATENCY" envDefault:"300ms"`
	DefaultCurrency  string        `env:"DEFAULT_CURRENCY" envDefault:"EUR"`
	QuoteValidity    time.Duration `env:"QUOTE_VALIDITY" envDefault:"168h"`

	EventWriteTimeout     time.Duration `env:"EVENT_WRITE_TIMEOUT" envDefault:"1s"`
	EventFailureThreshold int           `env:"EVENT_FAILURE_THRESHOLD" envDefault:"3"`

	RateLimitPerMinute int `env:"RATE_LIMIT_PER_MINUTE" envDefault:"60"`
}

func Load() (*Config, error) {
	godotenv.Load()

	config := &Config{}
	if err := env.Parse(config); err != nil {
		return nil, err
	}

	return config, nil
}
