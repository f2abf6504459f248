package usecase

import (
	"context"
	"time"

	"bizmatch/pkg/config"
)

const (
	defaultCurrency      = "EUR"
	defaultQuoteValidity = 7 * 24 * time.Hour
)

// Settings tunes the lifecycle use cases.
type Settings struct {
	// Latency is waited at the start of every lifecycle operation.
	Latency         time.Duration
	DefaultCurrency string
	QuoteValidity   time.Duration
}

func SettingsFromConfig(cfg *config.Config) Settings {
	return Settings{
		Latency:         cfg.SimulatedLatency,
		DefaultCurrency: cfg.DefaultCurrency,
		QuoteValidity:   cfg.QuoteValidity,
	}.withDefaults()
}

func (s Settings) withDefaults() Settings {
	if s.DefaultCurrency == "" {
		s.DefaultCurrency = defaultCurrency
	}
	if s.QuoteValidity <= 0 {
		s.QuoteValidity = defaultQuoteValidity
	}
	return s
}

func (s Settings) wait(ctx context.Context) error {
	return simulateLatency(ctx, s.Latency)
}

func simulateLatency(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
