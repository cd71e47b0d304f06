// Package mockapi parses mock API command flags and composes the transport
// entrypoint.
package mockapi

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/fraudx/fraudx/internal/fraud/service"
	entrypoint "github.com/fraudx/fraudx/internal/platform/cmd"
	server "github.com/fraudx/fraudx/internal/services/mockapi/app"
)

// Config holds mock API command configuration.
type Config struct {
	HTTPAddr        string        `env:"FRAUDX_HTTP_ADDR"   envDefault:":8080"`
	Seed            int64         `env:"FRAUDX_SEED"`
	SeedAlerts      int           `env:"FRAUDX_SEED_ALERTS" envDefault:"1000"`
	MinLatency      time.Duration `env:"FRAUDX_MIN_LATENCY" envDefault:"200ms"`
	MaxLatency      time.Duration `env:"FRAUDX_MAX_LATENCY" envDefault:"800ms"`
	FeedMinInterval time.Duration `env:"FRAUDX_FEED_MIN"    envDefault:"10s"`
	FeedMaxInterval time.Duration `env:"FRAUDX_FEED_MAX"    envDefault:"60s"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "mock API HTTP listen address")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "data generator seed (0 picks one)")
	fs.IntVar(&cfg.SeedAlerts, "seed-alerts", cfg.SeedAlerts, "number of alerts fabricated at startup")
	fs.DurationVar(&cfg.MinLatency, "min-latency", cfg.MinLatency, "simulated response latency lower bound")
	fs.DurationVar(&cfg.MaxLatency, "max-latency", cfg.MaxLatency, "simulated response latency upper bound")
	fs.DurationVar(&cfg.FeedMinInterval, "feed-min", cfg.FeedMinInterval, "new-alert feed interval lower bound")
	fs.DurationVar(&cfg.FeedMaxInterval, "feed-max", cfg.FeedMaxInterval, "new-alert feed interval upper bound")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run seeds the in-memory service and starts the HTTP/WebSocket transport.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceMockAPI, func(context.Context) error {
		svc := service.New(service.Config{
			Seed:            cfg.Seed,
			SeedAlerts:      cfg.SeedAlerts,
			MinLatency:      cfg.MinLatency,
			MaxLatency:      cfg.MaxLatency,
			FeedMinInterval: cfg.FeedMinInterval,
			FeedMaxInterval: cfg.FeedMaxInterval,
		})

		if err := server.Run(ctx, svc, server.Config{HTTPAddr: cfg.HTTPAddr}); err != nil {
			return fmt.Errorf("serve mockapi: %w", err)
		}
		return nil
	})
}
