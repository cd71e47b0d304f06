// Package seed parses fixture-dump flags and writes generated alert
// datasets as JSON, for checking fixture files into UI projects.
package seed

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"

	"github.com/fraudx/fraudx/internal/fraud"
	"github.com/fraudx/fraudx/internal/fraud/generator"
	entrypoint "github.com/fraudx/fraudx/internal/platform/cmd"
)

// Config holds seed command configuration.
type Config struct {
	Count   int
	Seed    int64
	Full    bool
	Verbose bool
}

// Fixture is the JSON document the command writes. The effective seed is
// included so a random run can be reproduced later.
type Fixture struct {
	Seed         int64               `json:"seed"`
	Alerts       []fraud.Alert       `json:"alerts"`
	Transactions []fraud.Transaction `json:"transactions,omitempty"`
}

// ParseConfig parses flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	fs.IntVar(&cfg.Count, "n", 25, "number of alerts to generate")
	fs.Int64Var(&cfg.Seed, "seed", 0, "random seed for reproducibility (0 = random)")
	fs.BoolVar(&cfg.Full, "full", false, "include full transaction records")
	fs.BoolVar(&cfg.Verbose, "v", false, "verbose output")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	if cfg.Count <= 0 {
		return Config{}, fmt.Errorf("alert count must be positive, got %d", cfg.Count)
	}
	return cfg, nil
}

// Run generates the dataset and writes it to out as indented JSON.
func Run(ctx context.Context, cfg Config, out io.Writer, errOut io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	if errOut == nil {
		errOut = io.Discard
	}

	rng, seed := generator.NewSeededRNG(cfg.Seed)
	gen := generator.New(rng)

	fixture := Fixture{Seed: seed}
	for i := 0; i < cfg.Count; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		alert := gen.Alert()
		fixture.Alerts = append(fixture.Alerts, alert)
		if cfg.Full {
			fixture.Transactions = append(fixture.Transactions, gen.Transaction(alert))
		}
	}

	if cfg.Verbose {
		fmt.Fprintf(errOut, "generated %d alerts (seed %d, full=%v)\n", cfg.Count, seed, cfg.Full)
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(fixture); err != nil {
		return fmt.Errorf("encode fixture: %w", err)
	}
	return nil
}
