package seed

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"testing"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("seed", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Count != 25 {
		t.Fatalf("expected default count 25, got %d", cfg.Count)
	}
	if cfg.Full || cfg.Verbose {
		t.Fatalf("expected full and verbose off by default, got %+v", cfg)
	}
}

func TestParseConfigRejectsNonPositiveCount(t *testing.T) {
	fs := flag.NewFlagSet("seed", flag.ContinueOnError)
	if _, err := ParseConfig(fs, []string{"-n", "0"}); err == nil {
		t.Fatal("expected error for zero count")
	}
}

func TestRunWritesDecodableFixture(t *testing.T) {
	var out bytes.Buffer
	cfg := Config{Count: 5, Seed: 42}
	if err := Run(context.Background(), cfg, &out, nil); err != nil {
		t.Fatalf("run: %v", err)
	}

	var fixture Fixture
	if err := json.Unmarshal(out.Bytes(), &fixture); err != nil {
		t.Fatalf("decode fixture: %v", err)
	}
	if fixture.Seed != 42 {
		t.Fatalf("expected seed 42 in fixture, got %d", fixture.Seed)
	}
	if len(fixture.Alerts) != 5 {
		t.Fatalf("expected 5 alerts, got %d", len(fixture.Alerts))
	}
	if len(fixture.Transactions) != 0 {
		t.Fatalf("expected no transactions without -full, got %d", len(fixture.Transactions))
	}
}

func TestRunFullIncludesTransactions(t *testing.T) {
	var out bytes.Buffer
	cfg := Config{Count: 3, Seed: 42, Full: true}
	if err := Run(context.Background(), cfg, &out, nil); err != nil {
		t.Fatalf("run: %v", err)
	}

	var fixture Fixture
	if err := json.Unmarshal(out.Bytes(), &fixture); err != nil {
		t.Fatalf("decode fixture: %v", err)
	}
	if len(fixture.Transactions) != 3 {
		t.Fatalf("expected 3 transactions, got %d", len(fixture.Transactions))
	}
	for i, txn := range fixture.Transactions {
		if txn.ID != fixture.Alerts[i].ID {
			t.Fatalf("transaction %d id %q differs from alert id %q", i, txn.ID, fixture.Alerts[i].ID)
		}
	}
}

func TestRunSameSeedIsReproducible(t *testing.T) {
	var first, second bytes.Buffer
	cfg := Config{Count: 10, Seed: 7}
	if err := Run(context.Background(), cfg, &first, nil); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if err := Run(context.Background(), cfg, &second, nil); err != nil {
		t.Fatalf("second run: %v", err)
	}

	var a, b Fixture
	if err := json.Unmarshal(first.Bytes(), &a); err != nil {
		t.Fatalf("decode first: %v", err)
	}
	if err := json.Unmarshal(second.Bytes(), &b); err != nil {
		t.Fatalf("decode second: %v", err)
	}
	for i := range a.Alerts {
		if a.Alerts[i].ID != b.Alerts[i].ID || a.Alerts[i].Amount != b.Alerts[i].Amount {
			t.Fatalf("same seed diverged at alert %d", i)
		}
	}
}
