package server

import (
	"context"
	"testing"
	"time"

	"github.com/fraudx/fraudx/internal/fraud/service"
)

func TestNewServerValidatesInputs(t *testing.T) {
	svc := service.New(service.Config{Seed: 1})
	t.Cleanup(svc.Close)

	if _, err := NewServer(nil, Config{HTTPAddr: ":0"}); err == nil {
		t.Fatal("expected error for nil service")
	}
	if _, err := NewServer(svc, Config{}); err == nil {
		t.Fatal("expected error for missing address")
	}

	server, err := NewServer(svc, Config{HTTPAddr: "127.0.0.1:0"})
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	if server.shutdownTimeout <= 0 || server.httpServer.ReadHeaderTimeout <= 0 {
		t.Fatal("expected timeout defaults to be applied")
	}
}

func TestRunStopsWhenContextEnds(t *testing.T) {
	svc := service.New(service.Config{Seed: 1})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, svc, Config{HTTPAddr: "127.0.0.1:0"})
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("run returned error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("run did not stop after context cancellation")
	}
}
