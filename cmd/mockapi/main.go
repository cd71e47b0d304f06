// Package main starts the mock fraud-operations API and handles termination.
//
// The process fabricates its whole dataset at startup, so it can back a
// dashboard UI with zero external dependencies.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	mockapicmd "github.com/fraudx/fraudx/internal/cmd/mockapi"
)

func main() {
	cfg, err := mockapicmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	log.SetPrefix("[MOCKAPI] ")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := mockapicmd.Run(ctx, cfg); err != nil {
		log.Fatalf("failed to serve: %v", err)
	}
}
