// Package main starts the contacts HTTP API process lifecycle.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	contactbookcmd "github.com/louisbranch/contactbook/internal/cmd/contactbook"
	entrypoint "github.com/louisbranch/contactbook/internal/platform/cmd"
)

func main() {
	cfg, err := contactbookcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	entrypoint.ConfigureLogging(entrypoint.ServiceContactbook)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := contactbookcmd.Run(ctx, cfg); err != nil {
		log.Fatalf("failed to serve: %v", err)
	}
}
