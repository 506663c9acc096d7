// Package main exits non-zero unless the contacts service reports SERVING.
package main

import (
	"context"
	"flag"
	"log"
	"os"

	healthcheckcmd "github.com/louisbranch/contactbook/internal/cmd/healthcheck"
	entrypoint "github.com/louisbranch/contactbook/internal/platform/cmd"
)

func main() {
	cfg, err := healthcheckcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	entrypoint.ConfigureLogging(entrypoint.ServiceHealthcheck)

	if err := healthcheckcmd.Run(context.Background(), cfg); err != nil {
		log.Printf("unhealthy: %v", err)
		os.Exit(1)
	}
}
