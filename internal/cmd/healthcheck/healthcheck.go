// Package healthcheck probes a running contacts service over gRPC health.
package healthcheck

import (
	"context"
	"errors"
	"flag"
	"log"
	"strings"
	"time"

	entrypoint "github.com/louisbranch/contactbook/internal/platform/cmd"
	platformgrpc "github.com/louisbranch/contactbook/internal/platform/grpc"
)

// Config holds healthcheck command configuration.
type Config struct {
	Addr    string        `env:"HEALTHCHECK_ADDR"    envDefault:"localhost:8001"`
	Timeout time.Duration `env:"HEALTHCHECK_TIMEOUT" envDefault:"3s"`
	Verbose bool          `env:"HEALTHCHECK_VERBOSE"`
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "gRPC health address")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "How long to wait for SERVING")
	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "Log probe progress")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run waits for the health endpoint to report SERVING.
func Run(ctx context.Context, cfg Config) error {
	if strings.TrimSpace(cfg.Addr) == "" {
		return errors.New("health address is required")
	}
	var logf func(string, ...any)
	if cfg.Verbose {
		logf = log.Printf
	}
	return platformgrpc.Probe(ctx, cfg.Addr, cfg.Timeout, logf)
}
