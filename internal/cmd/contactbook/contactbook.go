// Package contactbook parses contacts service flags and launches the service.
package contactbook

import (
	"context"
	"flag"

	entrypoint "github.com/louisbranch/contactbook/internal/platform/cmd"
	server "github.com/louisbranch/contactbook/internal/services/contacts/app"
)

// Config holds contactbook command configuration.
type Config = server.Config

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.IntVar(&cfg.GRPCPort, "grpc-port", cfg.GRPCPort, "gRPC health server port")
	fs.StringVar(&cfg.DBURL, "db-url", cfg.DBURL, "Database URL or SQLite path")
	fs.StringVar(&cfg.Redis.Addr, "redis-addr", cfg.Redis.Addr, "Redis address; empty uses in-process cache")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the contacts HTTP API service.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceContactbook, func(ctx context.Context) error {
		return server.Run(ctx, cfg)
	})
}
