package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Prefix is prepended to every environment key read through ParseEnv.
const Prefix = "CONTACTBOOK_"

// ParseEnv loads configuration from CONTACTBOOK_-prefixed environment variables.
func ParseEnv(target any) error {
	return ParseEnvWithPrefix(target, Prefix)
}

// ParseEnvWithPrefix loads configuration from environment variables whose
// keys start with prefix. Struct tags name the key without the prefix.
func ParseEnvWithPrefix(target any, prefix string) error {
	if err := env.ParseWithOptions(target, env.Options{Prefix: prefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
