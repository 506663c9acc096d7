// Package jwtsecret generates signing secrets for CONTACTBOOK_JWT_SECRET.
package jwtsecret

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"io"
)

// EnvKey is the variable the contacts service reads its signing secret from.
const EnvKey = "CONTACTBOOK_JWT_SECRET"

// Config holds secret generation options.
type Config struct {
	Bytes  int
	Format string
}

// ParseConfig parses flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	cfg := Config{Bytes: 32, Format: "hex"}
	fs.IntVar(&cfg.Bytes, "bytes", cfg.Bytes, "number of random bytes")
	fs.StringVar(&cfg.Format, "format", cfg.Format, "encoding: hex or base64")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run writes an env assignment holding a fresh secret to out.
func Run(cfg Config, out io.Writer, reader io.Reader) error {
	if cfg.Bytes < 16 {
		return errors.New("bytes must be at least 16")
	}
	if out == nil {
		return errors.New("output is required")
	}
	var encode func([]byte) string
	switch cfg.Format {
	case "", "hex":
		encode = hex.EncodeToString
	case "base64":
		encode = base64.RawURLEncoding.EncodeToString
	default:
		return fmt.Errorf("unsupported format %q", cfg.Format)
	}
	if reader == nil {
		reader = rand.Reader
	}

	buf := make([]byte, cfg.Bytes)
	if _, err := io.ReadFull(reader, buf); err != nil {
		return fmt.Errorf("generate random bytes: %w", err)
	}
	_, err := fmt.Fprintf(out, "%s=%s\n", EnvKey, encode(buf))
	return err
}
