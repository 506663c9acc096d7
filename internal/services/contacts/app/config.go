package server

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/louisbranch/contactbook/internal/services/contacts/avatar"
	"github.com/louisbranch/contactbook/internal/services/contacts/mail"
)

// RedisConfig locates the optional Redis server.
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
}

// Enabled reports whether a Redis address is configured.
func (c RedisConfig) Enabled() bool {
	return strings.TrimSpace(c.Addr) != ""
}

// Config holds the contacts service settings. Keys are read with the
// CONTACTBOOK_ prefix.
type Config struct {
	HTTPAddr string `env:"HTTP_ADDR" envDefault:"0.0.0.0:8000"`
	GRPCPort int    `env:"GRPC_PORT" envDefault:"8001"`
	DBURL    string `env:"DB_URL"    envDefault:"data/contactbook.db"`

	JWTSecret       string        `env:"JWT_SECRET"`
	JWTAlgorithm    string        `env:"JWT_ALGORITHM"     envDefault:"HS256"`
	AccessTokenTTL  time.Duration `env:"ACCESS_TOKEN_TTL"  envDefault:"15m"`
	RefreshTokenTTL time.Duration `env:"REFRESH_TOKEN_TTL" envDefault:"168h"`
	EmailTokenTTL   time.Duration `env:"EMAIL_TOKEN_TTL"   envDefault:"24h"`

	Redis          RedisConfig
	UserCacheTTL   time.Duration `env:"USER_CACHE_TTL"   envDefault:"30m"`
	AvatarCacheTTL time.Duration `env:"AVATAR_CACHE_TTL" envDefault:"5m"`

	RateLimitTimes  int           `env:"RATE_LIMIT_TIMES"  envDefault:"1"`
	RateLimitWindow time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"20s"`

	Mail       mail.Config
	Cloudinary avatar.CloudinaryConfig
}

// Validate rejects settings the service cannot start with.
func (c Config) Validate() error {
	if strings.TrimSpace(c.JWTSecret) == "" {
		return errors.New("CONTACTBOOK_JWT_SECRET is required")
	}
	if strings.TrimSpace(c.HTTPAddr) == "" {
		return errors.New("http address is required")
	}
	if c.GRPCPort < 0 || c.GRPCPort > 65535 {
		return fmt.Errorf("invalid grpc port %d", c.GRPCPort)
	}
	if strings.TrimSpace(c.DBURL) == "" {
		return errors.New("database url is required")
	}
	if c.RateLimitTimes <= 0 || c.RateLimitWindow <= 0 {
		return errors.New("rate limit times and window must be positive")
	}
	return nil
}
