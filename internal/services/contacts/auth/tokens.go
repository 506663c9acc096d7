package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	apperrors "github.com/louisbranch/contactbook/internal/platform/errors"
)

// Token scopes distinguish access tokens from refresh tokens.
const (
	ScopeAccess  = "access_token"
	ScopeRefresh = "refresh_token"
)

var (
	// ErrInvalidCredentials is returned for unparsable, expired, or forged tokens.
	ErrInvalidCredentials = apperrors.New(apperrors.CodeUnauthenticated, "Could not validate credentials")
	// ErrInvalidScope is returned when a well-formed token is used for the wrong purpose.
	ErrInvalidScope = apperrors.New(apperrors.CodeTokenInvalidScope, "Invalid scope for token")
	// ErrInvalidEmailToken is returned when an email verification token cannot be read.
	ErrInvalidEmailToken = apperrors.New(apperrors.CodeEmailTokenInvalid, "Invalid token for email verification")
)

// TokenConfig configures token signing.
type TokenConfig struct {
	Secret     string
	Algorithm  string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	EmailTTL   time.Duration
	Now        func() time.Time
}

// Tokens issues and verifies HMAC-signed JWTs.
type Tokens struct {
	secret     []byte
	method     jwt.SigningMethod
	accessTTL  time.Duration
	refreshTTL time.Duration
	emailTTL   time.Duration
	now        func() time.Time
}

// claims is the JWT body shared by every token kind.
type claims struct {
	jwt.RegisteredClaims
	Scope string `json:"scope,omitempty"`
}

// NewTokens validates cfg and returns a token issuer.
func NewTokens(cfg TokenConfig) (*Tokens, error) {
	if strings.TrimSpace(cfg.Secret) == "" {
		return nil, errors.New("jwt secret is required")
	}
	algorithm := strings.ToUpper(strings.TrimSpace(cfg.Algorithm))
	if algorithm == "" {
		algorithm = jwt.SigningMethodHS256.Alg()
	}
	method, ok := jwt.GetSigningMethod(algorithm).(*jwt.SigningMethodHMAC)
	if !ok {
		return nil, fmt.Errorf("unsupported jwt algorithm %q", cfg.Algorithm)
	}
	if cfg.AccessTTL <= 0 || cfg.RefreshTTL <= 0 || cfg.EmailTTL <= 0 {
		return nil, errors.New("token ttls must be positive")
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Tokens{
		secret:     []byte(cfg.Secret),
		method:     method,
		accessTTL:  cfg.AccessTTL,
		refreshTTL: cfg.RefreshTTL,
		emailTTL:   cfg.EmailTTL,
		now:        now,
	}, nil
}

// AccessToken issues a short-lived token authorizing API calls for email.
func (t *Tokens) AccessToken(email string) (string, error) {
	return t.sign(email, ScopeAccess, t.accessTTL)
}

// RefreshToken issues a long-lived token that can only mint new token pairs.
func (t *Tokens) RefreshToken(email string) (string, error) {
	return t.sign(email, ScopeRefresh, t.refreshTTL)
}

// EmailToken issues the token embedded in confirmation links.
func (t *Tokens) EmailToken(email string) (string, error) {
	return t.sign(email, "", t.emailTTL)
}

// ParseAccessToken returns the email an access token was issued for.
func (t *Tokens) ParseAccessToken(token string) (string, error) {
	return t.parseScoped(token, ScopeAccess)
}

// ParseRefreshToken returns the email a refresh token was issued for.
func (t *Tokens) ParseRefreshToken(token string) (string, error) {
	return t.parseScoped(token, ScopeRefresh)
}

// ParseEmailToken returns the email a verification token was issued for.
func (t *Tokens) ParseEmailToken(token string) (string, error) {
	parsed, err := t.parse(token)
	if err != nil || parsed.Subject == "" {
		return "", apperrors.Wrap(ErrInvalidEmailToken.Code, ErrInvalidEmailToken.Message, err)
	}
	return parsed.Subject, nil
}

func (t *Tokens) parseScoped(token string, scope string) (string, error) {
	parsed, err := t.parse(token)
	if err != nil {
		return "", apperrors.Wrap(ErrInvalidCredentials.Code, ErrInvalidCredentials.Message, err)
	}
	if parsed.Scope != scope {
		return "", ErrInvalidScope
	}
	if parsed.Subject == "" {
		return "", ErrInvalidCredentials
	}
	return parsed.Subject, nil
}

func (t *Tokens) sign(email string, scope string, ttl time.Duration) (string, error) {
	if t == nil {
		return "", errors.New("token issuer is not configured")
	}
	issuedAt := t.now().UTC()
	body := claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(ttl)),
		},
		Scope: scope,
	}
	signed, err := jwt.NewWithClaims(t.method, body).SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (t *Tokens) parse(token string) (claims, error) {
	if t == nil {
		return claims{}, errors.New("token issuer is not configured")
	}
	var parsed claims
	_, err := jwt.ParseWithClaims(strings.TrimSpace(token), &parsed, func(*jwt.Token) (any, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{t.method.Alg()}),
		jwt.WithTimeFunc(t.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return claims{}, mapJWTError(err)
	}
	return parsed, nil
}

func mapJWTError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return fmt.Errorf("token expired: %w", err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return fmt.Errorf("token signature invalid: %w", err)
	case errors.Is(err, jwt.ErrTokenMalformed):
		return fmt.Errorf("token malformed: %w", err)
	default:
		return fmt.Errorf("parse token: %w", err)
	}
}
