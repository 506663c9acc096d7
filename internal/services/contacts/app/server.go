package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"

	"github.com/redis/go-redis/v9"
	gogrpc "google.golang.org/grpc"

	platformgrpc "github.com/louisbranch/contactbook/internal/platform/grpc"
	"github.com/louisbranch/contactbook/internal/platform/timeouts"
	"github.com/louisbranch/contactbook/internal/services/contacts/api/httpapi"
	"github.com/louisbranch/contactbook/internal/services/contacts/auth"
	"github.com/louisbranch/contactbook/internal/services/contacts/avatar"
	"github.com/louisbranch/contactbook/internal/services/contacts/cache"
	"github.com/louisbranch/contactbook/internal/services/contacts/mail"
	"github.com/louisbranch/contactbook/internal/services/contacts/ratelimit"
	"github.com/louisbranch/contactbook/internal/services/contacts/storage/sqlstore"
)

// HealthServiceName is reported SERVING next to the overall process.
const HealthServiceName = "contactbook.v1.Contacts"

const (
	userCachePrefix = "contactbook:user:"
	rateLimitPrefix = "contactbook:ratelimit:"
)

// Server hosts the contacts HTTP API and its health endpoint.
type Server struct {
	httpListener net.Listener
	httpServer   *http.Server
	grpcListener net.Listener
	health       *platformgrpc.HealthServer
	store        *sqlstore.Store
	redis        *redis.Client
	dispatcher   *mail.Dispatcher
}

// New opens every backend named in cfg and binds both listeners.
func New(ctx context.Context, cfg Config) (*Server, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Server{}
	ok := false
	defer func() {
		if !ok {
			s.Close()
		}
	}()

	store, err := sqlstore.Open(ctx, cfg.DBURL)
	if err != nil {
		return nil, fmt.Errorf("open contacts store: %w", err)
	}
	s.store = store
	log.Printf("contacts store ready (%s)", store.Dialect())

	tokens, err := auth.NewTokens(auth.TokenConfig{
		Secret:     cfg.JWTSecret,
		Algorithm:  cfg.JWTAlgorithm,
		AccessTTL:  cfg.AccessTokenTTL,
		RefreshTTL: cfg.RefreshTokenTTL,
		EmailTTL:   cfg.EmailTokenTTL,
	})
	if err != nil {
		return nil, fmt.Errorf("configure tokens: %w", err)
	}

	userCache, limiter, err := s.openRedisBackends(ctx, cfg)
	if err != nil {
		return nil, err
	}

	var confirmer httpapi.Confirmer
	if cfg.Mail.Enabled() {
		sender, err := mail.NewSMTPSender(cfg.Mail)
		if err != nil {
			return nil, fmt.Errorf("configure mail: %w", err)
		}
		s.dispatcher = mail.NewDispatcher(sender, mail.DefaultQueueSize, timeouts.MailSend)
		confirmer = mail.NewConfirmer(tokens, s.dispatcher)
	} else {
		log.Printf("mail server not configured; confirmation emails are disabled")
	}

	var uploader avatar.Uploader
	if cfg.Cloudinary.Enabled() {
		cld, err := avatar.NewCloudinary(cfg.Cloudinary)
		if err != nil {
			return nil, fmt.Errorf("configure cloudinary: %w", err)
		}
		uploader = cld
	} else {
		log.Printf("cloudinary not configured; avatar upload is disabled")
	}

	handler, err := httpapi.NewHandler(httpapi.Options{
		Store:          store,
		Tokens:         tokens,
		Cache:          userCache,
		UserCacheTTL:   cfg.UserCacheTTL,
		AvatarCacheTTL: cfg.AvatarCacheTTL,
		Limiter:        limiter,
		Confirmer:      confirmer,
		Avatars:        uploader,
	})
	if err != nil {
		return nil, fmt.Errorf("build http handler: %w", err)
	}

	s.httpListener, err = net.Listen("tcp", cfg.HTTPAddr)
	if err != nil {
		return nil, fmt.Errorf("listen on http addr %s: %w", cfg.HTTPAddr, err)
	}
	s.httpServer = &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: timeouts.ReadHeader,
	}

	s.grpcListener, err = net.Listen("tcp", fmt.Sprintf(":%d", cfg.GRPCPort))
	if err != nil {
		return nil, fmt.Errorf("listen on grpc port %d: %w", cfg.GRPCPort, err)
	}
	s.health = platformgrpc.NewHealthServer(HealthServiceName)

	ok = true
	return s, nil
}

// openRedisBackends picks Redis-backed cache and limiter when an address is
// configured and in-process ones otherwise.
func (s *Server) openRedisBackends(ctx context.Context, cfg Config) (cache.UserCache, ratelimit.Limiter, error) {
	rule := ratelimit.Rule{Times: cfg.RateLimitTimes, Window: cfg.RateLimitWindow}
	if !cfg.Redis.Enabled() {
		log.Printf("redis not configured; using in-process cache and rate limiter")
		return cache.NewMemory(), ratelimit.NewMemory(rule), nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, timeouts.GRPCDial)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("ping redis %s: %w", cfg.Redis.Addr, err)
	}
	s.redis = client
	return cache.NewRedis(client, userCachePrefix), ratelimit.NewRedis(client, rule, rateLimitPrefix), nil
}

// HTTPAddr returns the bound HTTP address.
func (s *Server) HTTPAddr() string {
	if s == nil || s.httpListener == nil {
		return ""
	}
	return s.httpListener.Addr().String()
}

// GRPCAddr returns the bound health endpoint address.
func (s *Server) GRPCAddr() string {
	if s == nil || s.grpcListener == nil {
		return ""
	}
	return s.grpcListener.Addr().String()
}

// Run creates and serves a contacts server until the context ends.
func Run(ctx context.Context, cfg Config) error {
	server, err := New(ctx, cfg)
	if err != nil {
		return err
	}
	return server.Serve(ctx)
}

// Serve blocks until ctx ends or a listener fails, then shuts down.
func (s *Server) Serve(ctx context.Context) error {
	if s == nil || s.httpServer == nil || s.health == nil {
		return errors.New("server is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	defer s.Close()

	log.Printf("contacts HTTP server listening at %v", s.httpListener.Addr())
	httpErr := make(chan error, 1)
	go func() {
		httpErr <- s.httpServer.Serve(s.httpListener)
	}()

	log.Printf("contacts health server listening at %v", s.grpcListener.Addr())
	grpcErr := make(chan error, 1)
	go func() {
		grpcErr <- s.health.Serve(s.grpcListener)
	}()
	s.health.SetServing(true)

	handleGRPC := func(err error) error {
		if err == nil || errors.Is(err, gogrpc.ErrServerStopped) {
			return nil
		}
		return fmt.Errorf("serve gRPC health: %w", err)
	}
	handleHTTP := func(err error) error {
		if err == nil || errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve HTTP: %w", err)
	}

	select {
	case <-ctx.Done():
		s.shutdownHTTP()
		s.health.Stop()
		httpResult := handleHTTP(<-httpErr)
		if err := handleGRPC(<-grpcErr); err != nil {
			return err
		}
		return httpResult
	case err := <-httpErr:
		s.health.Stop()
		<-grpcErr
		return handleHTTP(err)
	case err := <-grpcErr:
		s.shutdownHTTP()
		<-httpErr
		return handleGRPC(err)
	}
}

func (s *Server) shutdownHTTP() {
	s.health.SetServing(false)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown HTTP server: %v", err)
	}
}

// Close releases every resource held by the server. Queued emails are
// flushed before the store closes.
func (s *Server) Close() {
	if s == nil {
		return
	}
	if s.health != nil {
		s.health.Stop()
	}
	if s.httpServer != nil {
		_ = s.httpServer.Close()
	}
	if s.httpListener != nil {
		_ = s.httpListener.Close()
	}
	if s.grpcListener != nil {
		_ = s.grpcListener.Close()
	}
	if s.dispatcher != nil {
		drainCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		if err := s.dispatcher.Close(drainCtx); err != nil {
			log.Printf("drain mail queue: %v", err)
		}
		cancel()
	}
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			log.Printf("close redis: %v", err)
		}
	}
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			log.Printf("close contacts store: %v", err)
		}
	}
}
