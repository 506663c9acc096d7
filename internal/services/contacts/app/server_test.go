package server

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"

	platformgrpc "github.com/louisbranch/contactbook/internal/platform/grpc"
)

func testConfig(t *testing.T) Config {
	t.Helper()
	return Config{
		HTTPAddr:        "127.0.0.1:0",
		GRPCPort:        0,
		DBURL:           filepath.Join(t.TempDir(), "contactbook.db"),
		JWTSecret:       "test-secret",
		JWTAlgorithm:    "HS256",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: time.Hour,
		EmailTokenTTL:   time.Hour,
		UserCacheTTL:    time.Minute,
		AvatarCacheTTL:  time.Minute,
		RateLimitTimes:  1,
		RateLimitWindow: 20 * time.Second,
	}
}

func startServer(t *testing.T, cfg Config) *Server {
	t.Helper()

	srv, err := New(context.Background(), cfg)
	require.NoError(t, err)

	runCtx, runCancel := context.WithCancel(context.Background())
	serveDone := make(chan error, 1)
	go func() {
		serveDone <- srv.Serve(runCtx)
	}()
	t.Cleanup(func() {
		runCancel()
		select {
		case serveErr := <-serveDone:
			if serveErr != nil {
				t.Fatalf("serve: %v", serveErr)
			}
		case <-time.After(5 * time.Second):
			t.Fatal("timeout waiting for server shutdown")
		}
	})
	return srv
}

func loopback(t *testing.T, addr string) string {
	t.Helper()
	_, port, err := net.SplitHostPort(addr)
	require.NoError(t, err)
	return net.JoinHostPort("127.0.0.1", port)
}

func getJSON(t *testing.T, url string) (int, map[string]string) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body map[string]string
	require.NoError(t, json.Unmarshal(data, &body))
	return resp.StatusCode, body
}

func TestServer_ServesHTTPAndHealth(t *testing.T) {
	srv := startServer(t, testConfig(t))

	require.NoError(t, platformgrpc.Probe(context.Background(), loopback(t, srv.GRPCAddr()), 3*time.Second, nil))

	status, body := getJSON(t, "http://"+srv.HTTPAddr()+"/")
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "Welcome to the contacts API!", body["message"])

	status, body = getJSON(t, "http://"+srv.HTTPAddr()+"/api/healthchecker")
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "Database connection is healthy!", body["message"])
}

func TestServer_UsesRedisWhenConfigured(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := testConfig(t)
	cfg.Redis = RedisConfig{Addr: mr.Addr()}

	srv := startServer(t, cfg)
	require.NotNil(t, srv.redis)

	status, _ := getJSON(t, "http://"+srv.HTTPAddr()+"/api/healthchecker")
	require.Equal(t, http.StatusOK, status)
}

func TestNew_RejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "missing secret", mutate: func(c *Config) { c.JWTSecret = " " }},
		{name: "missing db url", mutate: func(c *Config) { c.DBURL = "" }},
		{name: "bad grpc port", mutate: func(c *Config) { c.GRPCPort = 70000 }},
		{name: "bad rate limit", mutate: func(c *Config) { c.RateLimitTimes = 0 }},
		{name: "unsupported algorithm", mutate: func(c *Config) { c.JWTAlgorithm = "RS256" }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := testConfig(t)
			tc.mutate(&cfg)
			_, err := New(context.Background(), cfg)
			require.Error(t, err)
		})
	}
}

func TestServe_RequiresConfiguredServer(t *testing.T) {
	var srv *Server
	require.Error(t, srv.Serve(context.Background()))
	srv.Close()
	require.Empty(t, srv.HTTPAddr())
	require.Empty(t, srv.GRPCAddr())
}
