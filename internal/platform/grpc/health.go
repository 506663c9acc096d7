// Package grpc hosts the gRPC health endpoint and its probe client.
package grpc

import (
	"context"
	"fmt"
	"net"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	gogrpc "google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health"
	grpc_health_v1 "google.golang.org/grpc/health/grpc_health_v1"
)

// HealthServer serves grpc.health.v1 for container and orchestrator probes.
type HealthServer struct {
	server *gogrpc.Server
	health *health.Server
	names  []string
}

// NewHealthServer builds a gRPC server exposing the health service for the
// overall process ("") and each named component.
func NewHealthServer(names ...string) *HealthServer {
	server := gogrpc.NewServer(gogrpc.StatsHandler(otelgrpc.NewServerHandler()))
	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(server, healthServer)

	h := &HealthServer{server: server, health: healthServer, names: append([]string{""}, names...)}
	h.SetServing(false)
	return h
}

// SetServing flips every registered name between SERVING and NOT_SERVING.
func (h *HealthServer) SetServing(serving bool) {
	if h == nil {
		return
	}
	status := grpc_health_v1.HealthCheckResponse_NOT_SERVING
	if serving {
		status = grpc_health_v1.HealthCheckResponse_SERVING
	}
	for _, name := range h.names {
		h.health.SetServingStatus(name, status)
	}
}

// Serve blocks serving gRPC on listener.
func (h *HealthServer) Serve(listener net.Listener) error {
	return h.server.Serve(listener)
}

// Stop marks the process as not serving and drains in-flight probes.
func (h *HealthServer) Stop() {
	if h == nil {
		return
	}
	h.health.Shutdown()
	h.server.GracefulStop()
}

// Probe dials addr and waits until the health check reports SERVING or the
// timeout elapses.
func Probe(ctx context.Context, addr string, timeout time.Duration, logf func(string, ...any)) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	conn, err := gogrpc.NewClient(addr, gogrpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return fmt.Errorf("dial health endpoint %s: %w", addr, err)
	}
	defer conn.Close()
	return WaitForHealth(ctx, conn, "", logf)
}

// WaitForHealth blocks until the gRPC health check reports SERVING or the context ends.
func WaitForHealth(ctx context.Context, conn *gogrpc.ClientConn, service string, logf func(string, ...any)) error {
	if conn == nil {
		return fmt.Errorf("gRPC connection is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	healthClient := grpc_health_v1.NewHealthClient(conn)
	backoff := 200 * time.Millisecond
	for {
		callCtx, cancel := context.WithTimeout(ctx, time.Second)
		response, err := healthClient.Check(callCtx, &grpc_health_v1.HealthCheckRequest{Service: service})
		cancel()
		if err == nil && response.GetStatus() == grpc_health_v1.HealthCheckResponse_SERVING {
			if logf != nil {
				logf("gRPC health check is SERVING")
			}
			return nil
		}
		if logf != nil {
			if err != nil {
				logf("waiting for gRPC health: %v", err)
			} else {
				logf("waiting for gRPC health: status %s", response.GetStatus().String())
			}
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("wait for gRPC health: %w", ctx.Err())
		case <-time.After(backoff):
		}

		if backoff < time.Second {
			backoff = min(backoff*2, time.Second)
		}
	}
}
