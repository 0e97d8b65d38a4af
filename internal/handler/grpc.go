package handler

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

const checkTimeout = 3 * time.Second

// DependencyCheck reports whether a backing service is reachable.
type DependencyCheck func(ctx context.Context) error

// GrpcHandler serves grpc.health.v1.Health. Every dependency is exposed as its
// own service name and the empty name reflects all of them.
type GrpcHandler struct {
	health *health.Server
	checks map[string]DependencyCheck
}

func CreateGRPCHandler(checks map[string]DependencyCheck) *GrpcHandler {
	return &GrpcHandler{
		health: health.NewServer(),
		checks: checks,
	}
}

// CreateGRPCServer builds a traced server with the health and reflection
// services registered.
func CreateGRPCServer(h *GrpcHandler) *grpc.Server {
	srv := grpc.NewServer(grpc.StatsHandler(otelgrpc.NewServerHandler()))
	healthpb.RegisterHealthServer(srv, h.health)
	reflection.Register(srv)

	return srv
}

// RefreshStatus runs every dependency check and publishes the result.
func (h *GrpcHandler) RefreshStatus() {
	overall := healthpb.HealthCheckResponse_SERVING

	for name, check := range h.checks {
		ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
		err := check(ctx)
		cancel()

		status := healthpb.HealthCheckResponse_SERVING
		if err != nil {
			log.Warn().Err(err).Str("component", "RefreshStatus").Str("dependency", name).Msg("")
			status = healthpb.HealthCheckResponse_NOT_SERVING
			overall = healthpb.HealthCheckResponse_NOT_SERVING
		}

		h.health.SetServingStatus(name, status)
	}

	h.health.SetServingStatus("", overall)
}

func (h *GrpcHandler) Shutdown() {
	h.health.Shutdown()
}
