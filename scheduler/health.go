package main

import (
	"net"

	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
)

const healthService = "gametrack.Scheduler"

// Start the grpc server answering the health checks on the listener.
func startHealthServer(list net.Listener, log zerolog.Logger) (*grpc.Server, *health.Server) {
	grpcServer := grpc.NewServer()

	// Register the health check.
	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus(healthService, grpc_health_v1.HealthCheckResponse_SERVING)

	go func() {
		log.Info().Str("addr", list.Addr().String()).Msg("running the health server")
		if err := grpcServer.Serve(list); err != nil {
			log.Error().Err(err).Msg("health server stopped")
		}
	}()

	return grpcServer, healthServer
}

// Report not serving and stop the server.
func stopHealthServer(grpcServer *grpc.Server, healthServer *health.Server) {
	healthServer.SetServingStatus(healthService, grpc_health_v1.HealthCheckResponse_NOT_SERVING)
	healthServer.Shutdown()
	grpcServer.GracefulStop()
}
