package grpcserver

import (
	"context"
	"net"

	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName is the service reported by the health endpoint alongside "".
const ServiceName = "userresource.UserService"

// NewServer builds a gRPC server exposing the standard health service. The
// returned health server reports SERVING for "" and ServiceName.
func NewServer(log zerolog.Logger) (*grpc.Server, *health.Server) {
	srv := grpc.NewServer(grpc.UnaryInterceptor(NewUnaryLoggingInterceptor(log)))
	hs := health.NewServer()
	healthpb.RegisterHealthServer(srv, hs)
	hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	hs.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)
	return srv, hs
}

// StartGRPC starts the health server on addr and returns the bound address and
// a shutdown function. Shutdown flips every service to NOT_SERVING before
// draining connections.
func StartGRPC(addr string, log zerolog.Logger) (net.Addr, func(context.Context) error, error) {
	if addr == "" {
		addr = ":50051"
	}
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, nil, err
	}
	srv, hs := NewServer(log)
	go func() {
		if err := srv.Serve(lis); err != nil {
			log.Error().Err(err).Msg("grpc server stopped")
		}
	}()
	return lis.Addr(), shutdownFunc(srv, hs), nil
}

func shutdownFunc(srv *grpc.Server, hs *health.Server) func(context.Context) error {
	return func(ctx context.Context) error {
		hs.Shutdown()
		done := make(chan struct{})
		go func() { srv.GracefulStop(); close(done) }()
		select {
		case <-done:
			return nil
		case <-ctx.Done():
			srv.Stop()
			return ctx.Err()
		}
	}
}
