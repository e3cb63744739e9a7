// Package health serves the standard gRPC health protocol and reflection.
package health

import (
	"net"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	grpchealth "google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// Server reports whether the catalog is processing work. The empty service
// name and serviceName always carry the same status.
type Server struct {
	grpc        *grpc.Server
	health      *grpchealth.Server
	serviceName string
	logger      *zap.Logger
}

// NewServer creates a server that starts out NOT_SERVING.
func NewServer(serviceName string, logger *zap.Logger, opts ...grpc.ServerOption) *Server {
	s := &Server{
		grpc:        grpc.NewServer(opts...),
		health:      grpchealth.NewServer(),
		serviceName: serviceName,
		logger:      logger,
	}

	healthpb.RegisterHealthServer(s.grpc, s.health)
	reflection.Register(s.grpc)

	s.SetServing(false)
	return s
}

// SetServing flips the reported status.
func (s *Server) SetServing(serving bool) {
	status := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		status = healthpb.HealthCheckResponse_SERVING
	}
	s.health.SetServingStatus("", status)
	s.health.SetServingStatus(s.serviceName, status)
	s.logger.Info("health status changed", zap.Stringer("status", status))
}

// Serve accepts connections on lis until the server is stopped.
func (s *Server) Serve(lis net.Listener) error {
	return s.grpc.Serve(lis)
}

// Shutdown reports NOT_SERVING to watchers and drains in-flight calls.
func (s *Server) Shutdown() {
	s.health.Shutdown()
	s.grpc.GracefulStop()
}
