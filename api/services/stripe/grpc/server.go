package grpcserver

import (
	"errors"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"

	stripeapp "github.com/tbeaudouin05/stripe-checkout/api/services/stripe/app"
)

// ServiceName is the name reported by the health service for the checkout API.
const ServiceName = "stripe.checkout"

// Server adapts the Stripe app service to the HTTP gateway and owns the
// health state shared by the HTTP and gRPC listeners.
type Server struct {
	svc    stripeapp.Service
	health *health.Server
}

// New returns a Server for svc. A nil svc (failed bootstrap) is reported as
// NOT_SERVING and every API route answers 503.
func New(svc stripeapp.Service) *Server {
	h := health.NewServer()
	st := healthpb.HealthCheckResponse_SERVING
	if svc == nil {
		st = healthpb.HealthCheckResponse_NOT_SERVING
	}
	h.SetServingStatus("", st)
	h.SetServingStatus(ServiceName, st)
	return &Server{svc: svc, health: h}
}

// NewGRPCServer returns a gRPC server exposing the standard health service and reflection.
func (s *Server) NewGRPCServer(opts ...grpc.ServerOption) *grpc.Server {
	gs := grpc.NewServer(opts...)
	healthpb.RegisterHealthServer(gs, s.health)
	reflection.Register(gs)
	return gs
}

// Shutdown flips every health status to NOT_SERVING so load balancers drain the instance.
func (s *Server) Shutdown() { s.health.Shutdown() }

// CodeFor maps app-layer errors to gRPC codes; the gateway turns those into HTTP statuses.
func CodeFor(err error) codes.Code {
	if st, ok := status.FromError(err); ok {
		return st.Code()
	}
	switch {
	case errors.Is(err, stripeapp.ErrValidation), errors.Is(err, stripeapp.ErrSignature):
		return codes.InvalidArgument
	default:
		return codes.Internal
	}
}

// reason strips the sentinel prefix from a wrapped app error.
func reason(err, sentinel error) string {
	return strings.TrimPrefix(err.Error(), sentinel.Error()+": ")
}
