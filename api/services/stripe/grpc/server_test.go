package grpcserver

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"

	stripeapp "github.com/tbeaudouin05/stripe-checkout/api/services/stripe/app"
	"github.com/tbeaudouin05/stripe-checkout/api/services/stripe/app/mock"
)

func TestCodeFor(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want codes.Code
	}{
		{"validation", fmt.Errorf("%w: missing session_id", stripeapp.ErrValidation), codes.InvalidArgument},
		{"signature", fmt.Errorf("%w: no signatures found", stripeapp.ErrSignature), codes.InvalidArgument},
		{"gateway", fmt.Errorf("%w: card declined", stripeapp.ErrGateway), codes.Internal},
		{"bad event", stripeapp.ErrBadEvent, codes.Internal},
		{"plain", errors.New("boom"), codes.Internal},
		{"grpc status", status.Error(codes.Unavailable, "down"), codes.Unavailable},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, CodeFor(c.err))
		})
	}
}

func TestReason(t *testing.T) {
	err := fmt.Errorf("%w: missing session_id", stripeapp.ErrValidation)
	assert.Equal(t, "missing session_id", reason(err, stripeapp.ErrValidation))
	assert.Equal(t, stripeapp.ErrValidation.Error(), reason(stripeapp.ErrValidation, stripeapp.ErrValidation))
}

func TestNew_HealthFollowsService(t *testing.T) {
	check := func(srv *Server, service string) healthpb.HealthCheckResponse_ServingStatus {
		resp, err := srv.health.Check(context.Background(), &healthpb.HealthCheckRequest{Service: service})
		require.NoError(t, err)
		return resp.GetStatus()
	}

	up := New(mock.NewMockService(gomock.NewController(t)))
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, check(up, ServiceName))
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, check(up, ""))

	down := New(nil)
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, check(down, ServiceName))

	up.Shutdown()
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, check(up, ServiceName))
}

func TestNewGRPCServer_RegistersHealth(t *testing.T) {
	srv := New(mock.NewMockService(gomock.NewController(t)))
	gs := srv.NewGRPCServer()
	defer gs.Stop()

	info := gs.GetServiceInfo()
	assert.Contains(t, info, healthpb.Health_ServiceDesc.ServiceName)
}
