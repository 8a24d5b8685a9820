package router

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"google.golang.org/protobuf/encoding/protojson"

	grpcserver "github.com/tbeaudouin05/stripe-checkout/api/services/stripe/grpc"
)

// NewServeMux returns the grpc-gateway mux used by the API. JSON is emitted
// with every field populated and unknown request fields are ignored.
func NewServeMux() *runtime.ServeMux {
	return runtime.NewServeMux(
		runtime.WithMarshalerOption(runtime.MIMEWildcard, &runtime.JSONPb{
			MarshalOptions:   protojson.MarshalOptions{EmitUnpopulated: true},
			UnmarshalOptions: protojson.UnmarshalOptions{DiscardUnknown: true},
		}),
	)
}

// NewRouter returns the central HTTP router for the API: the checkout routes
// on a grpc-gateway mux, wrapped in CORS and request logging.
func NewRouter(srv *grpcserver.Server) http.Handler {
	mux := NewServeMux()
	if err := grpcserver.RegisterGateway(context.Background(), mux, srv); err != nil {
		slog.Error("failed to register grpc-gateway routes", "err", err)
	}
	return withCORS(withRequestLogging(mux))
}
