package grpcserver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"google.golang.org/grpc/codes"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"

	stripeapp "github.com/tbeaudouin05/stripe-checkout/api/services/stripe/app"
)

// webhookBodyLimit bounds the raw webhook payload read before verification.
const webhookBodyLimit = 1 << 20

// SignatureHeader carries Stripe's webhook signature.
const SignatureHeader = "Stripe-Signature"

// Generic messages returned for upstream failures; details are only logged.
const (
	msgCreateSubscription = "Error creating subscription"
	msgCreateCheckout     = "Error creating checkout session"
	msgCreatePayment      = "Error creating payment session"
	msgSessionInfo        = "Error retrieving session"
	msgPaymentStatus      = "Error checking payment status"
	msgListSubscriptions  = "Error listing subscriptions"
	msgWebhook            = "Error processing webhook"
)

type route struct {
	method  string
	path    string
	handler func(s *Server, mux *runtime.ServeMux) runtime.HandlerFunc
}

var routes = []route{
	{http.MethodPost, "/create-subscription", (*Server).createSubscription},
	{http.MethodPost, "/create-checkout-session", (*Server).createCheckoutSession},
	{http.MethodPost, "/create-payment-session", (*Server).createPaymentSession},
	{http.MethodGet, "/get-session-info", (*Server).getSessionInfo},
	{http.MethodGet, "/check-payment-status", (*Server).checkPaymentStatus},
	{http.MethodGet, "/subscriptions/all", (*Server).listSubscriptions},
	{http.MethodPost, "/webhook", (*Server).receiveWebhook},
	{http.MethodGet, "/healthz", (*Server).healthz},
}

// RegisterGateway mounts every HTTP route of the checkout API on mux.
// Request bodies are decoded per route, so the webhook route always sees
// the bytes exactly as Stripe sent them.
func RegisterGateway(_ context.Context, mux *runtime.ServeMux, srv *Server) error {
	for _, rt := range routes {
		if err := mux.HandlePath(rt.method, rt.path, rt.handler(srv, mux)); err != nil {
			return fmt.Errorf("register %s %s: %w", rt.method, rt.path, err)
		}
	}
	return nil
}

func (s *Server) createSubscription(mux *runtime.ServeMux) runtime.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request, _ map[string]string) {
		var req stripeapp.CreateSubscriptionRequest
		if !s.ready(mux, w, r) || !s.decode(mux, w, r, &req) {
			return
		}
		sub, err := s.svc.CreateSubscription(r.Context(), req)
		if err != nil {
			s.writeError(mux, w, r, err, msgCreateSubscription)
			return
		}
		s.writeJSON(mux, w, r, sub)
	}
}

func (s *Server) createCheckoutSession(mux *runtime.ServeMux) runtime.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request, _ map[string]string) {
		var req stripeapp.CreateCheckoutSessionRequest
		if !s.ready(mux, w, r) || !s.decode(mux, w, r, &req) {
			return
		}
		resp, err := s.svc.CreateCheckoutSession(r.Context(), req)
		if err != nil {
			s.writeError(mux, w, r, err, msgCreateCheckout)
			return
		}
		s.writeJSON(mux, w, r, resp)
	}
}

func (s *Server) createPaymentSession(mux *runtime.ServeMux) runtime.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request, _ map[string]string) {
		var req stripeapp.CreatePaymentSessionRequest
		if !s.ready(mux, w, r) || !s.decode(mux, w, r, &req) {
			return
		}
		resp, err := s.svc.CreatePaymentSession(r.Context(), req)
		if err != nil {
			s.writeError(mux, w, r, err, msgCreatePayment)
			return
		}
		s.writeJSON(mux, w, r, resp)
	}
}

func (s *Server) getSessionInfo(mux *runtime.ServeMux) runtime.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request, _ map[string]string) {
		if !s.ready(mux, w, r) {
			return
		}
		sess, err := s.svc.GetSessionInfo(r.Context(), r.URL.Query().Get("session_id"))
		if err != nil {
			s.writeError(mux, w, r, err, msgSessionInfo)
			return
		}
		s.writeJSON(mux, w, r, sess)
	}
}

func (s *Server) checkPaymentStatus(mux *runtime.ServeMux) runtime.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request, _ map[string]string) {
		if !s.ready(mux, w, r) {
			return
		}
		resp, err := s.svc.CheckPaymentStatus(r.Context(), r.URL.Query().Get("session_id"))
		if err != nil {
			s.writeError(mux, w, r, err, msgPaymentStatus)
			return
		}
		s.writeJSON(mux, w, r, resp)
	}
}

func (s *Server) listSubscriptions(mux *runtime.ServeMux) runtime.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request, _ map[string]string) {
		if !s.ready(mux, w, r) {
			return
		}
		resp, err := s.svc.ListSubscriptions(r.Context(), r.URL.Query().Get("status"))
		if err != nil {
			s.writeError(mux, w, r, err, msgListSubscriptions)
			return
		}
		s.writeJSON(mux, w, r, resp)
	}
}

// receiveWebhook answers 400 when the signature does not verify and 200
// {"received": true} for every verified event, whatever its handler did.
func (s *Server) receiveWebhook(mux *runtime.ServeMux) runtime.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request, _ map[string]string) {
		if !s.ready(mux, w, r) {
			return
		}
		payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, webhookBodyLimit))
		if err != nil {
			s.writeError(mux, w, r, fmt.Errorf("%w: failed to read request body: %v", stripeapp.ErrSignature, err), msgWebhook)
			return
		}
		if err := s.svc.ReceiveWebhook(r.Context(), payload, r.Header.Get(SignatureHeader)); err != nil {
			s.writeError(mux, w, r, err, msgWebhook)
			return
		}
		s.writeJSON(mux, w, r, stripeapp.WebhookAck{Received: true})
	}
}

func (s *Server) healthz(mux *runtime.ServeMux) runtime.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request, _ map[string]string) {
		resp, err := s.health.Check(r.Context(), &healthpb.HealthCheckRequest{Service: ServiceName})
		if err != nil {
			s.writeError(mux, w, r, err, "health check failed")
			return
		}
		code := http.StatusOK
		if resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
			code = http.StatusServiceUnavailable
		}
		s.writeJSONStatus(mux, w, r, code, resp)
	}
}

// ready rejects requests with 503 when bootstrap did not produce a service.
func (s *Server) ready(mux *runtime.ServeMux, w http.ResponseWriter, r *http.Request) bool {
	if s.svc != nil {
		return true
	}
	s.writeError(mux, w, r, status.Error(codes.Unavailable, "service not initialized"), "")
	return false
}

// decode reads a JSON body into v. An empty body leaves v at its zero value.
func (s *Server) decode(mux *runtime.ServeMux, w http.ResponseWriter, r *http.Request, v any) bool {
	inbound, _ := runtime.MarshalerForRequest(mux, r)
	err := inbound.NewDecoder(r.Body).Decode(v)
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}
	s.writeError(mux, w, r, fmt.Errorf("%w: invalid JSON body: %v", stripeapp.ErrValidation, err), "")
	return false
}

func (s *Server) writeJSON(mux *runtime.ServeMux, w http.ResponseWriter, r *http.Request, v any) {
	s.writeJSONStatus(mux, w, r, http.StatusOK, v)
}

func (s *Server) writeJSONStatus(mux *runtime.ServeMux, w http.ResponseWriter, r *http.Request, code int, v any) {
	_, outbound := runtime.MarshalerForRequest(mux, r)
	buf, err := outbound.Marshal(v)
	if err != nil {
		s.writeError(mux, w, r, err, "failed to encode response")
		return
	}
	w.Header().Set("Content-Type", outbound.ContentType(v))
	w.WriteHeader(code)
	if _, err := w.Write(buf); err != nil {
		slog.Error("failed to write response", "path", r.URL.Path, "err", err)
	}
}

// writeError logs err and replies through the mux error handler. Client errors
// carry their reason; everything else gets the route's generic message.
func (s *Server) writeError(mux *runtime.ServeMux, w http.ResponseWriter, r *http.Request, err error, generic string) {
	code := CodeFor(err)
	msg := generic
	switch {
	case errors.Is(err, stripeapp.ErrSignature):
		msg = "Webhook Error: " + reason(err, stripeapp.ErrSignature)
	case errors.Is(err, stripeapp.ErrValidation):
		msg = reason(err, stripeapp.ErrValidation)
	case code != codes.Internal:
		msg = status.Convert(err).Message()
	}
	if code == codes.Internal {
		slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "err", err)
	} else {
		slog.Warn("request rejected", "method", r.Method, "path", r.URL.Path, "code", code.String(), "err", err)
	}
	_, outbound := runtime.MarshalerForRequest(mux, r)
	runtime.HTTPError(r.Context(), mux, outbound, w, r, status.Error(code, msg))
}
