package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/juliuskrahn/blog-backend/metrics"
)

// AdminKeyField is the body field callers pass the shared admin secret under.
// Its absence means "not admin", never an error.
const AdminKeyField = "key"

const adminRequiredMessage = "Requires admin key: specify the key in the request body ('" + AdminKeyField + "')"

// RawHandler is the signature invoked by the Lambda runtime (and by the local
// server after adapting plain HTTP). It is the only layer touching the raw
// wire types.
type RawHandler func(ctx context.Context, raw events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error)

// Request carries the per-invocation state through the middleware chain.
// Auth is built fresh for every request; Data is set by the Data stage.
type Request struct {
	Event *Event
	Auth  *Authenticator
	Data  any
}

// Handler processes a mapped request and must return a terminal Response.
type Handler func(ctx context.Context, req *Request) *Response

// Stage wraps a handler with a cross-cutting policy. A stage either produces a
// terminal Response or calls onward.
type Stage func(next Handler) Handler

// Chain composes stages around a handler. Stages apply in declaration order:
// the first stage is outermost. Ordering is load-bearing — RegisterUser must
// precede AdminGuard, and AdminGuard precedes Data so an unauthorized caller
// gets a 401 before any schema detail leaks.
func Chain(h Handler, stages ...Stage) Handler {
	for i := len(stages) - 1; i >= 0; i-- {
		h = stages[i](h)
	}
	return h
}

// Wrap builds the outermost stage: it maps the raw inbound event into an
// Event, attaches a fresh Authenticator, invokes the chain and maps the
// resulting Response back to the wire format. A panic or a missing response is
// mapped to a 500 so no failure escapes unmapped.
func Wrap(name string, verifier *Verifier, log *slog.Logger, h Handler) RawHandler {
	return func(ctx context.Context, raw events.APIGatewayProxyRequest) (resp events.APIGatewayProxyResponse, err error) {
		start := time.Now()
		defer func() {
			if r := recover(); r != nil {
				log.Error("Handler panicked", "handler", name, "panic", r)
				resp = NewErrorResponse(http.StatusInternalServerError, "Internal server error").Map()
			}
			metrics.ObserveRequest(name, resp.StatusCode, time.Since(start))
		}()

		req := &Request{
			Event: NewEvent(raw),
			Auth:  verifier.NewAuthenticator(),
		}
		out := h(ctx, req)
		if out == nil {
			log.Error("Handler returned no response", "handler", name)
			out = NewErrorResponse(http.StatusInternalServerError, "Internal server error")
		}
		return out.Map(), nil
	}
}

// RegisterUser registers the caller on the request's Authenticator from the
// body's credential field. It never short-circuits on the authentication
// outcome; only an unreachable secret store terminates the request.
func RegisterUser(log *slog.Logger) Stage {
	return func(next Handler) Handler {
		return func(ctx context.Context, req *Request) *Response {
			key, _ := req.Event.Body[AdminKeyField].(string)
			if _, err := req.Auth.Register(ctx, key); err != nil {
				log.Error("Admin key lookup failed", "err", err)
				return NewErrorResponse(http.StatusInternalServerError, "Authentication is currently unavailable")
			}
			return next(ctx, req)
		}
	}
}

// AdminGuard short-circuits with a 401 unless the registered caller is the
// admin. Reading the flag before registration is a programming error and maps
// to a 500, not a 4xx.
func AdminGuard(log *slog.Logger) Stage {
	return func(next Handler) Handler {
		return func(ctx context.Context, req *Request) *Response {
			isAdmin, err := req.Auth.IsAdmin()
			if err != nil {
				log.Error("Admin guard ran before user registration", "err", err)
				return NewErrorResponse(http.StatusInternalServerError, "Internal server error")
			}
			if !isAdmin {
				return NewErrorResponse(http.StatusUnauthorized, adminRequiredMessage)
			}
			return next(ctx, req)
		}
	}
}

// Data binds a typed payload from the envelope using schema and passes it on
// via req.Data. A validation failure is a 400 with the engine's detail; any
// other build failure is logged with full detail and mapped to a generic 500
// so bugs are never silently masked.
func Data(schema Schema, log *slog.Logger) Stage {
	return func(next Handler) Handler {
		return func(ctx context.Context, req *Request) *Response {
			data, err := schema.Build(req)
			if err != nil {
				var validationErr *ValidationError
				if errors.As(err, &validationErr) {
					return NewErrorResponse(http.StatusBadRequest,
						[]any{"Request validation failed", validationErr.Detail})
				}
				log.Error("Request data failed to build", "err", err)
				return NewErrorResponse(http.StatusInternalServerError,
					"Failed to load the request data. Make sure to check your request.")
			}
			req.Data = data
			return next(ctx, req)
		}
	}
}
