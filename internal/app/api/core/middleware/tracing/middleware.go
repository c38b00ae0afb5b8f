package tracing

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

type contextKey struct{}

// Middleware is a type that creates a new tracing middleware. The tracing middleware
// assigns a request id to every request and exposes it in the context and the response headers.
type Middleware struct {
	o options
}

// New returns a new tracing middleware with the provided options.
func New(opts ...Option) *Middleware {
	o := newOptions(opts...)

	m := &Middleware{
		o: o,
	}

	return m
}

// Handler returns the tracing middleware handler.
func (m *Middleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var reqId string

		// read upstream header und re-use it
		if m.o.upstreamReqIdHeader != "" {
			reqId = r.Header.Get(m.o.upstreamReqIdHeader)
		}

		// generate new id
		if reqId == "" && m.o.generateIds {
			reqId = uuid.NewString()
		}

		// set response header
		if m.o.headerIdentifier != "" && reqId != "" {
			w.Header().Set(m.o.headerIdentifier, reqId)
		}

		next.ServeHTTP(w, r.WithContext(WithRequestId(r.Context(), reqId)))
	})
}

// WithRequestId returns a copy of the context that carries the given request id.
func WithRequestId(ctx context.Context, reqId string) context.Context {
	return context.WithValue(ctx, contextKey{}, reqId)
}

// RequestId returns the request id stored in the context, or an empty string.
func RequestId(ctx context.Context) string {
	reqId, _ := ctx.Value(contextKey{}).(string)
	return reqId
}
