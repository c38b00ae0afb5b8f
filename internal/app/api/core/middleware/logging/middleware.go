package logging

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/coral-developers/coral-web/internal/app/api/core/middleware/tracing"
)

// Middleware is a type that creates a new logging middleware. The logging middleware
// logs information about each request.
type Middleware struct {
	o options
}

// New returns a new logging middleware with the provided options.
func New(opts ...Option) *Middleware {
	o := newOptions(opts...)

	m := &Middleware{
		o: o,
	}

	return m
}

// Handler returns the logging middleware handler.
func (m *Middleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := newWriterWrapper(w)
		start := time.Now()
		defer func() {
			m.logRequest(r, ww, time.Since(start))
		}()

		next.ServeHTTP(ww, r)
	})
}

func (m *Middleware) logRequest(r *http.Request, ww *writerWrapper, duration time.Duration) {
	message := fmt.Sprintf("%s %s", r.Method, r.URL.Path)
	if m.o.prefix != "" {
		message = m.o.prefix + " " + message
	}

	// fixed attribute order, method and path are part of the message
	args := []any{
		"protocol", r.Proto,
		"status", ww.StatusCode,
		"dataLength", ww.WrittenBytes,
		"duration", duration.String(),
		"clientIP", r.RemoteAddr,
		"userAgent", r.UserAgent(),
		"referer", r.Header.Get("Referer"),
	}
	if reqId := tracing.RequestId(r.Context()); reqId != "" {
		args = append(args, "requestId", reqId)
	}

	logger := m.o.logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Log(context.Background(), m.o.logLevel, message, args...)
}
