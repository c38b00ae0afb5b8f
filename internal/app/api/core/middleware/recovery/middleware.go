package recovery

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"runtime/debug"
	"strings"

	"github.com/coral-developers/coral-web/internal/app/api/core/middleware/tracing"
	"github.com/coral-developers/coral-web/internal/app/api/core/respond"
)

// Middleware is a type that creates a new recovery middleware. The recovery middleware
// recovers from panics and returns an Internal Server Error response. This middleware should
// be the first middleware in the middleware chain, so that it can recover from panics in other
// middlewares.
type Middleware struct {
	o options
}

// New returns a new recovery middleware with the provided options.
func New(opts ...Option) *Middleware {
	o := newOptions(opts...)

	m := &Middleware{
		o: o,
	}

	return m
}

// Handler returns the recovery middleware handler.
func (m *Middleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec) // let net/http abort the response
			}

			stack := debug.Stack()

			realErr, ok := rec.(error)
			if !ok {
				realErr = fmt.Errorf("%v", rec)
			}

			// a broken connection does not warrant a response
			brokenPipe := isBrokenPipeError(realErr)

			if m.o.logCallback != nil {
				m.o.logCallback(r, realErr, stack, brokenPipe)
			}

			if !brokenPipe && m.o.errCallback != nil {
				m.o.errCallback(realErr, w, r)
			}
		}()

		next.ServeHTTP(w, r)
	})
}

func defaultErrCallback(_ error, w http.ResponseWriter, _ *http.Request) {
	respond.JSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal Server Error"})
}

func defaultLogCallback(r *http.Request, err error, stack []byte, brokenPipe bool) {
	if brokenPipe {
		return
	}

	slog.Error("recovered from panic",
		"method", r.Method,
		"path", r.URL.Path,
		"requestId", tracing.RequestId(r.Context()),
		"error", err,
		"stack", string(stack))
}

func isBrokenPipeError(err error) bool {
	var syscallErr *os.SyscallError
	if errors.As(err, &syscallErr) {
		errMsg := strings.ToLower(syscallErr.Err.Error())
		if strings.Contains(errMsg, "broken pipe") ||
			strings.Contains(errMsg, "connection reset by peer") {
			return true
		}
	}

	return false
}
