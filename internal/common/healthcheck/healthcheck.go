package healthcheck

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

type service struct {
	listenAddress string
	checkFunc     func() int
}

type Option func(svc *service)

// New creates a new healthcheck instance that can be started with StartWithContext() or StartForeground().
func New(opts ...Option) *service {
	svc := &service{
		listenAddress: ":11223",
		checkFunc: func() int {
			return http.StatusOK
		},
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// StartForeground starts the healthcheck webserver. This function will block until the context
// gets canceled or the healthcheck server crashes.
func (s *service) StartForeground(ctx context.Context) {
	srv := &http.Server{
		Addr:         s.listenAddress,
		Handler:      s.handler(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  15 * time.Second,
	}

	srvContext, cancelFn := context.WithCancel(ctx)
	go func() {
		if err := srv.ListenAndServe(); err != nil {
			slog.Info("healthcheck service exited", "address", s.listenAddress, "error", err)
			cancelFn()
		}
	}()
	slog.Debug("started healthcheck service", "address", s.listenAddress)

	// Wait for the main context to end, this call blocks
	<-srvContext.Done()

	// 1-second grace period
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()
	srv.SetKeepAlivesEnabled(false) // disable keep-alive kills idle connections
	_ = srv.Shutdown(shutdownCtx)

	slog.Debug("healthcheck service stopped", "address", s.listenAddress)
}

// StartWithContext starts a background goroutine with the healthcheck webserver. The goroutine will be
// stopped if the context gets canceled or the healthcheck server crashes.
func (s *service) StartWithContext(ctx context.Context) {
	go s.StartForeground(ctx)
}

func (s *service) handler() http.Handler {
	router := http.NewServeMux()
	router.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(s.checkFunc())
	})
	return router
}

// ListenOn allows to change the default listening address of ":11223".
func ListenOn(addr string) Option {
	return func(svc *service) {
		svc.listenAddress = addr
	}
}

// WithCustomCheck allows to use a custom check function. The integer return value of the check
// function is used as HTTP status code.
func WithCustomCheck(fnc func() int) Option {
	return func(svc *service) {
		if fnc != nil {
			svc.checkFunc = fnc
		}
	}
}
