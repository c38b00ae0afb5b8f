package ratelimit

import (
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// KeyFunc extracts the rate limit key (usually the client ip) from a request.
type KeyFunc func(r *http.Request) string

// options is a struct that contains options for the rate limit middleware.
// It uses the functional options pattern for flexible configuration.
type options struct {
	limit      rate.Limit
	burst      int
	evictAfter time.Duration
	keyFunc    KeyFunc
	onLimited  http.HandlerFunc
}

// Option is a type that is used to set options for the rate limit middleware.
// It implements the functional options pattern.
type Option func(*options)

// WithLimit sets the sustained number of requests per second and the burst size per client.
// A limit of 0 or less disables rate limiting.
func WithLimit(perSecond float64, burst int) Option {
	return func(o *options) {
		o.limit = rate.Limit(perSecond)
		o.burst = burst
	}
}

// WithEvictAfter sets the idle time after which the state of a client is dropped.
func WithEvictAfter(d time.Duration) Option {
	return func(o *options) {
		o.evictAfter = d
	}
}

// WithKeyFunc sets the function that identifies a client. By default, the remote address is used.
func WithKeyFunc(fn KeyFunc) Option {
	return func(o *options) {
		o.keyFunc = fn
	}
}

// WithLimitedHandler sets the handler that answers rejected requests.
// By default, a plain 429 Too Many Requests response is written.
func WithLimitedHandler(fn http.HandlerFunc) Option {
	return func(o *options) {
		o.onLimited = fn
	}
}

// newOptions is a function that returns a new options struct with sane default values.
func newOptions(opts ...Option) options {
	o := options{
		limit:      rate.Limit(1),
		burst:      5,
		evictAfter: 15 * time.Minute,
		keyFunc: func(r *http.Request) string {
			return r.RemoteAddr
		},
		onLimited: func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
		},
	}

	for _, opt := range opts {
		opt(&o)
	}

	if o.burst < 1 {
		o.burst = 1
	}
	if o.evictAfter <= 0 {
		o.evictAfter = 15 * time.Minute
	}

	return o
}
