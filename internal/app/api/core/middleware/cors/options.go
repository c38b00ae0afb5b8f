package cors

import (
	"strings"
)

// options is a struct that contains options for the CORS middleware.
// It uses the functional options pattern for flexible configuration.
type options struct {
	allowedOrigins []string
	allowedMethods []string
	allowedHeaders []string
	exposedHeaders []string
	maxAge         int
}

// Option is a type that is used to set options for the CORS middleware.
// It implements the functional options pattern.
type Option func(*options)

// WithAllowedOrigins sets the allowed origins for the CORS middleware.
// The value "*" allows all origins. An origin may contain a single "*" wildcard, like "https://*.coral.lk".
func WithAllowedOrigins(origins ...string) Option {
	return func(o *options) {
		o.allowedOrigins = nil
		for _, origin := range origins {
			if origin = strings.TrimSpace(origin); origin != "" {
				o.allowedOrigins = append(o.allowedOrigins, strings.ToLower(origin))
			}
		}
	}
}

// WithAllowedMethods sets the allowed methods for the CORS middleware.
// By default, GET, POST and OPTIONS are allowed.
func WithAllowedMethods(methods ...string) Option {
	return func(o *options) {
		o.allowedMethods = methods
	}
}

// WithAllowedHeaders sets the allowed request headers for the CORS middleware.
func WithAllowedHeaders(headers ...string) Option {
	return func(o *options) {
		o.allowedHeaders = headers
	}
}

// WithExposedHeaders sets the response headers that browsers may read.
func WithExposedHeaders(headers ...string) Option {
	return func(o *options) {
		o.exposedHeaders = headers
	}
}

// WithMaxAge sets the number of seconds a preflight response may be cached. 0 omits the header.
func WithMaxAge(seconds int) Option {
	return func(o *options) {
		o.maxAge = seconds
	}
}

// newOptions is a function that returns a new options struct with sane default values.
func newOptions(opts ...Option) options {
	o := options{
		allowedOrigins: []string{"*"},
		allowedMethods: []string{"GET", "POST", "OPTIONS"},
		allowedHeaders: []string{"Accept", "Content-Type", "X-Requested-With", "X-Request-Id"},
		exposedHeaders: []string{"X-Request-Id", "Retry-After"},
		maxAge:         600,
	}

	for _, opt := range opts {
		opt(&o)
	}

	return o
}
