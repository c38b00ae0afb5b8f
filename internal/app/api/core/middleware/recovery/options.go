package recovery

import "net/http"

// ErrCallback writes the response for a recovered panic.
type ErrCallback func(err error, w http.ResponseWriter, r *http.Request)

// LogCallback logs a recovered panic. brokenPipe is true if the client went away.
type LogCallback func(r *http.Request, err error, stack []byte, brokenPipe bool)

// options is a struct that contains options for the recovery middleware.
// It uses the functional options pattern for flexible configuration.
type options struct {
	errCallback ErrCallback
	logCallback LogCallback
}

// Option is a type that is used to set options for the recovery middleware.
// It implements the functional options pattern.
type Option func(*options)

// WithErrCallback sets the function that writes the error response.
// By default, a JSON body with an Internal Server Error status code is written.
func WithErrCallback(fn ErrCallback) Option {
	return func(o *options) {
		o.errCallback = fn
	}
}

// WithLogCallback sets the function that logs the recovered panic.
// By default, the error and stack trace are logged with slog in error level.
func WithLogCallback(fn LogCallback) Option {
	return func(o *options) {
		o.logCallback = fn
	}
}

// newOptions is a function that returns a new options struct with sane default values.
func newOptions(opts ...Option) options {
	o := options{
		errCallback: defaultErrCallback,
		logCallback: defaultLogCallback,
	}

	for _, opt := range opts {
		opt(&o)
	}

	return o
}
