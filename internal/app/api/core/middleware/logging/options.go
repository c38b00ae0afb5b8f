package logging

import "log/slog"

// options is a struct that contains options for the logging middleware.
// It uses the functional options pattern for flexible configuration.
type options struct {
	logLevel slog.Level
	prefix   string
	logger   *slog.Logger
}

// Option is a type that is used to set options for the logging middleware.
// It implements the functional options pattern.
type Option func(*options)

// WithLevel is a method that sets the log level for the logging middleware.
// By default, the log level is set to Info.
func WithLevel(level slog.Level) Option {
	return func(o *options) {
		o.logLevel = level
	}
}

// WithPrefix is a method that sets the prefix for the logging middleware.
// If a prefix is set, it will be prepended to each log message. A space will
// be added between the prefix and the log message.
func WithPrefix(prefix string) Option {
	return func(o *options) {
		o.prefix = prefix
	}
}

// WithLogger is a method that sets the logger for the logging middleware.
// If no logger is set, the default slog logger is used.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// newOptions is a function that returns a new options struct with sane default values.
func newOptions(opts ...Option) options {
	o := options{
		logLevel: slog.LevelInfo,
	}

	for _, opt := range opts {
		opt(&o)
	}

	return o
}
