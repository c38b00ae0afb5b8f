package tracing

// options is a struct that contains options for the tracing middleware.
// It uses the functional options pattern for flexible configuration.
type options struct {
	upstreamReqIdHeader string
	headerIdentifier    string
	generateIds         bool
}

// Option is a type that is used to set options for the tracing middleware.
// It implements the functional options pattern.
type Option func(*options)

// WithHeaderIdentifier specifies the header name for the request id that is added to the response headers.
// If the identifier is empty, the request id will not be added to the response headers.
func WithHeaderIdentifier(identifier string) Option {
	return func(o *options) {
		o.headerIdentifier = identifier
	}
}

// WithUpstreamHeader sets the upstream header name, that should be used to fetch the request id.
// If no upstream header is found, a random id is generated.
func WithUpstreamHeader(header string) Option {
	return func(o *options) {
		o.upstreamReqIdHeader = header
	}
}

// WithoutIdGeneration disables the generation of request ids. Only upstream ids are used.
func WithoutIdGeneration() Option {
	return func(o *options) {
		o.generateIds = false
	}
}

// newOptions is a function that returns a new options struct with sane default values.
func newOptions(opts ...Option) options {
	o := options{
		headerIdentifier: "X-Request-Id",
		generateIds:      true,
	}

	for _, opt := range opts {
		opt(&o)
	}

	return o
}
