package cors

import (
	"net/http"
	"slices"
	"strconv"
	"strings"
)

// Middleware is a type that creates a new CORS middleware. The CORS middleware
// adds Cross-Origin Resource Sharing headers to the response and answers preflight requests.
type Middleware struct {
	o options

	allowAll  bool
	origins   []string
	wildcards []wildcard
}

// New returns a new CORS middleware with the provided options.
func New(opts ...Option) *Middleware {
	o := newOptions(opts...)

	m := &Middleware{
		o: o,
	}

	for _, origin := range o.allowedOrigins {
		if origin == "*" {
			m.allowAll = true
			break
		}
		if w, ok := newWildcard(origin); ok {
			m.wildcards = append(m.wildcards, w)
		} else {
			m.origins = append(m.origins, origin)
		}
	}

	return m
}

// Handler returns the CORS middleware handler.
func (m *Middleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		isPreflight := r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != ""

		if isPreflight {
			m.handlePreflight(w, r)
			w.WriteHeader(http.StatusNoContent)
			return
		}

		m.handleNormal(w, r)
		next.ServeHTTP(w, r)
	})
}

func (m *Middleware) handlePreflight(w http.ResponseWriter, r *http.Request) {
	headers := w.Header()
	origin := r.Header.Get("Origin")

	headers.Add("Vary", "Origin")
	headers.Add("Vary", "Access-Control-Request-Method")
	headers.Add("Vary", "Access-Control-Request-Headers")

	if !m.isOriginAllowed(origin) {
		return
	}
	if !slices.Contains(m.o.allowedMethods, strings.ToUpper(r.Header.Get("Access-Control-Request-Method"))) {
		return
	}

	m.setAllowOrigin(headers, origin)
	headers.Set("Access-Control-Allow-Methods", strings.Join(m.o.allowedMethods, ", "))
	if len(m.o.allowedHeaders) > 0 {
		headers.Set("Access-Control-Allow-Headers", strings.Join(m.o.allowedHeaders, ", "))
	}
	if m.o.maxAge > 0 {
		headers.Set("Access-Control-Max-Age", strconv.Itoa(m.o.maxAge))
	}
}

func (m *Middleware) handleNormal(w http.ResponseWriter, r *http.Request) {
	headers := w.Header()
	origin := r.Header.Get("Origin")

	headers.Add("Vary", "Origin")
	if origin == "" || !m.isOriginAllowed(origin) {
		return
	}

	m.setAllowOrigin(headers, origin)
	if len(m.o.exposedHeaders) > 0 {
		headers.Set("Access-Control-Expose-Headers", strings.Join(m.o.exposedHeaders, ", "))
	}
}

func (m *Middleware) setAllowOrigin(headers http.Header, origin string) {
	if m.allowAll {
		headers.Set("Access-Control-Allow-Origin", "*")
	} else {
		headers.Set("Access-Control-Allow-Origin", origin)
	}
}

func (m *Middleware) isOriginAllowed(origin string) bool {
	if m.allowAll {
		return true
	}

	origin = strings.ToLower(origin)
	if slices.Contains(m.origins, origin) {
		return true
	}
	for _, w := range m.wildcards {
		if w.match(origin) {
			return true
		}
	}
	return false
}
