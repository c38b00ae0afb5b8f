package cors

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestMiddleware_AllowAll(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/contact", nil)
	req.Header.Set("Origin", "https://www.coral.lk")
	rec := httptest.NewRecorder()

	New().Handler(okHandler).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Expose-Headers"), "X-Request-Id")
}

func TestMiddleware_Preflight(t *testing.T) {
	m := New(WithAllowedOrigins("https://coral.lk"), WithMaxAge(60))

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/contact", nil)
	req.Header.Set("Origin", "https://coral.lk")
	req.Header.Set("Access-Control-Request-Method", "POST")
	rec := httptest.NewRecorder()

	called := false
	m.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true })).ServeHTTP(rec, req)

	assert.False(t, called)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://coral.lk", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "GET, POST, OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "Content-Type")
	assert.Equal(t, "60", rec.Header().Get("Access-Control-Max-Age"))
}

func TestMiddleware_PreflightMethodNotAllowed(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "https://coral.lk")
	req.Header.Set("Access-Control-Request-Method", "DELETE")
	rec := httptest.NewRecorder()

	New().Handler(okHandler).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestMiddleware_Origins(t *testing.T) {
	m := New(WithAllowedOrigins(" https://coral.lk ", "https://*.coral.lk"))

	tests := []struct {
		origin string
		want   string
	}{
		{"https://coral.lk", "https://coral.lk"},
		{"https://CORAL.lk", "https://CORAL.lk"},
		{"https://www.coral.lk", "https://www.coral.lk"},
		{"https://evil.example.com", ""},
		{"http://coral.lk", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.origin, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			rec := httptest.NewRecorder()

			m.Handler(okHandler).ServeHTTP(rec, req)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.want, rec.Header().Get("Access-Control-Allow-Origin"))
			assert.Contains(t, rec.Header().Values("Vary"), "Origin")
		})
	}
}

func TestWildcard(t *testing.T) {
	w, ok := newWildcard("https://*.coral.lk")
	assert.True(t, ok)
	assert.True(t, w.match("https://www.coral.lk"))
	assert.False(t, w.match("https://.coral.lk.evil.com"))
	assert.False(t, w.match("https://coral.lk"))

	_, ok = newWildcard("https://coral.lk")
	assert.False(t, ok)
}
