package core

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-pkgz/routegroup"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coral-developers/coral-web/internal/app/api/core/respond"
	"github.com/coral-developers/coral-web/internal/config"
)

func testEndpoints() ApiEndpointSetupFunc {
	return func() (ApiVersion, GroupSetupFn) {
		return "v1", func(g *routegroup.Bundle) {
			g.HandleFunc("GET /ping", func(w http.ResponseWriter, _ *http.Request) {
				respond.JSON(w, http.StatusOK, "pong")
			})
			g.HandleFunc("GET /panic", func(_ http.ResponseWriter, _ *http.Request) {
				panic("boom")
			})
		}
	}
}

func newTestServer(t *testing.T, mod func(cfg *config.Config)) http.Handler {
	t.Helper()

	cfg := &config.Config{}
	cfg.Company.Name = "Coral Property Developers"
	cfg.Web.ExternalUrl = "https://coral.lk"
	cfg.Web.AllowedOrigins = []string{"https://coral.lk"}
	if mod != nil {
		mod(cfg)
	}

	srv, err := NewServer(cfg, testEndpoints())
	require.NoError(t, err)
	return srv.Handler()
}

func TestServer_LandingPage(t *testing.T) {
	h := newTestServer(t, nil)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Coral Property Developers contact API", body["service"])
	assert.Equal(t, "https://coral.lk", body["website"])
	assert.Equal(t, []any{"v1"}, body["versions"])
}

func TestServer_VersionedRoute(t *testing.T) {
	h := newTestServer(t, nil)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/ping", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `"pong"`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(RequestIDKey))
}

func TestServer_ReusesUpstreamRequestId(t *testing.T) {
	h := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/ping", nil)
	req.Header.Set(RequestIDKey, "upstream-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "upstream-123", rec.Header().Get(RequestIDKey))
}

func TestServer_PanicReturnsGenericError(t *testing.T) {
	h := newTestServer(t, nil)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"success":false,"message":"Something went wrong. Please contact support."}`, rec.Body.String())
}

func TestServer_CorsPreflight(t *testing.T) {
	h := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/ping", nil)
	req.Header.Set("Origin", "https://coral.lk")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://coral.lk", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestServer_ExposeHostInfo(t *testing.T) {
	h := newTestServer(t, func(cfg *config.Config) {
		cfg.Web.ExposeHostInfo = true
	})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/ping", nil))

	assert.Contains(t, rec.Header().Get("X-Served-By"), "version")
}
