package tracing

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMiddleware_Handler(t *testing.T) {
	tests := []struct {
		name          string
		opts          []Option
		upstreamId    string
		wantGenerated bool
		wantId        string
	}{
		{
			name:          "generates id",
			wantGenerated: true,
		},
		{
			name:       "reuses upstream id",
			opts:       []Option{WithUpstreamHeader("X-Upstream-Id")},
			upstreamId: "upstream-123",
			wantId:     "upstream-123",
		},
		{
			name:          "upstream header configured but missing",
			opts:          []Option{WithUpstreamHeader("X-Upstream-Id")},
			wantGenerated: true,
		},
		{
			name:   "generation disabled",
			opts:   []Option{WithoutIdGeneration()},
			wantId: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ctxId string
			handler := New(tt.opts...).Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				ctxId = RequestId(r.Context())
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.upstreamId != "" {
				req.Header.Set("X-Upstream-Id", tt.upstreamId)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if tt.wantGenerated {
				assert.Len(t, ctxId, 36)
				assert.Equal(t, ctxId, rec.Header().Get("X-Request-Id"))
				return
			}
			assert.Equal(t, tt.wantId, ctxId)
			assert.Equal(t, tt.wantId, rec.Header().Get("X-Request-Id"))
		})
	}
}

func TestMiddleware_CustomHeader(t *testing.T) {
	handler := New(WithHeaderIdentifier("X-Trace")).Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.NotEmpty(t, rec.Header().Get("X-Trace"))
	assert.Empty(t, rec.Header().Get("X-Request-Id"))
}

func TestRequestId(t *testing.T) {
	assert.Empty(t, RequestId(context.Background()))
	assert.Equal(t, "abc", RequestId(WithRequestId(context.Background(), "abc")))
}
