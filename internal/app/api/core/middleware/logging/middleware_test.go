package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coral-developers/coral-web/internal/app/api/core/middleware/tracing"
)

func newTestLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestMiddleware_Handler(t *testing.T) {
	var buf bytes.Buffer
	m := New(WithLogger(newTestLogger(&buf)), WithLevel(slog.LevelDebug), WithPrefix("[web]"))

	handler := m.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte("hello"))
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/contact", nil)
	req = req.WithContext(tracing.WithRequestId(req.Context(), "req-1"))
	handler.ServeHTTP(httptest.NewRecorder(), req)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "DEBUG", entry["level"])
	assert.Equal(t, "[web] POST /api/v1/contact", entry["msg"])
	assert.EqualValues(t, http.StatusCreated, entry["status"])
	assert.EqualValues(t, 5, entry["dataLength"])
	assert.Equal(t, "req-1", entry["requestId"])
}

func TestMiddleware_DefaultStatus(t *testing.T) {
	var buf bytes.Buffer
	handler := New(WithLogger(newTestLogger(&buf))).Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "INFO", entry["level"])
	assert.EqualValues(t, http.StatusOK, entry["status"])
	assert.NotContains(t, entry, "requestId")
}

func TestWriterWrapper(t *testing.T) {
	rec := httptest.NewRecorder()
	ww := newWriterWrapper(rec)

	ww.WriteHeader(http.StatusTeapot)
	ww.WriteHeader(http.StatusOK)
	n, err := ww.Write([]byte("abc"))

	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, http.StatusTeapot, ww.StatusCode)
	assert.EqualValues(t, 3, ww.WrittenBytes)
	assert.Equal(t, rec, ww.Unwrap())
}
