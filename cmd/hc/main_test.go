package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckWebEndpointFromArgs(t *testing.T) {
	healthy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer healthy.Close()

	unhealthy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer unhealthy.Close()

	assert.Equal(t, 0, checkWebEndpointFromArgs([]string{healthy.URL + "/health"}))
	assert.Equal(t, 1, checkWebEndpointFromArgs([]string{unhealthy.URL + "/health"}))
	assert.Equal(t, 1, checkWebEndpointFromArgs([]string{"http://127.0.0.1:1/health"}))
}
