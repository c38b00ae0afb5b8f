package internal

import (
	"context"
	"errors"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

func TestSignalAwareContext_Signal(t *testing.T) {
	ctx := SignalAwareContext(context.Background(), syscall.SIGUSR1)

	assert.NoError(t, syscall.Kill(os.Getpid(), syscall.SIGUSR1))

	select {
	case <-ctx.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("context was not cancelled by signal")
	}
}

func TestSignalAwareContext_ParentCancel(t *testing.T) {
	parent, cancel := context.WithCancel(context.Background())
	ctx := SignalAwareContext(parent, syscall.SIGUSR2)

	cancel()

	select {
	case <-ctx.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("context was not cancelled with parent")
	}
}

func TestAssertNoError(t *testing.T) {
	assert.NotPanics(t, func() { AssertNoError(nil) })
	assert.Panics(t, func() { AssertNoError(errors.New("boom")) })
}

func TestLogClose(t *testing.T) {
	closed := false
	LogClose(closerFunc(func() error { closed = true; return nil }))
	assert.True(t, closed)

	assert.NotPanics(t, func() {
		LogClose(closerFunc(func() error { return errors.New("close failed") }))
	})
}
