package commands

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeServer struct {
	startErr error
	stopped  chan struct{}
	shutdown atomic.Bool
}

func newFakeServer(startErr error) *fakeServer {
	return &fakeServer{startErr: startErr, stopped: make(chan struct{})}
}

func (f *fakeServer) Start(ctx context.Context) error {
	if f.startErr != nil {
		return f.startErr
	}
	<-f.stopped
	return nil
}

func (f *fakeServer) Shutdown(ctx context.Context) error {
	if f.shutdown.CompareAndSwap(false, true) {
		close(f.stopped)
	}
	return nil
}

func TestServe(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("signal-stops-all-servers", func(t *testing.T) {
		api := newFakeServer(nil)
		metrics := newFakeServer(nil)
		ctx, cancel := context.WithCancel(context.Background())

		done := make(chan error, 1)
		go func() { done <- serve(ctx, logger, time.Second, api, metrics) }()

		cancel()

		select {
		case err := <-done:
			require.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Fatal("serve did not return")
		}
		assert.True(t, api.shutdown.Load())
		assert.True(t, metrics.shutdown.Load())
	})

	t.Run("failing-server-stops-the-others", func(t *testing.T) {
		api := newFakeServer(nil)
		broken := newFakeServer(errors.New("address already in use"))

		err := serve(context.Background(), logger, time.Second, api, broken)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "address already in use")
		assert.True(t, api.shutdown.Load())
	})
}
