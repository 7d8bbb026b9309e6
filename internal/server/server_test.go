package server

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*Server, net.Listener) {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return New(handler, 0, time.Second, time.Second, 2*time.Second, logger), ln
}

func TestServer_ServeAndShutdown(t *testing.T) {
	srv, ln := newTestServer(t)

	var order []string
	srv.OnShutdown("postgres", func(ctx context.Context) error {
		order = append(order, "postgres")
		return nil
	})
	srv.OnShutdown("redis", func(ctx context.Context) error {
		order = append(order, "redis")
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	url := "http://" + ln.Addr().String() + "/"
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusNoContent
	}, 2*time.Second, 20*time.Millisecond)

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}

	assert.Equal(t, []string{"redis", "postgres"}, order)
}

func TestServer_ShutdownErrorsJoined(t *testing.T) {
	srv, ln := newTestServer(t)

	errRedis := errors.New("redis close failed")
	var postgresStopped bool
	srv.OnShutdown("postgres", func(ctx context.Context) error {
		postgresStopped = true
		return nil
	})
	srv.OnShutdown("redis", func(ctx context.Context) error {
		return errRedis
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := srv.Serve(ctx, ln)
	require.Error(t, err)
	assert.ErrorIs(t, err, errRedis)
	assert.True(t, postgresStopped, "later components still stop after an earlier failure")
}
