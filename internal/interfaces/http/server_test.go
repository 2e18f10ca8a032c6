package http_test

import (
	"context"
	stdhttp "net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/BiasLens-Intelligence/internal/config"
	"github.com/turtacn/BiasLens-Intelligence/internal/infrastructure/monitoring/logging"
	gatewayhttp "github.com/turtacn/BiasLens-Intelligence/internal/interfaces/http"
)

func TestServer_StartStop(t *testing.T) {
	t.Parallel()

	handler := stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		w.WriteHeader(stdhttp.StatusOK)
	})
	srv := gatewayhttp.NewServer(config.ServerConfig{
		Port:            0, // ephemeral port
		ReadTimeout:     time.Second,
		WriteTimeout:    time.Second,
		ShutdownTimeout: time.Second,
	}, handler, logging.NewNopLogger())

	done := make(chan error, 1)
	go func() { done <- srv.Start() }()

	// Give the listener a moment to come up, then shut down cleanly.
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, srv.Stop(context.Background()))

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestServer_Handler(t *testing.T) {
	t.Parallel()

	handler := stdhttp.NewServeMux()
	srv := gatewayhttp.NewServer(config.ServerConfig{Port: 8080}, handler, nil)
	assert.NotNil(t, srv.Handler())
}
