package api

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeisme/folio/pkg/configs"
)

func TestNewServerAddr(t *testing.T) {
	cfg := configs.Defaults().Server
	cfg.Host = "127.0.0.1"

	s := NewServer(cfg, http.NotFoundHandler())

	assert.Equal(t, "127.0.0.1:8080", s.Addr())
	assert.Equal(t, 15*time.Second, s.srv.ReadHeaderTimeout)
	assert.Equal(t, 30*time.Second, s.srv.WriteTimeout)
	assert.Equal(t, 10*time.Second, s.shutdown)
}

func TestRunStopsOnCancel(t *testing.T) {
	cfg := configs.Defaults().Server
	cfg.Host = "127.0.0.1"
	cfg.Port = 0

	s := NewServer(cfg, http.NotFoundHandler())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	go func() { done <- s.Run(ctx) }()

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
