package server_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/Astemirdum/library-circulation/circulation/config"
	"github.com/Astemirdum/library-circulation/circulation/internal/server"
	"github.com/stretchr/testify/require"
)

func TestServer_StopBeforeRun(t *testing.T) {
	t.Parallel()
	srv := server.NewServer(config.HTTPServer{
		Host:        "localhost",
		Port:        "0",
		ReadTimeout: time.Second,
	}, http.NotFoundHandler())
	require.Equal(t, "localhost:0", srv.Addr())

	require.NoError(t, srv.Stop(context.Background()))
	require.NoError(t, srv.Run())
}

func TestServer_RunStop(t *testing.T) {
	t.Parallel()
	srv := server.NewServer(config.HTTPServer{Host: "127.0.0.1", Port: "0"}, http.NotFoundHandler())

	done := make(chan error, 1)
	go func() { done <- srv.Run() }()

	time.Sleep(50 * time.Millisecond)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, srv.Stop(ctx))

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop")
	}
}
