package app

import (
	"context"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripmock/internal/config"
)

func testServerConfig(port int) config.ServerConfig {
	return config.ServerConfig{
		Port:            port,
		ReadTimeout:     time.Second,
		WriteTimeout:    time.Second,
		ShutdownTimeout: time.Second,
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "ok")
	})
}

func portOf(t *testing.T, addr string) int {
	t.Helper()
	_, port, err := net.SplitHostPort(addr)
	require.NoError(t, err)
	p, err := strconv.Atoi(port)
	require.NoError(t, err)
	return p
}

func TestServer_StartServesAfterReturn(t *testing.T) {
	srv := NewServer(testServerConfig(0), okHandler(), discardLogger())
	ctx := context.Background()

	require.NoError(t, srv.Start(ctx))
	t.Cleanup(func() { _ = srv.Stop(ctx) })

	port := portOf(t, srv.Addr())
	resp, err := http.Get("http://127.0.0.1:" + strconv.Itoa(port) + "/")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "ok", string(body))
}

func TestServer_StopReleasesPort(t *testing.T) {
	ctx := context.Background()

	first := NewServer(testServerConfig(0), okHandler(), discardLogger())
	require.NoError(t, first.Start(ctx))
	port := portOf(t, first.Addr())

	require.NoError(t, first.Stop(ctx))
	assert.Empty(t, first.Addr())

	second := NewServer(testServerConfig(port), okHandler(), discardLogger())
	require.NoError(t, second.Start(ctx))
	assert.Equal(t, port, portOf(t, second.Addr()))
	require.NoError(t, second.Stop(ctx))

	// The same Server can be started again after Stop.
	require.NoError(t, first.Start(ctx))
	require.NoError(t, first.Stop(ctx))
}

func TestServer_StateErrors(t *testing.T) {
	ctx := context.Background()
	srv := NewServer(testServerConfig(0), okHandler(), discardLogger())

	assert.ErrorIs(t, srv.Stop(ctx), ErrServerNotStarted)

	require.NoError(t, srv.Start(ctx))
	assert.ErrorIs(t, srv.Start(ctx), ErrServerStarted)
	require.NoError(t, srv.Stop(ctx))

	assert.ErrorIs(t, srv.Stop(ctx), ErrServerNotStarted)
}

func TestServer_StartFailsWhenPortTaken(t *testing.T) {
	ctx := context.Background()

	ln, err := net.Listen("tcp", ":0")
	require.NoError(t, err)
	defer ln.Close()

	srv := NewServer(testServerConfig(portOf(t, ln.Addr().String())), okHandler(), discardLogger())
	err = srv.Start(ctx)
	require.Error(t, err)
	assert.Empty(t, srv.Addr())
	assert.ErrorIs(t, srv.Stop(ctx), ErrServerNotStarted)
}

func TestServer_AddrDuringStop(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	slow := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(entered)
		<-release
		_, _ = io.WriteString(w, "ok")
	})

	cfg := testServerConfig(0)
	cfg.WriteTimeout = 5 * time.Second
	srv := NewServer(cfg, slow, discardLogger())
	require.NoError(t, srv.Start(context.Background()))
	addr := srv.Addr()
	url := "http://127.0.0.1:" + strconv.Itoa(portOf(t, addr)) + "/"

	reqDone := make(chan error, 1)
	go func() {
		resp, err := http.Get(url)
		if err == nil {
			resp.Body.Close()
		}
		reqDone <- err
	}()
	<-entered

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	stopped := make(chan error, 1)
	go func() { stopped <- srv.Stop(ctx) }()

	// Give Stop time to start waiting on the in-flight request.
	time.Sleep(50 * time.Millisecond)

	got := make(chan string, 1)
	go func() { got <- srv.Addr() }()
	select {
	case a := <-got:
		assert.Equal(t, addr, a)
	case <-time.After(time.Second):
		t.Fatal("Addr blocked while Stop was draining")
	}
	assert.ErrorIs(t, srv.Stop(ctx), ErrServerStopping)
	assert.ErrorIs(t, srv.Start(ctx), ErrServerStarted)

	close(release)
	require.NoError(t, <-stopped)
	require.NoError(t, <-reqDone)
	assert.Empty(t, srv.Addr())
}
