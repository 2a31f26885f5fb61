package bts

import (
	"context"
	"io"
	"os"
	"testing"

	"github.com/arloliu/go-bts/internal/fakebts"
	"github.com/arloliu/go-bts/logger"
	"github.com/stretchr/testify/require"
)

var testLogger logger.Logger

func TestMain(m *testing.M) {
	testLogger = logger.NewSlogTo(io.Discard, logger.DebugLevel, false)
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		if level, err := logger.ParseLevel(v); err == nil {
			testLogger = logger.NewSlogTo(os.Stderr, level, false)
		}
	}

	os.Exit(m.Run())
}

func newTestConfig(t *testing.T, opts ...ConnOption) *ClientConfig {
	t.Helper()

	cfg, err := NewClientConfig("127.0.0.1", DefaultPort, append([]ConnOption{WithLogger(testLogger)}, opts...)...)
	require.NoError(t, err)

	return cfg
}

// newTestClient opens a client against srv and closes it when the test ends.
func newTestClient(t *testing.T, srv *fakebts.Server, opts ...ConnOption) *Client {
	t.Helper()

	c, err := NewClient(newTestConfig(t, opts...))
	require.NoError(t, err)
	require.NoError(t, c.OpenConn(context.Background(), srv.Conn()))

	t.Cleanup(func() {
		_ = c.Close()
		srv.Wait()
	})

	return c
}
