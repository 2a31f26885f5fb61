package bts

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewClientConfig(t *testing.T) {
	require := require.New(t)

	t.Run("Defaults", func(t *testing.T) {
		cfg, err := NewClientConfig("192.168.1.1", DefaultPort)
		require.NoError(err)
		require.Equal("192.168.1.1:502", cfg.Addr())
		require.Equal("admin", cfg.username)
		require.Equal("neware", cfg.password)
		require.Equal("bfgs", cfg.clientType)
		require.Equal(5*time.Second, cfg.connectTimeout)
		require.Zero(cfg.ReplyTimeout())
		require.Equal(1000, cfg.PageSize())
		require.Equal(`C:\BACKUP`, cfg.BackupDir())
		require.Equal([]string{"finish", "stop"}, cfg.StartableStates())
		require.Equal(64<<20, cfg.maxMessageSize)
		require.NotNil(cfg.logger)
	})

	t.Run("Valid Configuration", func(t *testing.T) {
		cfg, err := NewClientConfig("10.0.0.7", 9000,
			WithCredentials("operator", "secret"),
			WithClientType("api"),
			WithConnectTimeout(30*time.Second),
			WithReplyTimeout(10*time.Second),
			WithPageSize(500),
			WithBackupDir(`D:\archive`),
			WithStartableStates("finish"),
			WithMaxMessageSize(1<<20),
			WithLogger(testLogger),
		)
		require.NoError(err)
		require.Equal("10.0.0.7:9000", cfg.Addr())
		require.Equal("operator", cfg.username)
		require.Equal("secret", cfg.password)
		require.Equal("api", cfg.clientType)
		require.Equal(30*time.Second, cfg.connectTimeout)
		require.Equal(10*time.Second, cfg.ReplyTimeout())
		require.Equal(500, cfg.PageSize())
		require.Equal(`D:\archive`, cfg.BackupDir())
		require.True(cfg.startable("finish"))
		require.False(cfg.startable("stop"))
		require.Equal(1<<20, cfg.maxMessageSize)
	})

	t.Run("IPv6 Address", func(t *testing.T) {
		cfg, err := NewClientConfig("::1", 502)
		require.NoError(err)
		require.Equal("[::1]:502", cfg.Addr())
	})

	t.Run("Invalid Host", func(t *testing.T) {
		_, err := NewClientConfig("", 502)
		require.EqualError(err, "invalid host")
	})

	t.Run("Invalid Port - Below Range", func(t *testing.T) {
		_, err := NewClientConfig("192.168.1.1", 0)
		require.EqualError(err, "port is out of range [1, 65535]")
	})

	t.Run("Invalid Port - Above Range", func(t *testing.T) {
		_, err := NewClientConfig("192.168.1.1", 65536)
		require.EqualError(err, "port is out of range [1, 65535]")
	})

	t.Run("Invalid Credentials", func(t *testing.T) {
		_, err := NewClientConfig("192.168.1.1", 502, WithCredentials("", "x"))
		require.EqualError(err, "username is empty")
	})

	t.Run("Invalid Client Type", func(t *testing.T) {
		_, err := NewClientConfig("192.168.1.1", 502, WithClientType(""))
		require.EqualError(err, "client type is empty")
	})

	t.Run("Invalid Connect Timeout", func(t *testing.T) {
		_, err := NewClientConfig("192.168.1.1", 502, WithConnectTimeout(time.Millisecond))
		require.EqualError(err, "connect timeout out of range [0.1, 60]")

		_, err = NewClientConfig("192.168.1.1", 502, WithConnectTimeout(61*time.Second))
		require.EqualError(err, "connect timeout out of range [0.1, 60]")
	})

	t.Run("Invalid Reply Timeout", func(t *testing.T) {
		_, err := NewClientConfig("192.168.1.1", 502, WithReplyTimeout(-time.Second))
		require.EqualError(err, "reply timeout is negative")
	})

	t.Run("Invalid Page Size", func(t *testing.T) {
		_, err := NewClientConfig("192.168.1.1", 502, WithPageSize(0))
		require.EqualError(err, "page size out of range [1, 100000]")

		_, err = NewClientConfig("192.168.1.1", 502, WithPageSize(100001))
		require.EqualError(err, "page size out of range [1, 100000]")
	})

	t.Run("Invalid Backup Dir", func(t *testing.T) {
		_, err := NewClientConfig("192.168.1.1", 502, WithBackupDir(""))
		require.EqualError(err, "backup dir is empty")
	})

	t.Run("Invalid Startable States", func(t *testing.T) {
		_, err := NewClientConfig("192.168.1.1", 502, WithStartableStates())
		require.EqualError(err, "startable states are empty")
	})

	t.Run("Invalid Max Message Size", func(t *testing.T) {
		_, err := NewClientConfig("192.168.1.1", 502, WithMaxMessageSize(0))
		require.EqualError(err, "max message size must be positive")
	})

	t.Run("Invalid Logger", func(t *testing.T) {
		_, err := NewClientConfig("192.168.1.1", 502, WithLogger(nil))
		require.EqualError(err, "logger is nil")
	})

	t.Run("Nil Config", func(t *testing.T) {
		err := WithPageSize(10).apply(nil)
		require.ErrorIs(err, ErrClientConfigNil)
	})

	t.Run("StartableStates Returns Copy", func(t *testing.T) {
		cfg, err := NewClientConfig("192.168.1.1", 502)
		require.NoError(err)

		states := cfg.StartableStates()
		states[0] = "working"
		require.False(cfg.startable("working"))
	})
}
