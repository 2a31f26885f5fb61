package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/arloliu/go-bts/logger"
	"github.com/stretchr/testify/require"
)

func noEnv(string) string { return "" }

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "btsctl.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	require := require.New(t)

	cfg, err := loadConfig("", noEnv)
	require.NoError(err)
	require.Equal(defaultConfig(), cfg)
	require.Equal(502, cfg.port)
	require.Equal("admin", cfg.username)
	require.Equal(logger.WarnLevel, cfg.logLevel)
	require.Equal("slog", cfg.logBackend)
}

func TestLoadConfig_FileOverrides(t *testing.T) {
	require := require.New(t)

	path := writeConfig(t, `
host = "10.0.0.7"
port = 9502
username = "operator"
password = "secret"
reply_timeout = "30s"
page_size = 500
backup_dir = 'D:\archive'
startable_states = ["finish"]
log_level = "debug"
log_backend = "zerolog"
`)

	cfg, err := loadConfig(path, noEnv)
	require.NoError(err)
	require.Equal("10.0.0.7", cfg.host)
	require.Equal(9502, cfg.port)
	require.Equal("operator", cfg.username)
	require.Equal("secret", cfg.password)
	require.Equal("bfgs", cfg.clientType, "undefined keys keep defaults")
	require.Equal(5*time.Second, cfg.connectTimeout)
	require.Equal(30*time.Second, cfg.replyTimeout)
	require.Equal(500, cfg.pageSize)
	require.Equal(`D:\archive`, cfg.backupDir)
	require.Equal([]string{"finish"}, cfg.startableStates)
	require.Equal(logger.DebugLevel, cfg.logLevel)
	require.Equal("zerolog", cfg.logBackend)
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	require := require.New(t)

	path := writeConfig(t, `
host = "10.0.0.7"
port = 9502
`)

	cfg, err := loadConfig("", envMap(map[string]string{
		"BTS_CONFIG":    path,
		"BTS_HOST":      "192.168.0.20",
		"BTS_USERNAME":  "ci",
		"BTS_PASSWORD":  "pw",
		"BTS_LOG_LEVEL": "error",
	}))
	require.NoError(err)
	require.Equal("192.168.0.20", cfg.host)
	require.Equal(9502, cfg.port)
	require.Equal("ci", cfg.username)
	require.Equal("pw", cfg.password)
	require.Equal(logger.ErrorLevel, cfg.logLevel)
}

func TestLoadConfig_Errors(t *testing.T) {
	require := require.New(t)

	_, err := loadConfig(filepath.Join(t.TempDir(), "missing.toml"), noEnv)
	require.ErrorContains(err, "load btsctl config")

	_, err = loadConfig(writeConfig(t, `hostname = "x"`), noEnv)
	require.ErrorContains(err, `unknown key "hostname"`)

	_, err = loadConfig(writeConfig(t, `reply_timeout = "soon"`), noEnv)
	require.ErrorContains(err, "reply_timeout")

	_, err = loadConfig(writeConfig(t, `log_level = "chatty"`), noEnv)
	require.ErrorContains(err, "log_level")

	_, err = loadConfig("", envMap(map[string]string{"BTS_PORT": "http"}))
	require.ErrorContains(err, "BTS_PORT")
}

func TestConfig_NewLogger(t *testing.T) {
	require := require.New(t)

	var buf bytes.Buffer
	cfg := defaultConfig()

	l, err := cfg.newLogger(&buf)
	require.NoError(err)
	require.Equal(logger.WarnLevel, l.Level())

	cfg.logBackend = "zerolog"
	l, err = cfg.newLogger(&buf)
	require.NoError(err)
	l.Warn("start refused", "pipeline", "21-1-2")
	require.Contains(buf.String(), `"pipeline":"21-1-2"`)

	cfg.logBackend = "logrus"
	_, err = cfg.newLogger(&buf)
	require.ErrorContains(err, "unsupported log_backend")
}

func TestConfig_ClientConfig(t *testing.T) {
	require := require.New(t)

	cfg := defaultConfig()
	cfg.pageSize = 250

	l, err := cfg.newLogger(&bytes.Buffer{})
	require.NoError(err)

	clientCfg, err := cfg.clientConfig(l)
	require.NoError(err)
	require.Equal("127.0.0.1:502", clientCfg.Addr())
	require.Equal(250, clientCfg.PageSize())

	cfg.port = 0
	_, err = cfg.clientConfig(l)
	require.Error(err)
}
