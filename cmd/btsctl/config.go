package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/arloliu/go-bts/bts"
	"github.com/arloliu/go-bts/logger"
)

// btsctl config.toml keys.
type fileConfig struct {
	Host            string   `toml:"host"`
	Port            int      `toml:"port"`
	Username        string   `toml:"username"`
	Password        string   `toml:"password"`
	ClientType      string   `toml:"client_type"`
	ConnectTimeout  string   `toml:"connect_timeout"`
	ReplyTimeout    string   `toml:"reply_timeout"`
	PageSize        int      `toml:"page_size"`
	BackupDir       string   `toml:"backup_dir"`
	StartableStates []string `toml:"startable_states"`
	LogLevel        string   `toml:"log_level"`
	LogBackend      string   `toml:"log_backend"`
}

type config struct {
	host            string
	port            int
	username        string
	password        string
	clientType      string
	connectTimeout  time.Duration
	replyTimeout    time.Duration
	pageSize        int
	backupDir       string
	startableStates []string
	logLevel        logger.LogLevel
	logBackend      string
}

func defaultConfig() config {
	return config{
		host:            "127.0.0.1",
		port:            bts.DefaultPort,
		username:        bts.DefaultUsername,
		password:        bts.DefaultPassword,
		clientType:      bts.DefaultClientType,
		connectTimeout:  5 * time.Second,
		pageSize:        bts.DefaultPageSize,
		backupDir:       bts.DefaultBackupDir,
		startableStates: append([]string(nil), bts.DefaultStartableStates...),
		logLevel:        logger.WarnLevel,
		logBackend:      "slog",
	}
}

// loadConfig overlays the TOML file at path, if any, and then the BTS_*
// environment variables on the defaults.
func loadConfig(path string, getenv func(string) string) (config, error) {
	cfg := defaultConfig()

	if path == "" {
		path = getenv("BTS_CONFIG")
	}
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return config{}, err
		}
	}

	if err := cfg.loadEnv(getenv); err != nil {
		return config{}, err
	}

	return cfg, nil
}

func (cfg *config) loadFile(path string) error {
	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return fmt.Errorf("load btsctl config: %w", err)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("load btsctl config: unknown key %q", undecoded[0].String())
	}

	if meta.IsDefined("host") {
		cfg.host = strings.TrimSpace(raw.Host)
	}
	if meta.IsDefined("port") {
		cfg.port = raw.Port
	}
	if meta.IsDefined("username") {
		cfg.username = strings.TrimSpace(raw.Username)
	}
	if meta.IsDefined("password") {
		cfg.password = raw.Password
	}
	if meta.IsDefined("client_type") {
		cfg.clientType = strings.TrimSpace(raw.ClientType)
	}
	if meta.IsDefined("connect_timeout") {
		if cfg.connectTimeout, err = time.ParseDuration(raw.ConnectTimeout); err != nil {
			return fmt.Errorf("load btsctl config: connect_timeout: %w", err)
		}
	}
	if meta.IsDefined("reply_timeout") {
		if cfg.replyTimeout, err = time.ParseDuration(raw.ReplyTimeout); err != nil {
			return fmt.Errorf("load btsctl config: reply_timeout: %w", err)
		}
	}
	if meta.IsDefined("page_size") {
		cfg.pageSize = raw.PageSize
	}
	if meta.IsDefined("backup_dir") {
		cfg.backupDir = raw.BackupDir
	}
	if meta.IsDefined("startable_states") {
		cfg.startableStates = raw.StartableStates
	}
	if meta.IsDefined("log_level") {
		if cfg.logLevel, err = logger.ParseLevel(raw.LogLevel); err != nil {
			return fmt.Errorf("load btsctl config: log_level: %w", err)
		}
	}
	if meta.IsDefined("log_backend") {
		cfg.logBackend = strings.TrimSpace(raw.LogBackend)
	}

	return nil
}

func (cfg *config) loadEnv(getenv func(string) string) error {
	if v := getenv("BTS_HOST"); v != "" {
		cfg.host = v
	}
	if v := getenv("BTS_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("BTS_PORT: %w", err)
		}
		cfg.port = port
	}
	if v := getenv("BTS_USERNAME"); v != "" {
		cfg.username = v
	}
	if v := getenv("BTS_PASSWORD"); v != "" {
		cfg.password = v
	}
	if v := getenv("BTS_LOG_LEVEL"); v != "" {
		level, err := logger.ParseLevel(v)
		if err != nil {
			return fmt.Errorf("BTS_LOG_LEVEL: %w", err)
		}
		cfg.logLevel = level
	}

	return nil
}

// newLogger returns the configured log backend writing to w.
func (cfg config) newLogger(w io.Writer) (logger.Logger, error) {
	switch cfg.logBackend {
	case "", "slog":
		return logger.NewSlogTo(w, cfg.logLevel, false), nil
	case "zerolog":
		return logger.NewZerolog(w, cfg.logLevel), nil
	default:
		return nil, fmt.Errorf("unsupported log_backend %q (expected slog or zerolog)", cfg.logBackend)
	}
}

// clientConfig builds the client settings; extra options are applied last.
func (cfg config) clientConfig(l logger.Logger, extra ...bts.ConnOption) (*bts.ClientConfig, error) {
	opts := []bts.ConnOption{
		bts.WithCredentials(cfg.username, cfg.password),
		bts.WithClientType(cfg.clientType),
		bts.WithConnectTimeout(cfg.connectTimeout),
		bts.WithReplyTimeout(cfg.replyTimeout),
		bts.WithPageSize(cfg.pageSize),
		bts.WithBackupDir(cfg.backupDir),
		bts.WithStartableStates(cfg.startableStates...),
		bts.WithLogger(l),
	}

	return bts.NewClientConfig(cfg.host, cfg.port, append(opts, extra...)...)
}
