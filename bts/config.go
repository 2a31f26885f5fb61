package bts

import (
	"errors"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/arloliu/go-bts/logger"
)

// Default values of ClientConfig.
const (
	DefaultPort       = 502
	DefaultUsername   = "admin"
	DefaultPassword   = "neware"
	DefaultClientType = "bfgs"
	DefaultPageSize   = 1000
	DefaultBackupDir  = `C:\BACKUP`
)

// DefaultStartableStates are the channel states in which Start is allowed.
var DefaultStartableStates = []string{"finish", "stop"}

// ClientConfig represents the configuration of a BTS client.
type ClientConfig struct {
	// host specifies the host of the BTS server.
	host string

	// port specifies the TCP port of the BTS server.
	port int

	// username, password and clientType are sent in the connect command.
	// Defaults to "admin", "neware" and "bfgs".
	username   string
	password   string
	clientType string

	// connectTimeout bounds the TCP connect.
	// Defaults to 5 seconds.
	connectTimeout time.Duration

	// replyTimeout bounds the wait for each response. Zero blocks until the
	// server answers or the connection breaks.
	// Defaults to 0.
	replyTimeout time.Duration

	// pageSize is the number of records requested per download page.
	// Defaults to 1000.
	pageSize int

	// backupDir is the server-side directory in which started tests are archived.
	// Defaults to C:\BACKUP.
	backupDir string

	// startableStates are the last observed channel states that allow Start.
	// Defaults to "finish" and "stop".
	startableStates []string

	// maxMessageSize bounds a single response.
	// Defaults to 64 MiB.
	maxMessageSize int

	// logger provides a logger instance for logging client events and errors.
	logger logger.Logger
}

// NewClientConfig creates a client configuration for the BTS server at host and port.
//
// It initializes a ClientConfig with default values and then applies opts.
// See the documentation of ConnOption and the WithXXX functions for the
// available options.
//
// Returns an error if host, port or any option is invalid.
func NewClientConfig(host string, port int, opts ...ConnOption) (*ClientConfig, error) {
	cfg := &ClientConfig{
		username:        DefaultUsername,
		password:        DefaultPassword,
		clientType:      DefaultClientType,
		connectTimeout:  5 * time.Second,
		pageSize:        DefaultPageSize,
		backupDir:       DefaultBackupDir,
		startableStates: append([]string(nil), DefaultStartableStates...),
		maxMessageSize:  64 << 20,
		logger:          logger.GetLogger(),
	}

	if err := withRemoteHost(host).apply(cfg); err != nil {
		return cfg, err
	}

	if err := withPort(port).apply(cfg); err != nil {
		return cfg, err
	}

	for _, opt := range opts {
		if err := opt.apply(cfg); err != nil {
			return cfg, err
		}
	}

	return cfg, nil
}

// Addr returns the host:port address of the server.
func (cfg *ClientConfig) Addr() string {
	return net.JoinHostPort(cfg.host, strconv.Itoa(cfg.port))
}

// PageSize returns the number of records requested per download page.
func (cfg *ClientConfig) PageSize() int {
	return cfg.pageSize
}

// ReplyTimeout returns the response timeout; zero means none.
func (cfg *ClientConfig) ReplyTimeout() time.Duration {
	return cfg.replyTimeout
}

// BackupDir returns the server-side archive directory for started tests.
func (cfg *ClientConfig) BackupDir() string {
	return cfg.backupDir
}

// StartableStates returns the channel states in which Start is allowed.
func (cfg *ClientConfig) StartableStates() []string {
	return append([]string(nil), cfg.startableStates...)
}

func (cfg *ClientConfig) startable(state string) bool {
	for _, s := range cfg.startableStates {
		if s == state {
			return true
		}
	}

	return false
}

// ConnOption represents a functional option for configuring a ClientConfig.
type ConnOption interface {
	apply(*ClientConfig) error
}

type connOptFunc struct {
	applyFunc func(*ClientConfig) error
}

func (c *connOptFunc) apply(cfg *ClientConfig) error {
	if cfg == nil {
		return ErrClientConfigNil
	}

	return c.applyFunc(cfg)
}

func newConnOptFunc(f func(*ClientConfig) error) *connOptFunc {
	return &connOptFunc{applyFunc: f}
}

// withRemoteHost sets the host of the BTS server.
// An error is returned if host is neither an IP address nor a resolvable name.
func withRemoteHost(host string) ConnOption {
	return newConnOptFunc(func(cfg *ClientConfig) error {
		if ip := net.ParseIP(host); ip != nil {
			cfg.host = host
			return nil
		}

		host = strings.TrimPrefix(host, ".")
		host = strings.TrimSuffix(host, ".")
		if host != "" {
			if _, err := net.LookupHost(host); err == nil {
				cfg.host = host
				return nil
			}
		}

		return errors.New("invalid host")
	})
}

// withPort sets the TCP port of the BTS server.
// An error is returned if the port is out of the valid range (1-65535).
func withPort(port int) ConnOption {
	return newConnOptFunc(func(cfg *ClientConfig) error {
		if port < 1 || port > 65535 {
			return errors.New("port is out of range [1, 65535]")
		}
		cfg.port = port

		return nil
	})
}

// WithCredentials sets the username and password sent in the connect command.
//
// The default credentials are admin/neware.
func WithCredentials(username, password string) ConnOption {
	return newConnOptFunc(func(cfg *ClientConfig) error {
		if username == "" {
			return errors.New("username is empty")
		}
		cfg.username = username
		cfg.password = password

		return nil
	})
}

// WithClientType sets the client type sent in the connect command.
//
// The default value is "bfgs".
func WithClientType(clientType string) ConnOption {
	return newConnOptFunc(func(cfg *ClientConfig) error {
		if clientType == "" {
			return errors.New("client type is empty")
		}
		cfg.clientType = clientType

		return nil
	})
}

// WithConnectTimeout sets the timeout of the TCP connect.
// An error is returned if the timeout is outside the valid range (0.1-60 seconds).
//
// The default value is 5 seconds.
func WithConnectTimeout(val time.Duration) ConnOption {
	return newConnOptFunc(func(cfg *ClientConfig) error {
		if val < 100*time.Millisecond || val > 60*time.Second {
			return errors.New("connect timeout out of range [0.1, 60]")
		}
		cfg.connectTimeout = val

		return nil
	})
}

// WithReplyTimeout sets how long to wait for each response. Zero waits
// until the server answers or the connection breaks.
// An error is returned if the timeout is negative.
//
// A reply timeout closes the connection, since a late response cannot be
// told apart from the answer to the next command.
//
// The default value is 0.
func WithReplyTimeout(val time.Duration) ConnOption {
	return newConnOptFunc(func(cfg *ClientConfig) error {
		if val < 0 {
			return errors.New("reply timeout is negative")
		}
		cfg.replyTimeout = val

		return nil
	})
}

// WithPageSize sets the number of records requested per download page.
// An error is returned if the size is outside the valid range (1-100000).
//
// The default value is 1000.
func WithPageSize(size int) ConnOption {
	return newConnOptFunc(func(cfg *ClientConfig) error {
		if size < 1 || size > 100000 {
			return errors.New("page size out of range [1, 100000]")
		}
		cfg.pageSize = size

		return nil
	})
}

// WithBackupDir sets the server-side directory in which started tests are archived.
//
// The default value is C:\BACKUP.
func WithBackupDir(dir string) ConnOption {
	return newConnOptFunc(func(cfg *ClientConfig) error {
		if dir == "" {
			return errors.New("backup dir is empty")
		}
		cfg.backupDir = dir

		return nil
	})
}

// WithStartableStates sets the last observed channel states that allow Start.
//
// The default states are "finish" and "stop".
func WithStartableStates(states ...string) ConnOption {
	return newConnOptFunc(func(cfg *ClientConfig) error {
		if len(states) == 0 {
			return errors.New("startable states are empty")
		}
		cfg.startableStates = append([]string(nil), states...)

		return nil
	})
}

// WithMaxMessageSize sets the largest response accepted, in bytes.
//
// The default value is 64 MiB.
func WithMaxMessageSize(size int) ConnOption {
	return newConnOptFunc(func(cfg *ClientConfig) error {
		if size < 1 {
			return errors.New("max message size must be positive")
		}
		cfg.maxMessageSize = size

		return nil
	})
}

// WithLogger sets the logger of the client.
//
// The default value is logger.GetLogger().
func WithLogger(l logger.Logger) ConnOption {
	return newConnOptFunc(func(cfg *ClientConfig) error {
		if l == nil {
			return errors.New("logger is nil")
		}
		cfg.logger = l

		return nil
	})
}
