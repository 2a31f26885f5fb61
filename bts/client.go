package bts

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/puzpuzpuz/xsync/v3"

	"github.com/arloliu/go-bts/channel"
	"github.com/arloliu/go-bts/command"
	"github.com/arloliu/go-bts/logger"
	"github.com/arloliu/go-bts/record"
	"github.com/arloliu/go-bts/transport"
)

// Client is a BTS protocol client for one server.
//
// Client is safe for concurrent use; operations are serialized.
type Client struct {
	cfg       *ClientConfig
	logger    logger.Logger
	sessionID string

	mu       sync.Mutex
	tr       *transport.Transport
	channels *channel.Map

	// states holds the last observed state of each pipeline, from status
	// and inquire responses.
	states *xsync.MapOf[string, string]

	metrics ClientMetrics
}

// NewClient creates a client for cfg. The client is not connected until Open.
func NewClient(cfg *ClientConfig) (*Client, error) {
	if cfg == nil {
		return nil, ErrClientConfigNil
	}

	sessionID := uuid.NewString()

	return &Client{
		cfg:       cfg,
		logger:    cfg.logger.With("session", sessionID, "server", cfg.Addr()),
		sessionID: sessionID,
		states:    xsync.NewMapOf[string, string](),
	}, nil
}

// Connect creates a client for cfg and opens it.
func Connect(ctx context.Context, cfg *ClientConfig) (*Client, error) {
	c, err := NewClient(cfg)
	if err != nil {
		return nil, err
	}

	if err := c.Open(ctx); err != nil {
		return nil, err
	}

	return c, nil
}

// SessionID returns the id that tags every log line of c.
func (c *Client) SessionID() string {
	return c.sessionID
}

// Metrics returns the metrics of c.
func (c *Client) Metrics() *ClientMetrics {
	return &c.metrics
}

// Open dials the server, logs in and builds the channel map.
//
// On any failure the connection is closed before Open returns.
func (c *Client) Open(ctx context.Context) error {
	tr, err := transport.Dial(ctx, c.cfg.Addr(), c.cfg.connectTimeout, c.transportConfig())
	if err != nil {
		c.logger.Error("failed to connect", "method", "Open", "error", err)
		return err
	}

	return c.open(ctx, tr)
}

// OpenConn logs in and builds the channel map over an established
// connection, which the client takes ownership of.
//
// On any failure conn is closed before OpenConn returns.
func (c *Client) OpenConn(ctx context.Context, conn net.Conn) error {
	return c.open(ctx, transport.New(conn, c.transportConfig()))
}

func (c *Client) transportConfig() transport.Config {
	return transport.Config{
		ReplyTimeout:   c.cfg.replyTimeout,
		MaxMessageSize: c.cfg.maxMessageSize,
		Logger:         c.logger,
	}
}

func (c *Client) open(ctx context.Context, tr *transport.Transport) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.tr != nil && !c.tr.Closed() {
		_ = tr.Close()
		return ErrAlreadyConnected
	}

	c.tr = tr
	if err := c.handshake(ctx); err != nil {
		c.logger.Error("failed to open client", "method", "Open", "error", err)
		_ = c.closeLocked()

		return err
	}

	c.metrics.setConnected(true)
	c.logger.Info("client connected", "channels", c.channels.Len())

	return nil
}

func (c *Client) handshake(ctx context.Context) error {
	resp, err := c.roundTrip(ctx, command.Connect(c.cfg.username, c.cfg.password, c.cfg.clientType))
	if err != nil {
		return err
	}

	// a connect response without <result> is accepted
	result, err := record.ExtractElement(resp, "result")
	switch {
	case err == nil:
		if v, _ := result.String("result"); v != "ok" {
			return fmt.Errorf("%w: result %q", ErrLoginRejected, v)
		}
	case !errors.Is(err, record.ErrMissingContainer):
		c.metrics.incDecodeErrCount()
		return err
	}

	resp, err = c.roundTrip(ctx, command.DeviceInfo())
	if err != nil {
		return err
	}

	channels, err := channel.FromDeviceInfo(resp)
	if err != nil {
		if errors.Is(err, record.ErrDecode) {
			c.metrics.incDecodeErrCount()
		}

		return err
	}

	c.channels = channels
	c.states.Clear()

	return nil
}

// Close closes the connection. It is safe to call more than once.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.closeLocked()
}

func (c *Client) closeLocked() error {
	if c.tr == nil {
		return nil
	}

	wasOpen := !c.tr.Closed()
	err := c.tr.Close()
	c.metrics.setConnected(false)
	c.channels = nil
	if wasOpen {
		c.logger.Info("client closed")
	}

	return err
}

// DeviceInfo returns the channel records reported by the server at Open.
func (c *Client) DeviceInfo() ([]*record.Record, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.channels == nil {
		return nil, ErrNotConnected
	}

	pipelines := c.channels.Pipelines()
	devices := make([]*record.Record, 0, len(pipelines))
	for _, p := range pipelines {
		devices = append(devices, p.Fields())
	}

	return devices, nil
}

// Pipelines returns every pipeline of the channel map, in server order.
func (c *Client) Pipelines() ([]*channel.Pipeline, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.channels == nil {
		return nil, ErrNotConnected
	}

	return c.channels.Pipelines(), nil
}

// Pipeline returns the pipeline with the given id.
func (c *Client) Pipeline(id string) (*channel.Pipeline, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.channels == nil {
		return nil, ErrNotConnected
	}

	return c.channels.Resolve(id)
}

// LastState returns the last observed state of pipeline id, as reported
// by Status, Inquire, Start or Stop.
func (c *Client) LastState(id string) (string, bool) {
	return c.states.Load(id)
}

// resolve normalizes ids into pipelines; no ids selects every pipeline.
func (c *Client) resolve(ids []string) ([]*channel.Pipeline, error) {
	if c.channels == nil {
		return nil, ErrNotConnected
	}

	return c.channels.ResolveMany(ids...)
}

// roundTrip sends cmd and returns the raw response.
func (c *Client) roundTrip(ctx context.Context, cmd *command.Command) ([]byte, error) {
	if c.tr == nil || c.tr.Closed() {
		return nil, ErrNotConnected
	}

	body, err := cmd.Marshal()
	if err != nil {
		return nil, err
	}

	start := time.Now()
	c.metrics.incCommandSendCount(len(body))
	resp, err := c.tr.SendAndReceive(ctx, body)
	if err != nil {
		c.metrics.incCommandErrCount()
		c.metrics.setConnected(!c.tr.Closed())

		return nil, fmt.Errorf("bts: %s: %w", cmd.Verb, err)
	}
	c.metrics.addBytesRecv(len(resp))

	if c.logger.Level() == logger.DebugLevel {
		c.logger.Debug("command completed",
			"method", "roundTrip",
			"verb", cmd.Verb,
			"sent", len(body),
			"received", len(resp),
			"elapsed", time.Since(start),
		)
	}

	return resp, nil
}

// batch sends a batch command for pipelines and returns one record per
// pipeline, in the same order.
func (c *Client) batch(ctx context.Context, cmd *command.Command, pipelines []*channel.Pipeline) ([]*record.Record, error) {
	resp, err := c.roundTrip(ctx, cmd)
	if err != nil {
		return nil, err
	}

	page, err := record.ExtractPage(resp, record.DefaultContainer)
	if err == nil && len(page.Records) != len(pipelines) {
		err = &record.DecodeError{
			Payload: string(resp),
			Err: fmt.Errorf("%w: %d records for %d pipelines",
				record.ErrCountMismatch, len(page.Records), len(pipelines)),
		}
	}
	if err != nil {
		c.metrics.incDecodeErrCount()
		c.logger.Error("failed to decode response", "method", "batch", "verb", cmd.Verb, "error", err)

		return nil, err
	}

	return page.Records, nil
}
