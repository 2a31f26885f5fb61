package transport

import (
	"context"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/arloliu/go-bts/internal/pool"
	"github.com/arloliu/go-bts/logger"
)

// aLongTimeAgo is a deadline in the past, used to unblock pending I/O.
var aLongTimeAgo = time.Unix(1, 0)

// Config holds the settings of a Transport.
type Config struct {
	// ReplyTimeout bounds the wait for each response. Zero blocks until the
	// server answers or the connection breaks.
	ReplyTimeout time.Duration
	// WriteTimeout bounds each send. Zero blocks.
	WriteTimeout time.Duration
	// MaxMessageSize bounds a single response. Zero means DefaultMaxMessageSize.
	MaxMessageSize int
	// Logger receives transport logs. Nil means the package default logger.
	Logger logger.Logger
}

// Transport performs framed request/response exchanges on one connection.
//
// SendAndReceive calls are serialized; Close may be called from any goroutine
// and unblocks a pending exchange.
type Transport struct {
	mu     sync.Mutex
	conn   net.Conn
	reader *messageReader
	cfg    Config
	logger logger.Logger
	closed atomic.Bool
}

// New creates a Transport that owns conn.
func New(conn net.Conn, cfg Config) *Transport {
	l := cfg.Logger
	if l == nil {
		l = logger.GetLogger()
	}

	return &Transport{
		conn:   conn,
		reader: newMessageReader(cfg.MaxMessageSize),
		cfg:    cfg,
		logger: l,
	}
}

// Dial connects to addr over TCP and returns a Transport for the connection.
// timeout bounds the connect; zero leaves it to ctx and the operating system.
func Dial(ctx context.Context, addr string, timeout time.Duration, cfg Config) (*Transport, error) {
	d := net.Dialer{Timeout: timeout}

	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, &ConnError{Op: "dial", Err: err}
	}

	return New(conn, cfg), nil
}

// RemoteAddr returns the address of the server.
func (t *Transport) RemoteAddr() net.Addr {
	return t.conn.RemoteAddr()
}

// SendAndReceive sends body inside the document envelope and returns the
// next response with its sentinel removed.
//
// Cancelling ctx aborts the exchange. Any failure closes the Transport, since
// the stream can no longer be matched to requests.
func (t *Transport) SendAndReceive(ctx context.Context, body []byte) ([]byte, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed.Load() {
		return nil, ErrConnClosed
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// clear deadlines left over from a previous cancelled exchange
	if err := t.conn.SetDeadline(time.Time{}); err != nil {
		return nil, t.fail(ctx, "send", err)
	}

	conn := t.conn
	cancelled := make(chan struct{})
	stop := context.AfterFunc(ctx, func() {
		_ = conn.SetDeadline(aLongTimeAgo)
		close(cancelled)
	})
	defer func() {
		if !stop() {
			<-cancelled
		}
	}()

	start := time.Now()
	if err := t.send(body); err != nil {
		return nil, t.fail(ctx, "send", err)
	}

	if t.cfg.ReplyTimeout > 0 {
		if err := conn.SetReadDeadline(time.Now().Add(t.cfg.ReplyTimeout)); err != nil {
			return nil, t.fail(ctx, "receive", err)
		}
	}
	// a cancel that landed before the reply deadline was set must not be lost
	if err := ctx.Err(); err != nil {
		return nil, t.fail(ctx, "receive", err)
	}

	resp, err := t.reader.ReadMessage(conn, 0)
	if err != nil {
		return nil, t.fail(ctx, "receive", err)
	}

	if t.logger.Level() == logger.DebugLevel {
		t.logger.Debug("response received",
			"method", "SendAndReceive",
			"sent", len(body),
			"received", len(resp),
			"elapsed", time.Since(start),
		)
	}

	return resp, nil
}

func (t *Transport) send(body []byte) error {
	buf := pool.GetBuffer()
	defer pool.PutBuffer(buf)

	writeFrame(buf, body)

	if t.cfg.WriteTimeout > 0 {
		if err := t.conn.SetWriteDeadline(time.Now().Add(t.cfg.WriteTimeout)); err != nil {
			return err
		}
	}

	_, err := t.conn.Write(buf.Bytes())

	return err
}

// fail closes the transport after an I/O error and returns the error to report.
func (t *Transport) fail(ctx context.Context, op string, err error) error {
	switch {
	case t.closed.Load():
		err = ErrConnClosed
	case ctx.Err() != nil:
		err = ctx.Err()
	}

	t.logger.Error("transport failure, closing connection", "method", "SendAndReceive", "op", op, "error", err)
	_ = t.Close()

	return &ConnError{Op: op, Err: err}
}

// Close closes the connection. It is safe to call more than once.
func (t *Transport) Close() error {
	if !t.closed.CompareAndSwap(false, true) {
		return nil
	}

	return t.conn.Close()
}

// Closed reports whether the transport has been closed.
func (t *Transport) Closed() bool {
	return t.closed.Load()
}
