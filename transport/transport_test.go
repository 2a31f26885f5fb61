package transport

import (
	"context"
	"errors"
	"io"
	"net"
	"os"
	"testing"
	"time"

	"github.com/arloliu/go-bts/logger"
	"github.com/stretchr/testify/require"
)

const connectResponse = "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\r\n" +
	"<bts version=\"1.0\">\r\n  <cmd>connect_resp</cmd>\r\n  <result>ok</result>\r\n</bts>"

func testConfig() Config {
	return Config{Logger: logger.NewSlogTo(io.Discard, logger.DebugLevel, false)}
}

// serve reads one request from conn and answers with the given writes.
func serve(t *testing.T, conn net.Conn, writes ...string) <-chan []byte {
	t.Helper()

	got := make(chan []byte, 1)
	go func() {
		defer close(got)

		mr := newMessageReader(0)
		req, err := mr.ReadMessage(conn, 5*time.Second)
		if err != nil {
			return
		}
		got <- req

		for _, w := range writes {
			if _, err := conn.Write([]byte(w)); err != nil {
				return
			}
		}
	}()

	return got
}

func TestWrap(t *testing.T) {
	require := require.New(t)

	require.Equal(
		`<?xml version="1.0" encoding="UTF-8" ?><bts version="1.0"><cmd>getdevinfo</cmd></bts>`,
		string(Wrap([]byte("<cmd>getdevinfo</cmd>"))),
	)
	require.Equal(
		"<?xml version=\"1.0\" encoding=\"UTF-8\" ?><bts version=\"1.0\"></bts>\n\n#\r\n",
		string(Frame(nil)),
	)
}

func TestSendAndReceive(t *testing.T) {
	require := require.New(t)

	client, server := net.Pipe()
	defer server.Close()

	tr := New(client, testConfig())
	defer tr.Close()

	body := []byte("<cmd>connect</cmd><username>admin</username><password>neware</password><type>bfgs</type>")
	got := serve(t, server, connectResponse+Sentinel)

	resp, err := tr.SendAndReceive(context.Background(), body)
	require.NoError(err)
	require.Equal(connectResponse, string(resp))
	require.Equal(string(Wrap(body)), string(<-got))
}

func TestSendAndReceive_Chunked(t *testing.T) {
	require := require.New(t)

	client, server := net.Pipe()
	defer server.Close()

	tr := New(client, testConfig())
	defer tr.Close()

	// split the response in the middle of the sentinel
	full := connectResponse + Sentinel
	cut := len(connectResponse) + 2
	got := serve(t, server, full[:10], full[10:cut], full[cut:])

	resp, err := tr.SendAndReceive(context.Background(), []byte("<cmd>connect</cmd>"))
	require.NoError(err)
	require.Equal(connectResponse, string(resp))
	<-got
}

func TestSendAndReceive_BackToBack(t *testing.T) {
	require := require.New(t)

	client, server := net.Pipe()
	defer server.Close()

	tr := New(client, testConfig())
	defer tr.Close()

	// both responses arrive in one write; the second must be kept for the next call
	got := serve(t, server, "first"+Sentinel+"second"+Sentinel)

	resp, err := tr.SendAndReceive(context.Background(), []byte("<cmd>a</cmd>"))
	require.NoError(err)
	require.Equal("first", string(resp))
	<-got

	next := make(chan []byte, 1)
	go func() {
		mr := newMessageReader(0)
		req, _ := mr.ReadMessage(server, 5*time.Second)
		next <- req
	}()

	resp, err = tr.SendAndReceive(context.Background(), []byte("<cmd>b</cmd>"))
	require.NoError(err)
	require.Equal("second", string(resp))
	require.Contains(string(<-next), "<cmd>b</cmd>")
}

func TestSendAndReceive_PeerClosed(t *testing.T) {
	require := require.New(t)

	client, server := net.Pipe()

	tr := New(client, testConfig())

	go func() {
		mr := newMessageReader(0)
		_, _ = mr.ReadMessage(server, 5*time.Second)
		_, _ = server.Write([]byte("<bts>partial"))
		server.Close()
	}()

	_, err := tr.SendAndReceive(context.Background(), []byte("<cmd>getdevinfo</cmd>"))
	require.Error(err)
	require.ErrorIs(err, ErrConnection)
	require.ErrorIs(err, io.EOF)

	var ce *ConnError
	require.True(errors.As(err, &ce))
	require.Equal("receive", ce.Op)
	require.True(tr.Closed())

	_, err = tr.SendAndReceive(context.Background(), []byte("<cmd>getdevinfo</cmd>"))
	require.ErrorIs(err, ErrConnClosed)
}

func TestSendAndReceive_ContextCancel(t *testing.T) {
	require := require.New(t)

	client, server := net.Pipe()
	defer server.Close()

	tr := New(client, testConfig())

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		mr := newMessageReader(0)
		_, _ = mr.ReadMessage(server, 5*time.Second)
		cancel()
	}()

	_, err := tr.SendAndReceive(ctx, []byte("<cmd>getdevinfo</cmd>"))
	require.ErrorIs(err, ErrConnection)
	require.ErrorIs(err, context.Canceled)
	require.True(tr.Closed())

	_, err = tr.SendAndReceive(context.Background(), nil)
	require.ErrorIs(err, ErrConnClosed)
}

func TestSendAndReceive_CancelWithReplyTimeout(t *testing.T) {
	require := require.New(t)

	// the cancel races the reply deadline; it must win every time
	for range 20 {
		client, server := net.Pipe()

		cfg := testConfig()
		cfg.ReplyTimeout = time.Minute
		tr := New(client, cfg)

		ctx, cancel := context.WithCancel(context.Background())
		go func() {
			mr := newMessageReader(0)
			_, _ = mr.ReadMessage(server, 5*time.Second)
			cancel()
		}()

		start := time.Now()
		_, err := tr.SendAndReceive(ctx, []byte("<cmd>getdevinfo</cmd>"))
		require.ErrorIs(err, context.Canceled)
		require.Less(time.Since(start), 5*time.Second)
		require.True(tr.Closed())

		server.Close()
	}
}

func TestSendAndReceive_AlreadyCancelled(t *testing.T) {
	require := require.New(t)

	client, server := net.Pipe()
	defer server.Close()

	tr := New(client, testConfig())
	defer tr.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := tr.SendAndReceive(ctx, []byte("<cmd>getdevinfo</cmd>"))
	require.ErrorIs(err, context.Canceled)
	require.False(tr.Closed())
}

func TestSendAndReceive_ReplyTimeout(t *testing.T) {
	require := require.New(t)

	client, server := net.Pipe()
	defer server.Close()

	cfg := testConfig()
	cfg.ReplyTimeout = 50 * time.Millisecond
	tr := New(client, cfg)

	got := serve(t, server)

	_, err := tr.SendAndReceive(context.Background(), []byte("<cmd>getdevinfo</cmd>"))
	require.ErrorIs(err, ErrConnection)
	require.ErrorIs(err, os.ErrDeadlineExceeded)
	<-got
}

func TestSendAndReceive_MessageTooLarge(t *testing.T) {
	require := require.New(t)

	client, server := net.Pipe()
	defer server.Close()

	cfg := testConfig()
	cfg.MaxMessageSize = 16
	tr := New(client, cfg)

	got := serve(t, server, connectResponse)

	_, err := tr.SendAndReceive(context.Background(), []byte("<cmd>connect</cmd>"))
	require.ErrorIs(err, ErrMessageTooLarge)
	require.True(tr.Closed())
	<-got
}

func TestClose_Idempotent(t *testing.T) {
	require := require.New(t)

	client, server := net.Pipe()
	defer server.Close()

	tr := New(client, testConfig())
	require.NoError(tr.Close())
	require.NoError(tr.Close())
	require.True(tr.Closed())
}

func TestDial_Refused(t *testing.T) {
	require := require.New(t)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(err)
	addr := ln.Addr().String()
	require.NoError(ln.Close())

	_, err = Dial(context.Background(), addr, time.Second, testConfig())
	require.ErrorIs(err, ErrConnection)

	var ce *ConnError
	require.True(errors.As(err, &ce))
	require.Equal("dial", ce.Op)
}
