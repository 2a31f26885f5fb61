package transport

import (
	"bytes"
	"fmt"
	"net"
	"time"
)

const (
	// Preamble opens every request document.
	Preamble = `<?xml version="1.0" encoding="UTF-8" ?><bts version="1.0">`
	// Suffix closes every request document.
	Suffix = `</bts>`
	// Sentinel terminates every message on the wire.
	Sentinel = "\n\n#\r\n"

	// DefaultMaxMessageSize bounds a single response.
	DefaultMaxMessageSize = 64 << 20

	readChunkSize = 32 << 10
)

var sentinel = []byte(Sentinel)

// Wrap encloses body in the request document envelope.
func Wrap(body []byte) []byte {
	var buf bytes.Buffer
	writeDocument(&buf, body)

	return buf.Bytes()
}

// Frame returns the bytes sent on the wire for body: the wrapped document
// followed by the sentinel.
func Frame(body []byte) []byte {
	var buf bytes.Buffer
	writeFrame(&buf, body)

	return buf.Bytes()
}

func writeDocument(buf *bytes.Buffer, body []byte) {
	buf.Grow(len(Preamble) + len(body) + len(Suffix) + len(Sentinel))
	buf.WriteString(Preamble)
	buf.Write(body)
	buf.WriteString(Suffix)
}

func writeFrame(buf *bytes.Buffer, body []byte) {
	writeDocument(buf, body)
	buf.WriteString(Sentinel)
}

// messageReader accumulates bytes from a stream until a sentinel is seen.
//
// Bytes received after a sentinel are kept for the next ReadMessage call.
// messageReader is NOT goroutine-safe.
type messageReader struct {
	maxSize int
	pending bytes.Buffer
	chunk   []byte
}

func newMessageReader(maxSize int) *messageReader {
	if maxSize <= 0 {
		maxSize = DefaultMaxMessageSize
	}

	return &messageReader{
		maxSize: maxSize,
		chunk:   make([]byte, readChunkSize),
	}
}

// ReadMessage reads one message from conn and returns it without the sentinel.
//
// timeout bounds the whole read; zero blocks until the peer answers or the
// connection breaks.
func (mr *messageReader) ReadMessage(conn net.Conn, timeout time.Duration) ([]byte, error) {
	if timeout > 0 {
		if err := conn.SetReadDeadline(time.Now().Add(timeout)); err != nil {
			return nil, fmt.Errorf("set read deadline: %w", err)
		}
	}

	var readErr error
	// the sentinel may straddle two reads, so each scan starts a little
	// before the newly appended bytes
	scanFrom := 0
	for {
		if idx := bytes.Index(mr.pending.Bytes()[scanFrom:], sentinel); idx >= 0 {
			end := scanFrom + idx
			msg := make([]byte, end)
			copy(msg, mr.pending.Bytes()[:end])
			mr.pending.Next(end + len(sentinel))

			return msg, nil
		}

		if readErr != nil {
			return nil, readErr
		}

		if mr.pending.Len() > mr.maxSize {
			return nil, fmt.Errorf("%w: %d bytes without sentinel", ErrMessageTooLarge, mr.pending.Len())
		}

		n, err := conn.Read(mr.chunk)
		scanFrom = max(0, mr.pending.Len()-len(sentinel)+1)
		mr.pending.Write(mr.chunk[:n])
		readErr = err
	}
}
