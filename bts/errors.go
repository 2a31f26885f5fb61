package bts

import (
	"errors"
	"fmt"

	"github.com/arloliu/go-bts/channel"
	"github.com/arloliu/go-bts/record"
	"github.com/arloliu/go-bts/transport"
)

// Errors returned by the client, grouped by cause. Match them with errors.Is.
var (
	// ErrConnection indicates a failed connect, send or receive. The
	// connection is closed afterwards.
	ErrConnection = transport.ErrConnection

	// ErrConnClosed indicates an operation on a closed connection.
	ErrConnClosed = transport.ErrConnClosed

	// ErrDecode indicates a response that could not be decoded.
	ErrDecode = record.ErrDecode

	// ErrNotFound indicates a pipeline id absent from the channel map.
	ErrNotFound = channel.ErrNotFound

	// ErrNoDevices indicates that the server reported no channels at connect.
	ErrNoDevices = channel.ErrNoDevices
)

var (
	// ErrClientConfigNil indicates that a nil ClientConfig was provided.
	ErrClientConfigNil = errors.New("bts: client config is nil")

	// ErrNotConnected indicates an operation on a client that is not open.
	ErrNotConnected = errors.New("bts: client not connected")

	// ErrAlreadyConnected indicates Open on a client that is already open.
	ErrAlreadyConnected = errors.New("bts: client already connected")

	// ErrLoginRejected indicates that the server answered connect with a result other than "ok".
	ErrLoginRejected = errors.New("bts: login rejected")

	// ErrPrecondition is matched by every PreconditionError.
	ErrPrecondition = errors.New("bts: precondition violation")

	// ErrUsage indicates invalid arguments, such as start sequences of different lengths.
	ErrUsage = errors.New("bts: invalid usage")
)

// PreconditionError reports a start refused by the client because the
// last observed state of the pipeline does not allow it. Nothing was sent.
type PreconditionError struct {
	Pipeline string
	State    string
	Allowed  []string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("bts: cannot start %s: state is %q, can only start jobs if pipeline state is one of %v",
		e.Pipeline, e.State, e.Allowed)
}

// Is makes every PreconditionError match ErrPrecondition.
func (e *PreconditionError) Is(target error) bool {
	return target == ErrPrecondition
}

// DownloadError reports a paginated download aborted at Cursor, the start
// position of the failed page. Records of earlier pages are discarded.
type DownloadError struct {
	Verb     string
	Pipeline string
	Cursor   int
	Err      error
}

func (e *DownloadError) Error() string {
	return fmt.Sprintf("bts: %s %s at startpos %d: %v", e.Verb, e.Pipeline, e.Cursor, e.Err)
}

func (e *DownloadError) Unwrap() error { return e.Err }

func usageErr(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrUsage, fmt.Sprintf(format, args...))
}
