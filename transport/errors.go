package transport

import (
	"errors"
	"fmt"
)

var (
	// ErrConnection is matched by every ConnError.
	ErrConnection = errors.New("transport: connection error")

	// ErrConnClosed indicates that the transport was closed, either by Close or after an I/O failure.
	ErrConnClosed = errors.New("transport: connection closed")

	// ErrMessageTooLarge indicates that a response grew past the configured maximum size without a sentinel.
	ErrMessageTooLarge = errors.New("transport: message exceeds maximum size")
)

// ConnError describes a failed socket operation.
type ConnError struct {
	// Op is the failed operation: "dial", "send" or "receive".
	Op  string
	Err error
}

func (e *ConnError) Error() string {
	return fmt.Sprintf("transport: %s: %v", e.Op, e.Err)
}

func (e *ConnError) Unwrap() error { return e.Err }

// Is makes every ConnError match ErrConnection.
func (e *ConnError) Is(target error) bool {
	return target == ErrConnection
}
