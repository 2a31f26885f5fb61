package record

import (
	"errors"
	"fmt"
)

var (
	// ErrDecode is matched by every error this package returns for a payload it could not decode.
	ErrDecode = errors.New("record: protocol decode error")

	// ErrMissingContainer indicates that the expected container element is absent from the response.
	ErrMissingContainer = errors.New("record: container element not found")

	// ErrCountMismatch indicates that a container's declared count differs from its number of children.
	ErrCountMismatch = errors.New("record: declared count does not match element count")

	// ErrFieldMismatch indicates that records with different field sets were transposed to columns.
	ErrFieldMismatch = errors.New("record: heterogeneous field sets")
)

// DecodeError describes a response that could not be decoded.
// Payload holds the offending response text for diagnosis.
type DecodeError struct {
	Payload string
	Err     error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: %v", ErrDecode, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Is makes every DecodeError match ErrDecode.
func (e *DecodeError) Is(target error) bool {
	return target == ErrDecode
}

func decodeErr(payload []byte, format string, args ...any) error {
	return &DecodeError{Payload: string(payload), Err: fmt.Errorf(format, args...)}
}
