package channel

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is matched by every NotFoundError.
	ErrNotFound = errors.New("channel: pipeline not found")

	// ErrNoDevices indicates that the server reported no channels at all.
	ErrNoDevices = errors.New("channel: no devices found")

	// ErrInvalidID indicates a pipeline id not in "{devid}-{subdevid}-{chlid}" form.
	ErrInvalidID = errors.New("channel: invalid pipeline id")

	// ErrInvalidDevice indicates a device record without a usable address.
	ErrInvalidDevice = errors.New("channel: invalid device record")

	// ErrDuplicateID indicates a pipeline id that occurs twice.
	ErrDuplicateID = errors.New("channel: duplicate pipeline id")
)

// NotFoundError reports a pipeline id that is absent from the channel map.
type NotFoundError struct {
	ID string
	// Err is set when ID is not a well-formed pipeline id.
	Err error
}

func (e *NotFoundError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("channel: pipeline %q not in channel map: %v", e.ID, e.Err)
	}

	return fmt.Sprintf("channel: pipeline %q not in channel map", e.ID)
}

func (e *NotFoundError) Unwrap() error { return e.Err }

// Is makes every NotFoundError match ErrNotFound.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}
