package channel

import (
	"fmt"
	"strconv"
	"strings"
)

// Address is the (device, sub-device, channel) triple of one pipeline.
type Address struct {
	DevID    int
	SubDevID int
	ChlID    int
}

// String returns the pipeline id of a.
func (a Address) String() string {
	return fmt.Sprintf("%d-%d-%d", a.DevID, a.SubDevID, a.ChlID)
}

// ParseAddress parses a pipeline id such as "21-1-1".
func ParseAddress(id string) (Address, error) {
	parts := strings.Split(id, "-")
	if len(parts) != 3 {
		return Address{}, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}

	var nums [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n <= 0 {
			return Address{}, fmt.Errorf("%w: %q", ErrInvalidID, id)
		}
		nums[i] = n
	}

	return Address{DevID: nums[0], SubDevID: nums[1], ChlID: nums[2]}, nil
}
