package segments

import (
	"fmt"
	"strconv"
	"strings"
)

// ID is a 64-bit segment id split into two 32-bit halves.
type ID struct {
	Low  uint32
	High uint32
}

func FromUint64(v uint64) ID {
	return ID{Low: uint32(v), High: uint32(v >> 32)}
}

func (id ID) Uint64() uint64 {
	return uint64(id.High)<<32 | uint64(id.Low)
}

func (id ID) String() string {
	return strconv.FormatUint(id.Uint64(), 10)
}

func (id ID) Less(other ID) bool {
	return id.Uint64() < other.Uint64()
}

// ObjectKey returns a map key for id. It is cheaper than formatting the
// decimal value.
func ObjectKey(id ID) string {
	return strconv.FormatUint(uint64(id.Low), 10) + "," + strconv.FormatUint(uint64(id.High), 10)
}

// ParseID accepts either a decimal value or an object key ("low,high").
func ParseID(s string) (ID, error) {
	s = strings.TrimSpace(s)
	if low, high, ok := strings.Cut(s, ","); ok {
		l, err := strconv.ParseUint(strings.TrimSpace(low), 10, 32)
		if err != nil {
			return ID{}, fmt.Errorf("invalid segment key %q: %w", s, err)
		}
		h, err := strconv.ParseUint(strings.TrimSpace(high), 10, 32)
		if err != nil {
			return ID{}, fmt.Errorf("invalid segment key %q: %w", s, err)
		}
		return ID{Low: uint32(l), High: uint32(h)}, nil
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return ID{}, fmt.Errorf("invalid segment id %q: %w", s, err)
	}
	return FromUint64(v), nil
}
