package codec

import (
	"errors"
	"fmt"
)

var ErrTooLarge = errors.New("codec: payload too large")

// Limit wraps another codec to enforce a maximum payload size at Decode
// time. Encode is forwarded to Inner unchanged.
// If MaxDecode <= 0, size limiting is disabled.
type Limit[V any] struct {
	// Inner is the underlying codec being wrapped. It must be set.
	Inner Codec[V]
	// MaxDecode is the maximum permitted length (in bytes) of the incoming
	// payload for Decode. Longer input fails without invoking Inner.
	MaxDecode int
}

func (c Limit[V]) Encode(v V) ([]byte, error) { return c.Inner.Encode(v) }
func (c Limit[V]) Decode(b []byte) (V, error) {
	if c.MaxDecode > 0 && len(b) > c.MaxDecode {
		var zero V
		return zero, fmt.Errorf("%w: %d > %d", ErrTooLarge, len(b), c.MaxDecode)
	}
	return c.Inner.Decode(b)
}
