package codec

import "fmt"

// LimitCodec caps the payload size accepted by Decode, guarding callers of a
// shared store against oversized entries written by someone else. Encode
// passes through untouched, and a MaxDecode of zero or less disables the cap.
type LimitCodec[V any] struct {
	// Inner performs the actual serialization. Required.
	Inner Codec[V]
	// MaxDecode is the largest payload, in bytes, that Decode will hand to
	// Inner. Longer payloads fail without being decoded.
	MaxDecode int
}

func (c LimitCodec[V]) Encode(v V) ([]byte, error) { return c.Inner.Encode(v) }

func (c LimitCodec[V]) Decode(b []byte) (V, error) {
	if c.MaxDecode > 0 && len(b) > c.MaxDecode {
		var zero V
		return zero, fmt.Errorf("payload too large: %d > %d", len(b), c.MaxDecode)
	}
	return c.Inner.Decode(b)
}
