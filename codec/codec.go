// Package codec provides value serialization for fetchcache. A Codec turns a
// value of type V into the payload bytes carried inside the wire frame and
// back; frame metadata (generation, epoch, expiry) is handled by the cache and
// never visible to codecs.
package codec

// Codec converts values of type V to and from their stored byte form.
// Implementations must be safe for concurrent use.
type Codec[V any] interface {
	Encode(V) ([]byte, error)
	Decode([]byte) (V, error)
}
