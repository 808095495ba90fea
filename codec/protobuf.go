package codec

import "google.golang.org/protobuf/proto"

// Protobuf serializes proto.Message values. Because Decode needs a fresh
// concrete message to unmarshal into, the codec carries a constructor rather
// than relying on the zero value of T (which for proto types is a nil pointer).
type Protobuf[T proto.Message] struct {
	new func() T
}

// NewProtobuf builds a Protobuf codec from a message constructor, e.g.
// NewProtobuf(func() *mypb.User { return &mypb.User{} }).
func NewProtobuf[T proto.Message](ctor func() T) Protobuf[T] {
	return Protobuf[T]{new: ctor}
}

func (c Protobuf[T]) Encode(v T) ([]byte, error) { return proto.Marshal(v) }

func (c Protobuf[T]) Decode(b []byte) (T, error) {
	m := c.new()
	err := proto.Unmarshal(b, m)
	return m, err
}
