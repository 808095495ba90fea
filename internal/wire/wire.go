package wire

import (
	"bytes"
	"encoding/binary"
	"errors"
)

const (
	version    byte = 1
	kindResult byte = 1

	// magic(4) | ver(1) | kind(1) | gen(u64 be) | epoch(u64 be) | exp(u64 be) | vlen(u32 be)
	header = 4 + 1 + 1 + 8 + 8 + 8 + 4
)

var (
	ErrCorrupt = errors.New("fetchcache: corrupt entry")
	magic4     = [...]byte{'F', 'T', 'C', 'H'}
)

// Entry is the framed form of a cached result. Gen and Epoch are the write
// fences observed when the fetch began; ExpiresAt is unix nanoseconds.
type Entry struct {
	Gen       uint64
	Epoch     uint64
	ExpiresAt int64
	Payload   []byte
}

func hasMagic(b []byte) bool {
	return len(b) >= 4 && bytes.Equal(b[:4], magic4[:])
}

func Encode(e Entry) []byte {
	var buf bytes.Buffer
	buf.Grow(header + len(e.Payload))

	buf.Write(magic4[:])
	buf.WriteByte(version)
	buf.WriteByte(kindResult)

	var u8 [8]byte
	var u4 [4]byte

	binary.BigEndian.PutUint64(u8[:], e.Gen)
	buf.Write(u8[:])

	binary.BigEndian.PutUint64(u8[:], e.Epoch)
	buf.Write(u8[:])

	binary.BigEndian.PutUint64(u8[:], uint64(e.ExpiresAt))
	buf.Write(u8[:])

	binary.BigEndian.PutUint32(u4[:], uint32(len(e.Payload)))
	buf.Write(u4[:])

	buf.Write(e.Payload)
	return buf.Bytes()
}

// Decode parses a framed entry. Framing is strict: unknown magic/version/kind,
// truncated buffers and trailing bytes are all ErrCorrupt.
func Decode(b []byte) (Entry, error) {
	if len(b) < header || !hasMagic(b) || b[4] != version || b[5] != kindResult {
		return Entry{}, ErrCorrupt
	}

	off := 6

	gen := binary.BigEndian.Uint64(b[off : off+8])
	off += 8

	epoch := binary.BigEndian.Uint64(b[off : off+8])
	off += 8

	exp := int64(binary.BigEndian.Uint64(b[off : off+8]))
	off += 8

	vlen := int(binary.BigEndian.Uint32(b[off : off+4]))
	off += 4
	if vlen < 0 || vlen != len(b)-off { // strict: no trailing bytes
		return Entry{}, ErrCorrupt
	}

	return Entry{
		Gen:       gen,
		Epoch:     epoch,
		ExpiresAt: exp,
		Payload:   b[off : off+vlen],
	}, nil
}
