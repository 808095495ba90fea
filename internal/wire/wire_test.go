package wire

import (
	"bytes"
	"math"
	"testing"
	"time"
)

func mustDecode(t *testing.T, b []byte) Entry {
	t.Helper()
	e, err := Decode(b)
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	return e
}

func TestRoundTrip(t *testing.T) {
	exp := time.Now().Add(5 * time.Minute).UnixNano()
	cases := []Entry{
		{Gen: 0, Epoch: 0, ExpiresAt: 0, Payload: nil},
		{Gen: 42, Epoch: 7, ExpiresAt: exp, Payload: []byte("hello")},
		{Gen: math.MaxUint64, Epoch: math.MaxUint64, ExpiresAt: math.MaxInt64, Payload: []byte{0, 1, 2, 3, 4}},
	}
	for _, tc := range cases {
		got := mustDecode(t, Encode(tc))
		if got.Gen != tc.Gen || got.Epoch != tc.Epoch || got.ExpiresAt != tc.ExpiresAt {
			t.Fatalf("header mismatch: got %+v want %+v", got, tc)
		}
		if !bytes.Equal(got.Payload, tc.Payload) {
			t.Fatalf("payload mismatch: got %x want %x", got.Payload, tc.Payload)
		}
	}
}

func TestRejectsTrailingBytes(t *testing.T) {
	enc := Encode(Entry{Gen: 7, ExpiresAt: 1, Payload: []byte("x")})
	enc = append(enc, 0xDE, 0xAD) // add junk
	if _, err := Decode(enc); err == nil {
		t.Fatalf("Decode should reject trailing bytes")
	}
}

func TestRejectsShortBuffer(t *testing.T) {
	enc := Encode(Entry{Gen: 1, Payload: []byte("abc")})
	for i := 0; i < len(enc); i++ {
		if _, err := Decode(enc[:i]); err == nil {
			t.Fatalf("Decode should reject truncated buffer at %d", i)
		}
	}
}

func TestRejectsBadMagicVersionKind(t *testing.T) {
	enc := Encode(Entry{Gen: 1, Payload: []byte("abc")})

	bad := append([]byte(nil), enc...)
	bad[0] = 'X'
	if _, err := Decode(bad); err == nil {
		t.Fatalf("Decode should reject bad magic")
	}

	bad = append([]byte(nil), enc...)
	bad[4] = 99
	if _, err := Decode(bad); err == nil {
		t.Fatalf("Decode should reject unknown version")
	}

	bad = append([]byte(nil), enc...)
	bad[5] = 99
	if _, err := Decode(bad); err == nil {
		t.Fatalf("Decode should reject unknown kind")
	}
}

func TestRejectsLengthMismatch(t *testing.T) {
	enc := Encode(Entry{Gen: 1, Payload: []byte("abcdef")})
	// shrink vlen so payload has trailing slack
	enc[header-1] = 2
	if _, err := Decode(enc); err == nil {
		t.Fatalf("Decode should reject vlen/payload mismatch")
	}
}
