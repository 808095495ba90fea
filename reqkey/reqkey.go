// Package reqkey builds canonical cache keys from logical request content.
//
// Two requests that are semantically identical but differ in incidental
// representation (JSON field order, map insertion order) must map to the same
// key. Hash achieves that by normalizing the request into generic form and
// encoding it with deterministic CBOR (RFC 8949 core deterministic: map keys
// sorted) before digesting.
package reqkey

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fxamacker/cbor/v2"
)

var detMode cbor.EncMode

func init() {
	m, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	detMode = m
}

// Canonical joins logical identifiers into a stable key, e.g.
// Canonical("team-1", "sprint-2", "sim") => "team-1/sprint-2/sim".
// Parts are used as-is; callers pass stable identifiers, not display strings.
func Canonical(parts ...string) string {
	return strings.Join(parts, "/")
}

// Hash returns a short, order-independent digest of a request object.
// v is first serialized with encoding/json (so json struct tags apply),
// then normalized and digested like HashJSON.
func Hash(v any) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("reqkey: marshal request: %w", err)
	}
	return HashJSON(raw)
}

// HashJSON returns a short digest of a raw JSON document that does not depend
// on the document's field order or whitespace.
func HashJSON(raw []byte) (string, error) {
	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return "", fmt.Errorf("reqkey: parse request: %w", err)
	}
	det, err := detMode.Marshal(generic)
	if err != nil {
		return "", fmt.Errorf("reqkey: canonical encode: %w", err)
	}
	sum := sha256.Sum256(det)
	return fmt.Sprintf("%x", sum)[:16], nil
}
