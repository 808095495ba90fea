package reqkey

import "testing"

func TestCanonicalJoin(t *testing.T) {
	got := Canonical("team-1", "sprint-2", "sim")
	if got != "team-1/sprint-2/sim" {
		t.Fatalf("Canonical: got %q", got)
	}
	if Canonical() != "" {
		t.Fatalf("Canonical() should be empty")
	}
}

func TestHashJSONFieldOrderIndependent(t *testing.T) {
	a := []byte(`{"teamId":"t1","sprintId":"s2","items":[{"id":1,"points":3},{"id":2,"points":5}]}`)
	b := []byte(`{"sprintId":"s2","items":[{"points":3,"id":1},{"points":5,"id":2}],"teamId":"t1"}`)

	ha, err := HashJSON(a)
	if err != nil {
		t.Fatalf("HashJSON(a): %v", err)
	}
	hb, err := HashJSON(b)
	if err != nil {
		t.Fatalf("HashJSON(b): %v", err)
	}
	if ha != hb {
		t.Fatalf("hashes differ for equivalent requests: %q vs %q", ha, hb)
	}
}

func TestHashJSONWhitespaceIndependent(t *testing.T) {
	a := []byte(`{"teamId":"t1","sprintId":"s2"}`)
	b := []byte("{\n  \"teamId\": \"t1\",\n  \"sprintId\": \"s2\"\n}")

	ha, _ := HashJSON(a)
	hb, _ := HashJSON(b)
	if ha != hb {
		t.Fatalf("hashes differ for whitespace-only variants: %q vs %q", ha, hb)
	}
}

func TestHashJSONContentSensitive(t *testing.T) {
	ha, _ := HashJSON([]byte(`{"teamId":"t1"}`))
	hb, _ := HashJSON([]byte(`{"teamId":"t2"}`))
	if ha == hb {
		t.Fatalf("different content should not collide")
	}
	// array order is semantic, not incidental
	hc, _ := HashJSON([]byte(`{"items":[1,2]}`))
	hd, _ := HashJSON([]byte(`{"items":[2,1]}`))
	if hc == hd {
		t.Fatalf("array order must affect the key")
	}
}

func TestHashStructAndMapAgree(t *testing.T) {
	type simRequest struct {
		TeamID   string `json:"teamId"`
		SprintID string `json:"sprintId"`
	}
	hs, err := Hash(simRequest{TeamID: "t1", SprintID: "s2"})
	if err != nil {
		t.Fatalf("Hash(struct): %v", err)
	}
	hm, err := Hash(map[string]string{"sprintId": "s2", "teamId": "t1"})
	if err != nil {
		t.Fatalf("Hash(map): %v", err)
	}
	if hs != hm {
		t.Fatalf("struct and map forms should collide: %q vs %q", hs, hm)
	}
}

func TestHashJSONRejectsInvalid(t *testing.T) {
	if _, err := HashJSON([]byte(`{"broken"`)); err == nil {
		t.Fatalf("expected error for invalid JSON")
	}
}

func TestHashLength(t *testing.T) {
	h, err := Hash(map[string]int{"a": 1})
	if err != nil {
		t.Fatal(err)
	}
	if len(h) != 16 {
		t.Fatalf("expected 16 hex chars, got %d (%q)", len(h), h)
	}
}
