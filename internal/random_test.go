package internal

import "testing"

func TestNewTokenIDShape(t *testing.T) {
	seen := make(map[string]struct{}, 64)
	for i := 0; i < 64; i++ {
		id, err := NewTokenID()
		if err != nil {
			t.Fatalf("new token id: %v", err)
		}
		if len(id) != 43 {
			t.Fatalf("len(id) = %d, want 43", len(id))
		}
		if !ValidTokenID(id) {
			t.Fatalf("generated id %q rejected", id)
		}
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = struct{}{}
	}
}

func TestValidTokenIDRejectsForeignShapes(t *testing.T) {
	for _, id := range []string{
		"",
		"short",
		"AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA=",
		"AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA+",
		"AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA",
	} {
		if ValidTokenID(id) {
			t.Fatalf("ValidTokenID(%q) = true", id)
		}
	}
}
