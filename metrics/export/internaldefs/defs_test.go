package internaldefs

import (
	"strings"
	"testing"
)

func TestCumulative(t *testing.T) {
	got := Cumulative([]uint64{1, 2, 3})
	want := [BucketCount]uint64{1, 3, 6, 6, 6, 6, 6, 6}
	if got != want {
		t.Fatalf("Cumulative = %v, want %v", got, want)
	}
}

func TestCounterNamesAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for _, def := range CounterDefs {
		if !strings.HasPrefix(def.Name, "tokenauth_") || !strings.HasSuffix(def.Name, "_total") {
			t.Fatalf("unexpected counter name %q", def.Name)
		}
		if seen[def.Name] {
			t.Fatalf("duplicate counter name %q", def.Name)
		}
		seen[def.Name] = true
	}
}
