package id

import (
	"encoding/hex"
	"testing"
)

func TestRandomGenerator_NewID(t *testing.T) {
	t.Parallel()

	gen := NewRandomGenerator()
	seen := make(map[string]struct{}, 100)

	for i := 0; i < 100; i++ {
		generated, err := gen.NewID()
		if err != nil {
			t.Fatalf("generate id: %v", err)
		}
		if len(generated) != 32 {
			t.Fatalf("unexpected id length: %d (%s)", len(generated), generated)
		}
		if _, err := hex.DecodeString(generated); err != nil {
			t.Fatalf("id is not hex: %s", generated)
		}
		if _, dup := seen[generated]; dup {
			t.Fatalf("duplicate id generated: %s", generated)
		}
		seen[generated] = struct{}{}
	}
}
