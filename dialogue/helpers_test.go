package dialogue

import (
	"testing"

	"github.com/wippyai/hermes-abi/heap"
)

func strp(s string) *string  { return &s }
func boolp(b bool) *bool     { return &b }
func f32(v float32) *float32 { return &v }

func newArena(t *testing.T) *heap.Arena {
	t.Helper()
	a := heap.NewArena(heap.Config{})
	t.Cleanup(func() {
		if live := a.Live(); len(live) != 0 {
			t.Errorf("%d allocations still live: %+v", len(live), live)
		}
	})
	return a
}
