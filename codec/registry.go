package codec

import (
	"fmt"
	"sort"
	"sync"
)

// Any is the type-erased view of a Codec, used where codecs are handled by
// name: the CLI and the guest host exports.
type Any interface {
	Name() string
	Layout() *Layout
	Recode(mem Memory, alloc Allocator, ptr uint32) (*Owned, error)
	Free(mem Memory, alloc Allocator, ptr uint32)
}

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Any)
)

// Register makes c available by name. Registering a name twice panics.
func Register(c Any) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, dup := registry[c.Name()]; dup {
		panic(fmt.Sprintf("codec: %s registered twice", c.Name()))
	}
	registry[c.Name()] = c
}

// Lookup returns the codec registered under name.
func Lookup(name string) (Any, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	c, ok := registry[name]
	return c, ok
}

// All returns every registered codec ordered by name.
func All() []Any {
	registryMu.RLock()
	out := make([]Any, 0, len(registry))
	for _, c := range registry {
		out = append(out, c)
	}
	registryMu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

func init() {
	Register(Text)
	Register(TextArray)
}
