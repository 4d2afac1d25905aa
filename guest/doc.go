// Package guest puts the foreign side of the boundary inside a real
// WebAssembly linear memory.
//
// New starts a wazero runtime and instantiates a module that only defines
// and exports one memory. The Guest then hands out that memory and a
// heap.Allocator managing it, so every codec can encode into and decode
// from guest memory exactly as it would for a compiled guest:
//
//	g, err := guest.New(ctx, guest.Config{})
//	if err != nil {
//	    return err
//	}
//	defer g.Close(ctx)
//
//	owned, err := dialogue.SessionQueuedMessage.Encode(g.Memory(), g.Allocator(), msg)
//
// For modules compiled elsewhere, WrapMemory adapts their exported memory
// and WrapAllocator their cabi_realloc export.
//
// Host exposes every registered codec to guests as a "hermes" host
// module with round_trip, destroy and get_last_error functions.
package guest
