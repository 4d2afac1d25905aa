// Package heap provides an in-process foreign memory: a growable
// little-endian Buffer, a first-fit Allocator that tracks every live
// block, and a prometheus Collector over the allocator statistics.
//
// The allocator never hands out address 0 and remembers the requested
// size of each block, so decoders can check sequence counts against it
// and tests can assert that nothing is left allocated:
//
//	arena := heap.NewArena(heap.Config{})
//	owned, _ := dialogue.EndSessionMessage.Encode(arena, arena, msg)
//	owned.Release()
//	if n := arena.Stats().LiveBlocks; n != 0 { ... }
package heap
