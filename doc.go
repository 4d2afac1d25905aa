// Package hermesabi converts voice-assistant dialogue messages between owning
// Go values and a flat, pointer-and-discriminant layout in a foreign 32-bit
// linear memory.
//
// The foreign side (a WebAssembly guest, or any caller without a shared type
// system) only ever sees records of pointers, 32-bit discriminants, 8-bit
// flags and 32-bit floats. Every encode produces a value that owns all the
// memory it points to until its matching destructor runs exactly once.
//
// # Architecture Overview
//
//	hermesabi/        Root package with the Memory and Allocator interfaces
//	├── codec/        Text, sentinel, sequence and tagged-union primitives,
//	│                 ownership handles and the generic Codec type
//	├── ontology/     Owning Go representation of the dialogue protocol
//	├── asr/          Speech recognition token codecs
//	├── nlu/          Intent classification and slot codecs
//	├── dialogue/     Session lifecycle, intent and configuration messages
//	├── heap/         Free-list allocator and in-process memory
//	├── guest/        wazero-backed linear memory and host entry points
//	├── errors/       Structured error types
//	└── cmd/hermes-abi  Layout inspection and round-trip tooling
//
// # Quick Start
//
//	arena := heap.NewArena(heap.Config{})
//
//	owned, err := dialogue.EndSessionMessage.Encode(arena, arena, ontology.EndSessionMessage{
//	    SessionID: "session-1",
//	})
//	if err != nil {
//	    return err
//	}
//	defer owned.Release()
//
//	msg, err := dialogue.EndSessionMessage.Decode(arena, owned.Ptr())
//
// # Ownership
//
// Encode returns an *codec.Owned handle. Decode borrows: it never frees and
// returns deep copies. Release frees the whole subtree once; releasing twice
// panics.
//
// # Thread Safety
//
// An encoded value is immutable, so concurrent Decode calls on the same
// pointer are safe when the Memory is. The owner must call Release only after
// every reader is done; nothing in this module enforces that ordering.
package hermesabi
