package heap

import "github.com/wippyai/hermes-abi/internal/abi"

// PageSize is the growth unit, one WebAssembly page.
const PageSize = 64 * 1024

// Config controls where an Allocator places blocks.
type Config struct {
	// Base is the first address handed out. Addresses below it are never
	// used, which keeps 0 free to mean null. Default 16.
	Base uint32
	// Align is the allocation granularity. Every block is padded to a
	// multiple of it. Default 8.
	Align uint32
	// InitialSize is the initial size of a Buffer. Default one page.
	InitialSize uint32
	// MaxSize caps the memory size. Default abi.MaxAlloc.
	MaxSize uint32
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Base:        16,
		Align:       8,
		InitialSize: PageSize,
		MaxSize:     abi.MaxAlloc,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Base == 0 {
		c.Base = d.Base
	}
	if c.Align == 0 || !abi.IsPowerOfTwo(c.Align) {
		c.Align = d.Align
	}
	if c.InitialSize == 0 {
		c.InitialSize = d.InitialSize
	}
	if c.MaxSize == 0 {
		c.MaxSize = d.MaxSize
	}
	return c
}
