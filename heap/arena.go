package heap

// Arena is a Buffer with an Allocator over it. It serves as memory,
// allocator and allocation sizer at once, which is what codec tests and
// in-process callers need.
type Arena struct {
	*Buffer
	*Allocator
}

// NewArena creates an arena configured by cfg.
func NewArena(cfg Config) *Arena {
	cfg = cfg.withDefaults()
	buf := NewBuffer(cfg.InitialSize, cfg.MaxSize)
	return &Arena{Buffer: buf, Allocator: NewAllocator(buf, cfg)}
}
