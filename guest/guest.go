package guest

import (
	"context"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"github.com/wippyai/hermes-abi/errors"
	"github.com/wippyai/hermes-abi/heap"
	"github.com/wippyai/hermes-abi/internal/abi"
	"go.uber.org/zap"
)

// MemoryExport is the export name of the guest memory.
const MemoryExport = "memory"

// Config controls the guest memory.
type Config struct {
	// Logger overrides the package logger for this guest.
	Logger *zap.Logger
	// ModuleName names the memory module in the runtime. Default "guest".
	ModuleName string
	// InitialPages is the initial memory size in 64KiB pages. Default 1.
	InitialPages uint32
	// MaxPages caps memory growth. Default 256 (16MiB).
	MaxPages uint32
}

func (c Config) withDefaults() Config {
	if c.Logger == nil {
		c.Logger = Logger()
	}
	if c.ModuleName == "" {
		c.ModuleName = "guest"
	}
	if c.InitialPages == 0 {
		c.InitialPages = 1
	}
	if c.MaxPages == 0 {
		c.MaxPages = 256
	}
	return c
}

// Guest owns a wazero runtime with one memory-only module.
type Guest struct {
	runtime wazero.Runtime
	module  api.Module
	mem     *Memory
	alloc   *heap.Allocator
	log     *zap.Logger
	cfg     Config
}

// New starts a runtime and instantiates the memory module.
func New(ctx context.Context, cfg Config) (*Guest, error) {
	cfg = cfg.withDefaults()
	if cfg.MaxPages > 1<<16 || cfg.InitialPages > cfg.MaxPages {
		return nil, errors.InvalidInput(errors.PhaseRuntime, "guest pages: initial must not exceed max, max at most 65536")
	}

	r := wazero.NewRuntimeWithConfig(ctx, wazero.NewRuntimeConfig().WithMemoryLimitPages(cfg.MaxPages))
	mod, err := r.InstantiateWithConfig(ctx,
		memoryModule(MemoryExport, cfg.InitialPages, cfg.MaxPages),
		wazero.NewModuleConfig().WithName(cfg.ModuleName))
	if err != nil {
		_ = r.Close(ctx)
		return nil, errors.Wrap(errors.PhaseRuntime, errors.KindNotInitialized, err, "instantiate memory module")
	}

	mem := WrapMemory(mod.ExportedMemory(MemoryExport))
	if mem == nil {
		_ = r.Close(ctx)
		return nil, errors.NotInitialized(errors.PhaseRuntime, "guest memory")
	}
	maxSize := min(uint64(cfg.MaxPages)*heap.PageSize, abi.MaxAlloc)
	alloc := heap.NewAllocator(mem, heap.Config{MaxSize: uint32(maxSize)})
	mem.sizer = alloc

	cfg.Logger.Debug("guest started",
		zap.String("module", cfg.ModuleName),
		zap.Uint32("initial_pages", cfg.InitialPages),
		zap.Uint32("max_pages", cfg.MaxPages))

	return &Guest{runtime: r, module: mod, mem: mem, alloc: alloc, log: cfg.Logger, cfg: cfg}, nil
}

// Memory is the guest linear memory.
func (g *Guest) Memory() *Memory { return g.mem }

// Allocator manages the guest memory.
func (g *Guest) Allocator() *heap.Allocator { return g.alloc }

// Runtime is the underlying wazero runtime, for instantiating host modules
// or guests that import the memory.
func (g *Guest) Runtime() wazero.Runtime { return g.runtime }

// Close releases the runtime and every module in it.
func (g *Guest) Close(ctx context.Context) error {
	if g.runtime == nil {
		return nil
	}
	stats := g.alloc.Stats()
	if stats.LiveBlocks > 0 {
		g.log.Warn("guest closed with live allocations",
			zap.Int("blocks", stats.LiveBlocks),
			zap.Uint64("bytes", stats.LiveBytes))
	}
	err := g.runtime.Close(ctx)
	g.runtime = nil
	return err
}
