package guest

import (
	"context"
	"fmt"

	"github.com/tetratelabs/wazero/api"
	"github.com/wippyai/hermes-abi/codec"
	_ "github.com/wippyai/hermes-abi/dialogue" // registers the message codecs
	"github.com/wippyai/hermes-abi/errors"
	"go.uber.org/zap"
)

// HostModule is the import module name guests use for the host exports.
const HostModule = "hermes"

// Export name prefixes. Each registered codec gets one of each.
const (
	prefixRoundTrip = "round_trip_"
	prefixDestroy   = "destroy_"
)

var (
	i32    = []api.ValueType{api.ValueTypeI32}
	i32i32 = []api.ValueType{api.ValueTypeI32, api.ValueTypeI32}
)

// Host exposes the registered codecs to guests over the guest memory.
// Every function returns codec.StatusOK or codec.StatusError; after an
// error get_last_error yields the message.
//
//	round_trip_<type>(in, out *ptr) status   decode in, encode a copy into *out
//	destroy_<type>(ptr) status               release a value from round_trip
//	get_last_error(out *ptr) status          copy the last message into *out
//	destroy_string(ptr) status               release a get_last_error message
type Host struct {
	g      *Guest
	module api.Module
	last   codec.LastError
}

// NewHost instantiates the host module in g's runtime.
//
// Every pointer passed through the exports addresses the guest memory, so
// a calling module must import it (module Config.ModuleName, field
// MemoryExport) instead of defining its own. Calls from any other module
// fail with an invalid_input status.
func NewHost(ctx context.Context, g *Guest) (*Host, error) {
	h := &Host{g: g}
	b := g.runtime.NewHostModuleBuilder(HostModule)

	for _, c := range codec.All() {
		name := snakeName(c.Name())
		b = b.NewFunctionBuilder().
			WithGoModuleFunction(h.roundTrip(c), i32i32, i32).
			Export(prefixRoundTrip + name)
		b = b.NewFunctionBuilder().
			WithGoModuleFunction(h.destroy(c), i32, i32).
			Export(prefixDestroy + name)
	}

	b = b.NewFunctionBuilder().
		WithGoModuleFunction(api.GoModuleFunc(h.getLastError), i32, i32).
		Export("get_last_error")
	b = b.NewFunctionBuilder().
		WithGoModuleFunction(h.destroy(codec.Text), i32, i32).
		Export("destroy_string")

	mod, err := b.Instantiate(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseRuntime, errors.KindNotInitialized, err, "instantiate host module")
	}
	h.module = mod
	return h, nil
}

// Module is the instantiated host module.
func (h *Host) Module() api.Module { return h.module }

// LastError is the message slot read by get_last_error.
func (h *Host) LastError() *codec.LastError { return &h.last }

// checkCaller rejects modules that do not share the guest memory.
func (h *Host) checkCaller(mod api.Module) error {
	if mod != nil && mod.Memory() == h.g.mem.mem {
		return nil
	}
	name := ""
	if mod != nil {
		name = mod.Name()
	}
	return errors.InvalidInput(errors.PhaseRuntime,
		fmt.Sprintf("caller %q must import %s.%s", name, h.g.cfg.ModuleName, MemoryExport))
}

// call runs fn and turns its error, or a contract violation it panics
// with, into a status. Violations must not unwind through guest frames.
func (h *Host) call(op string, mod api.Module, fn func() error) (status int32) {
	defer func() {
		if r := recover(); r != nil {
			v, ok := r.(*errors.Violation)
			if !ok {
				panic(r)
			}
			h.g.log.Error("contract violation in host call", zap.String("op", op), zap.Error(v))
			status = h.last.Record(v)
		}
	}()
	if err := h.checkCaller(mod); err != nil {
		h.g.log.Warn("host call rejected", zap.String("op", op), zap.Error(err))
		return h.last.Record(err)
	}
	return h.last.Record(fn())
}

func (h *Host) roundTrip(c codec.Any) api.GoModuleFunc {
	op := prefixRoundTrip + snakeName(c.Name())
	return func(_ context.Context, mod api.Module, stack []uint64) {
		in, out := api.DecodeU32(stack[0]), api.DecodeU32(stack[1])
		status := h.call(op, mod, func() error {
			owned, err := c.Recode(h.g.mem, h.g.alloc, in)
			if err != nil {
				return err
			}
			// The guest owns the copy from here and frees it with destroy_<type>.
			if err := h.g.mem.WriteU32(out, owned.Ptr()); err != nil {
				owned.Release()
				return err
			}
			return nil
		})
		stack[0] = api.EncodeI32(status)
	}
}

func (h *Host) destroy(c codec.Any) api.GoModuleFunc {
	op := prefixDestroy + snakeName(c.Name())
	return func(_ context.Context, mod api.Module, stack []uint64) {
		ptr := api.DecodeU32(stack[0])
		status := h.call(op, mod, func() error {
			if ptr == 0 {
				return errors.NilPointer(errors.PhaseFree, nil)
			}
			c.Free(h.g.mem, h.g.alloc, ptr)
			return nil
		})
		stack[0] = api.EncodeI32(status)
	}
}

func (h *Host) getLastError(_ context.Context, mod api.Module, stack []uint64) {
	out := api.DecodeU32(stack[0])
	if err := h.checkCaller(mod); err != nil {
		stack[0] = api.EncodeI32(h.last.Record(err))
		return
	}
	msg, ok := h.last.Message()
	if !ok {
		stack[0] = api.EncodeI32(codec.StatusError)
		return
	}
	owned, err := codec.Text.Encode(h.g.mem, h.g.alloc, msg)
	if err == nil {
		if err = h.g.mem.WriteU32(out, owned.Ptr()); err != nil {
			owned.Release()
		}
	}
	if err != nil {
		h.g.log.Warn("get_last_error failed", zap.Error(err))
		stack[0] = api.EncodeI32(codec.StatusError)
		return
	}
	stack[0] = api.EncodeI32(codec.StatusOK)
}
