package guest

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
)

const (
	sectionType     = 0x01
	sectionImport   = 0x02
	sectionFunction = 0x03
	sectionCode     = 0x0a

	funcTypeTag  = 0x60
	valueI32     = 0x7f
	externFunc   = 0x00
	limitsMin    = 0x00
	opLocalGet   = 0x20
	opCall       = 0x10
	opEnd        = 0x0b
	noLocalDecls = 0x00
)

// funcImport is an imported function taking params i32s and returning
// one i32.
type funcImport struct {
	module string
	name   string
	params uint32
}

func appendName(b []byte, s string) []byte {
	b = appendULEB128(b, uint32(len(s)))
	return append(b, s...)
}

// callerModule builds a module that exports every import under its own
// name through a function forwarding the params. With memModule set the
// module imports that module's memory; otherwise ownPages > 0 gives it a
// memory of its own.
func callerModule(memModule string, ownPages uint32, imports ...funcImport) []byte {
	n := uint32(len(imports))
	out := append([]byte(nil), wasmHeader...)

	types := appendULEB128(nil, n)
	for _, imp := range imports {
		types = append(types, funcTypeTag)
		types = appendULEB128(types, imp.params)
		for range imp.params {
			types = append(types, valueI32)
		}
		types = append(types, 1, valueI32)
	}
	out = appendSection(out, sectionType, types)

	count := n
	if memModule != "" {
		count++
	}
	imps := appendULEB128(nil, count)
	for i, imp := range imports {
		imps = appendName(imps, imp.module)
		imps = appendName(imps, imp.name)
		imps = append(imps, externFunc)
		imps = appendULEB128(imps, uint32(i))
	}
	if memModule != "" {
		imps = appendName(imps, memModule)
		imps = appendName(imps, MemoryExport)
		imps = append(imps, exportMemory, limitsMin)
		imps = appendULEB128(imps, 0)
	}
	out = appendSection(out, sectionImport, imps)

	funcs := appendULEB128(nil, n)
	for i := range imports {
		funcs = appendULEB128(funcs, uint32(i))
	}
	out = appendSection(out, sectionFunction, funcs)

	if memModule == "" && ownPages > 0 {
		mem := appendULEB128(nil, 1)
		mem = append(mem, limitsMin)
		mem = appendULEB128(mem, ownPages)
		out = appendSection(out, sectionMemory, mem)
	}

	exp := appendULEB128(nil, n)
	for i, imp := range imports {
		exp = appendName(exp, imp.name)
		exp = append(exp, externFunc)
		exp = appendULEB128(exp, n+uint32(i))
	}
	out = appendSection(out, sectionExport, exp)

	code := appendULEB128(nil, n)
	for i, imp := range imports {
		body := []byte{noLocalDecls}
		for p := range imp.params {
			body = append(body, opLocalGet)
			body = appendULEB128(body, p)
		}
		body = append(body, opCall)
		body = appendULEB128(body, uint32(i))
		body = append(body, opEnd)

		code = appendULEB128(code, uint32(len(body)))
		code = append(code, body...)
	}
	return appendSection(out, sectionCode, code)
}

// hostImports describes the hermes exports named, inferring arity from
// the name.
func hostImports(names ...string) []funcImport {
	out := make([]funcImport, 0, len(names))
	for _, name := range names {
		params := uint32(1)
		if strings.HasPrefix(name, prefixRoundTrip) {
			params = 2
		}
		out = append(out, funcImport{module: HostModule, name: name, params: params})
	}
	return out
}

// instantiate loads bin into g's runtime under name.
func instantiate(t *testing.T, g *Guest, name string, bin []byte) api.Module {
	t.Helper()
	mod, err := g.Runtime().InstantiateWithConfig(context.Background(), bin,
		wazero.NewModuleConfig().WithName(name))
	require.NoError(t, err)
	return mod
}

// linkCaller instantiates a module sharing the guest memory that forwards
// to the named host exports.
func linkCaller(t *testing.T, g *Guest, names ...string) api.Module {
	t.Helper()
	return instantiate(t, g, "caller", callerModule(g.cfg.ModuleName, 0, hostImports(names...)...))
}

// call invokes an export of a linked caller module.
func call(t *testing.T, mod api.Module, name string, args ...uint64) int32 {
	t.Helper()
	fn := mod.ExportedFunction(name)
	require.NotNil(t, fn, name)
	res, err := fn.Call(context.Background(), args...)
	require.NoError(t, err)
	return int32(res[0])
}
