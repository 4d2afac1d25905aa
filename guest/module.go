package guest

const (
	sectionMemory = 0x05
	sectionExport = 0x07

	limitsMinMax = 0x01
	exportMemory = 0x02
)

var wasmHeader = []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}

// memoryModule builds a core module that defines one memory of
// minPages..maxPages and exports it as name.
func memoryModule(name string, minPages, maxPages uint32) []byte {
	out := append([]byte(nil), wasmHeader...)

	mem := appendULEB128(nil, 1)
	mem = append(mem, limitsMinMax)
	mem = appendULEB128(mem, minPages)
	mem = appendULEB128(mem, maxPages)
	out = appendSection(out, sectionMemory, mem)

	exp := appendULEB128(nil, 1)
	exp = appendULEB128(exp, uint32(len(name)))
	exp = append(exp, name...)
	exp = append(exp, exportMemory)
	exp = appendULEB128(exp, 0)
	return appendSection(out, sectionExport, exp)
}

func appendSection(out []byte, id byte, body []byte) []byte {
	out = append(out, id)
	out = appendULEB128(out, uint32(len(body)))
	return append(out, body...)
}
