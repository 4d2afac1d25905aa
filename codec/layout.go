package codec

import (
	"fmt"

	"github.com/wippyai/hermes-abi/internal/abi"
	"github.com/wippyai/hermes-abi/internal/layout"
	"go.bytecodealliance.org/wit"
)

// FieldKind is the storage class of one record field.
type FieldKind uint8

const (
	FieldPtr FieldKind = iota + 1
	FieldU8
	FieldU32
	FieldS32
	FieldS64
	FieldF32
	FieldF64
	FieldRecord
)

func (k FieldKind) String() string {
	switch k {
	case FieldPtr:
		return "ptr"
	case FieldU8:
		return "u8"
	case FieldU32:
		return "u32"
	case FieldS32:
		return "s32"
	case FieldS64:
		return "s64"
	case FieldF32:
		return "f32"
	case FieldF64:
		return "f64"
	case FieldRecord:
		return "record"
	default:
		return fmt.Sprintf("FieldKind(%d)", uint8(k))
	}
}

// Field declares one record field.
type Field struct {
	Record *Layout
	Name   string
	Kind   FieldKind
}

func Ptr(name string) Field { return Field{Name: name, Kind: FieldPtr} }
func U8(name string) Field  { return Field{Name: name, Kind: FieldU8} }
func U32(name string) Field { return Field{Name: name, Kind: FieldU32} }
func S32(name string) Field { return Field{Name: name, Kind: FieldS32} }
func S64(name string) Field { return Field{Name: name, Kind: FieldS64} }
func F32(name string) Field { return Field{Name: name, Kind: FieldF32} }
func F64(name string) Field { return Field{Name: name, Kind: FieldF64} }

// Inline embeds another record by value.
func Inline(name string, l *Layout) Field {
	return Field{Name: name, Kind: FieldRecord, Record: l}
}

// FieldInfo is a laid-out field.
type FieldInfo struct {
	Record *Layout
	Name   string
	Kind   FieldKind
	Offset uint32
	Size   uint32
}

// Layout is the flat shape of a record at the boundary.
type Layout struct {
	def     *wit.TypeDef
	offsets map[string]uint32
	Name    string
	Fields  []FieldInfo
	Size    uint32
	Align   uint32
}

// MustLayout lays out a record from its fields. Layouts are declared once
// at package initialization; an invalid declaration panics.
func MustLayout(name string, fields ...Field) *Layout {
	l, err := NewLayout(name, fields...)
	if err != nil {
		panic(err)
	}
	return l
}

// NewLayout lays out a record from its fields.
func NewLayout(name string, fields ...Field) (*Layout, error) {
	witFields := make([]wit.Field, len(fields))
	for i, f := range fields {
		witFields[i] = wit.Field{Name: f.Name, Type: f.witType()}
	}
	typeName := name
	def := &wit.TypeDef{Name: &typeName, Kind: &wit.Record{Fields: witFields}}

	info, err := layout.NewCalculator().Calculate(def)
	if err != nil {
		return nil, err
	}

	l := &Layout{
		def:     def,
		offsets: info.FieldOffs,
		Name:    name,
		Fields:  make([]FieldInfo, len(fields)),
		Size:    info.Size,
		Align:   info.Align,
	}
	for i, f := range fields {
		l.Fields[i] = FieldInfo{
			Record: f.Record,
			Name:   f.Name,
			Kind:   f.Kind,
			Offset: info.FieldOffs[f.Name],
			Size:   f.size(),
		}
	}
	return l, nil
}

func (f Field) witType() wit.Type {
	switch f.Kind {
	case FieldU8:
		return wit.U8{}
	case FieldS32:
		return wit.S32{}
	case FieldS64:
		return wit.S64{}
	case FieldF32:
		return wit.F32{}
	case FieldF64:
		return wit.F64{}
	case FieldRecord:
		if f.Record != nil {
			return f.Record.def
		}
		return wit.String{} // rejected by the calculator
	default:
		// pointers and discriminants
		return wit.U32{}
	}
}

func (f Field) size() uint32 {
	switch f.Kind {
	case FieldU8:
		return 1
	case FieldS64, FieldF64:
		return 8
	case FieldRecord:
		if f.Record != nil {
			return f.Record.Size
		}
		return 0
	default:
		return abi.PointerSize
	}
}

// Offset returns the byte offset of a field. Asking for an undeclared field
// is a programming error and panics.
func (l *Layout) Offset(field string) uint32 {
	off, ok := l.offsets[field]
	if !ok {
		panic(fmt.Sprintf("codec: layout %s has no field %q", l.Name, field))
	}
	return off
}

// Field returns the declaration of a field.
func (l *Layout) Field(name string) (FieldInfo, bool) {
	for _, f := range l.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldInfo{}, false
}

// WIT returns the record as a WIT type definition.
func (l *Layout) WIT() *wit.TypeDef {
	return l.def
}
