package layout

import (
	"fmt"

	"github.com/wippyai/hermes-abi/errors"
	"github.com/wippyai/hermes-abi/internal/abi"
	"go.bytecodealliance.org/wit"
)

// Info is the memory layout of one type.
type Info struct {
	FieldOffs map[string]uint32
	Size      uint32
	Align     uint32
}

type Calculator struct {
	cache map[*wit.TypeDef]Info
}

func NewCalculator() *Calculator {
	return &Calculator{
		cache: make(map[*wit.TypeDef]Info),
	}
}

// Calculate returns the C layout of t on a 32-bit target. Only primitive
// scalars and records of them are representable at the boundary; pointers
// are declared as u32.
func (c *Calculator) Calculate(t wit.Type) (Info, error) {
	switch typ := t.(type) {
	case wit.U8, wit.S8, wit.Bool:
		return Info{Size: 1, Align: 1}, nil
	case wit.U16, wit.S16:
		return Info{Size: 2, Align: 2}, nil
	case wit.U32, wit.S32, wit.F32, wit.Char:
		return Info{Size: 4, Align: 4}, nil
	case wit.U64, wit.S64, wit.F64:
		return Info{Size: 8, Align: 8}, nil
	case *wit.TypeDef:
		return c.calculateTypeDef(typ)
	default:
		return Info{}, errors.New(errors.PhaseLayout, errors.KindInvalidInput).
			Detail("type %T has no flat boundary layout", t).
			Build()
	}
}

func (c *Calculator) calculateTypeDef(t *wit.TypeDef) (Info, error) {
	if cached, ok := c.cache[t]; ok {
		return cached, nil
	}

	var (
		info Info
		err  error
	)
	switch kind := t.Kind.(type) {
	case *wit.Record:
		info, err = c.calculateRecord(kind)
	case wit.Type:
		info, err = c.Calculate(kind)
	default:
		err = errors.New(errors.PhaseLayout, errors.KindInvalidInput).
			Detail("type definition kind %T has no flat boundary layout", t.Kind).
			Build()
	}
	if err != nil {
		if t.Name != nil {
			return Info{}, errors.AtPath(err, errors.PhaseLayout, *t.Name)
		}
		return Info{}, err
	}

	c.cache[t] = info
	return info, nil
}

func (c *Calculator) calculateRecord(r *wit.Record) (Info, error) {
	if len(r.Fields) == 0 {
		return Info{Size: 0, Align: 1}, nil
	}

	fieldOffs := make(map[string]uint32, len(r.Fields))
	maxAlign := uint32(1)
	offset := uint32(0)

	for _, field := range r.Fields {
		if _, dup := fieldOffs[field.Name]; dup {
			return Info{}, errors.New(errors.PhaseLayout, errors.KindInvalidInput).
				Path(field.Name).
				Detail("duplicate field name").
				Build()
		}
		fieldLayout, err := c.Calculate(field.Type)
		if err != nil {
			return Info{}, errors.AtPath(err, errors.PhaseLayout, field.Name)
		}

		offset = abi.AlignTo(offset, fieldLayout.Align)
		fieldOffs[field.Name] = offset

		if fieldLayout.Align > maxAlign {
			maxAlign = fieldLayout.Align
		}

		next, ok := abi.SafeAddU32(offset, fieldLayout.Size)
		if !ok {
			return Info{}, errors.Overflow(errors.PhaseLayout, []string{field.Name}, fmt.Sprint(offset), "u32")
		}
		offset = next
	}

	totalSize := abi.AlignTo(offset, maxAlign)

	return Info{
		Size:      totalSize,
		Align:     maxAlign,
		FieldOffs: fieldOffs,
	}, nil
}
