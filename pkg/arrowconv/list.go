package arrowconv

import (
	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"

	"github.com/DataEngineeringLabs/arrow-convert/pkg/errors"
)

// List lifts a codec over slices: every row appends one offset pair
// delimiting its run of elements in a single child column shared across all
// rows. A nil slice encodes as an empty run, not a null row; wrap with
// Option for nullable lists.
//
// The element codec is chosen explicitly at the composition site. That is
// what disambiguates []byte: Binary is its canonical opaque-blob mapping and
// List(Uint8) its per-element mapping, and neither is ever picked silently.
func List[T any](elem Codec[T]) Codec[[]T] {
	return listCodec[T]{
		elem: elem,
		dt:   arrow.ListOfField(Field("item", elem)),
	}
}

// LargeList is the 64-bit offset override of List.
func LargeList[T any](elem Codec[T]) Codec[[]T] {
	return largeListCodec[T]{
		elem: elem,
		dt:   arrow.LargeListOfField(Field("item", elem)),
	}
}

type listCodec[T any] struct {
	elem Codec[T]
	dt   *arrow.ListType
}

func (c listCodec[T]) DataType() arrow.DataType { return c.dt }

func (c listCodec[T]) Nullable() bool { return false }

func (c listCodec[T]) Append(b array.Builder, v []T) error {
	lb, ok := b.(*array.ListBuilder)
	if !ok {
		return errBuilderType(c.dt, b)
	}
	lb.Append(true)
	vb := lb.ValueBuilder()
	for _, e := range v {
		if err := c.elem.Append(vb, e); err != nil {
			return err
		}
	}
	return nil
}

func (c listCodec[T]) Value(a arrow.Array, row int) ([]T, error) {
	la, ok := a.(*array.List)
	if !ok {
		return nil, errArrayType(c.dt, a)
	}
	if err := checkRow(a, row); err != nil {
		return nil, err
	}
	start, end := la.ValueOffsets(row)
	return listValues(c.elem, la.ListValues(), start, end, row)
}

type largeListCodec[T any] struct {
	elem Codec[T]
	dt   *arrow.LargeListType
}

func (c largeListCodec[T]) DataType() arrow.DataType { return c.dt }

func (c largeListCodec[T]) Nullable() bool { return false }

func (c largeListCodec[T]) Append(b array.Builder, v []T) error {
	lb, ok := b.(*array.LargeListBuilder)
	if !ok {
		return errBuilderType(c.dt, b)
	}
	lb.Append(true)
	vb := lb.ValueBuilder()
	for _, e := range v {
		if err := c.elem.Append(vb, e); err != nil {
			return err
		}
	}
	return nil
}

func (c largeListCodec[T]) Value(a arrow.Array, row int) ([]T, error) {
	la, ok := a.(*array.LargeList)
	if !ok {
		return nil, errArrayType(c.dt, a)
	}
	if err := checkRow(a, row); err != nil {
		return nil, err
	}
	start, end := la.ValueOffsets(row)
	return listValues(c.elem, la.ListValues(), start, end, row)
}

// listValues reads the child run [start, end) after validating the offsets
// against the child column.
func listValues[T any](elem Codec[T], values arrow.Array, start, end int64, row int) ([]T, error) {
	if start < 0 || end < start || end > int64(values.Len()) {
		return nil, errors.Newf(errors.ErrorTypeData, "list offsets [%d, %d) out of bounds for child of length %d", start, end, values.Len()).
			WithDetail("row", row)
	}
	out := make([]T, 0, end-start)
	for i := start; i < end; i++ {
		e, err := elem.Value(values, int(i))
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

// FixedSizeList is the fixed-width override of List: every row must supply
// exactly size elements.
func FixedSizeList[T any](elem Codec[T], size int) Codec[[]T] {
	return fixedSizeListCodec[T]{
		elem: elem,
		size: size,
		dt:   arrow.FixedSizeListOfField(int32(size), Field("item", elem)),
	}
}

type fixedSizeListCodec[T any] struct {
	elem Codec[T]
	size int
	dt   *arrow.FixedSizeListType
}

func (c fixedSizeListCodec[T]) DataType() arrow.DataType { return c.dt }

func (c fixedSizeListCodec[T]) Nullable() bool { return false }

func (c fixedSizeListCodec[T]) Append(b array.Builder, v []T) error {
	lb, ok := b.(*array.FixedSizeListBuilder)
	if !ok {
		return errBuilderType(c.dt, b)
	}
	if len(v) != c.size {
		return errors.Newf(errors.ErrorTypeValidation, "fixed-size list value has %d elements, want %d", len(v), c.size)
	}
	lb.Append(true)
	vb := lb.ValueBuilder()
	for _, e := range v {
		if err := c.elem.Append(vb, e); err != nil {
			return err
		}
	}
	return nil
}

func (c fixedSizeListCodec[T]) Value(a arrow.Array, row int) ([]T, error) {
	la, ok := a.(*array.FixedSizeList)
	if !ok {
		return nil, errArrayType(c.dt, a)
	}
	if err := checkRow(a, row); err != nil {
		return nil, err
	}
	// Runs are positional, so a sliced array's data offset shifts them.
	start := int64(row+la.Data().Offset()) * int64(c.size)
	return listValues(c.elem, la.ListValues(), start, start+int64(c.size), row)
}
