package arrowconv

import (
	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
)

// typedBuilder is the append surface shared by all fixed-width and
// variable-length builders in arrow-go: the generic Builder API plus the
// concrete Append for the native value type.
type typedBuilder[T any] interface {
	array.Builder
	Append(T)
}

// typedArray is the read surface shared by the corresponding arrays.
type typedArray[T any] interface {
	arrow.Array
	Value(int) T
}

// primitiveCodec maps a Go value type directly onto an Arrow column whose
// builder and array expose Append/Value for that type. B and A pin the
// concrete builder and array so the downcasts are checked, not assumed.
type primitiveCodec[T any, B typedBuilder[T], A typedArray[T]] struct {
	dt arrow.DataType
}

func (c primitiveCodec[T, B, A]) DataType() arrow.DataType { return c.dt }

func (c primitiveCodec[T, B, A]) Nullable() bool { return false }

func (c primitiveCodec[T, B, A]) Append(b array.Builder, v T) error {
	tb, ok := b.(B)
	if !ok {
		return errBuilderType(c.dt, b)
	}
	tb.Append(v)
	return nil
}

func (c primitiveCodec[T, B, A]) Value(a arrow.Array, row int) (T, error) {
	var zero T
	ta, ok := a.(A)
	if !ok {
		return zero, errArrayType(c.dt, a)
	}
	if err := checkRow(a, row); err != nil {
		return zero, err
	}
	return ta.Value(row), nil
}

// Canonical codecs for the Go types with exactly one physical mapping.
//
// []byte maps to Binary, never to List(Uint8): a byte slice is an opaque
// blob by default, and the list interpretation must be composed explicitly
// with List(Uint8).
var (
	Bool    Codec[bool]    = primitiveCodec[bool, *array.BooleanBuilder, *array.Boolean]{dt: arrow.FixedWidthTypes.Boolean}
	Int8    Codec[int8]    = primitiveCodec[int8, *array.Int8Builder, *array.Int8]{dt: arrow.PrimitiveTypes.Int8}
	Int16   Codec[int16]   = primitiveCodec[int16, *array.Int16Builder, *array.Int16]{dt: arrow.PrimitiveTypes.Int16}
	Int32   Codec[int32]   = primitiveCodec[int32, *array.Int32Builder, *array.Int32]{dt: arrow.PrimitiveTypes.Int32}
	Int64   Codec[int64]   = primitiveCodec[int64, *array.Int64Builder, *array.Int64]{dt: arrow.PrimitiveTypes.Int64}
	Uint8   Codec[uint8]   = primitiveCodec[uint8, *array.Uint8Builder, *array.Uint8]{dt: arrow.PrimitiveTypes.Uint8}
	Uint16  Codec[uint16]  = primitiveCodec[uint16, *array.Uint16Builder, *array.Uint16]{dt: arrow.PrimitiveTypes.Uint16}
	Uint32  Codec[uint32]  = primitiveCodec[uint32, *array.Uint32Builder, *array.Uint32]{dt: arrow.PrimitiveTypes.Uint32}
	Uint64  Codec[uint64]  = primitiveCodec[uint64, *array.Uint64Builder, *array.Uint64]{dt: arrow.PrimitiveTypes.Uint64}
	Float32 Codec[float32] = primitiveCodec[float32, *array.Float32Builder, *array.Float32]{dt: arrow.PrimitiveTypes.Float32}
	Float64 Codec[float64] = primitiveCodec[float64, *array.Float64Builder, *array.Float64]{dt: arrow.PrimitiveTypes.Float64}
)
