package arrowconv

import (
	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"

	"github.com/DataEngineeringLabs/arrow-convert/pkg/errors"
)

// UnionVariant binds one variant of a logical tagged union T to its codec.
// Values are produced with NewVariant; the interface is sealed.
type UnionVariant[T any] interface {
	arrowField() arrow.Field
	appendVariant(ub *array.DenseUnionBuilder, idx int, v T) (bool, error)
	readVariant(a arrow.Array, row int) (T, error)
}

// NewVariant declares a union variant: its column name, the codec for the
// variant's payload, a match extracting the payload when the union value
// holds this variant, and a wrap rebuilding the union value from a decoded
// payload. Code generated for a union type emits one NewVariant per variant
// in declaration order; the declaration index is the discriminant.
func NewVariant[T, V any](name string, codec Codec[V], match func(T) (V, bool), wrap func(V) T) UnionVariant[T] {
	return unionVariant[T, V]{name: name, codec: codec, match: match, wrap: wrap}
}

type unionVariant[T, V any] struct {
	name  string
	codec Codec[V]
	match func(T) (V, bool)
	wrap  func(V) T
}

func (u unionVariant[T, V]) arrowField() arrow.Field {
	return Field(u.name, u.codec)
}

func (u unionVariant[T, V]) appendVariant(ub *array.DenseUnionBuilder, idx int, v T) (bool, error) {
	payload, ok := u.match(v)
	if !ok {
		return false, nil
	}
	// Append records the discriminant and the offset of the next slot in
	// this variant's child, so it must precede the payload append.
	ub.Append(arrow.UnionTypeCode(idx))
	return true, u.codec.Append(ub.Child(idx), payload)
}

func (u unionVariant[T, V]) readVariant(a arrow.Array, row int) (T, error) {
	payload, err := u.codec.Value(a, row)
	if err != nil {
		var zero T
		return zero, err
	}
	return u.wrap(payload), nil
}

// Union composes variants into a codec for a tagged union type, encoded as
// a dense Arrow union: each row appends the discriminant plus an offset into
// the matched variant's own child column, and only that child grows. Child
// columns of a union are therefore expected to have unequal lengths.
func Union[T any](variants ...UnionVariant[T]) Codec[T] {
	fields := make([]arrow.Field, len(variants))
	codes := make([]arrow.UnionTypeCode, len(variants))
	for i, v := range variants {
		fields[i] = v.arrowField()
		codes[i] = arrow.UnionTypeCode(i)
	}
	return unionCodec[T]{variants: variants, dt: arrow.DenseUnionOf(fields, codes)}
}

type unionCodec[T any] struct {
	variants []UnionVariant[T]
	dt       *arrow.DenseUnionType
}

func (c unionCodec[T]) DataType() arrow.DataType { return c.dt }

func (c unionCodec[T]) Nullable() bool { return false }

func (c unionCodec[T]) Append(b array.Builder, v T) error {
	ub, ok := b.(*array.DenseUnionBuilder)
	if !ok {
		return errBuilderType(c.dt, b)
	}
	for i, variant := range c.variants {
		matched, err := variant.appendVariant(ub, i, v)
		if err != nil {
			return err
		}
		if matched {
			return nil
		}
	}
	return errors.New(errors.ErrorTypeInternal, "value does not match any union variant")
}

func (c unionCodec[T]) Value(a arrow.Array, row int) (T, error) {
	var zero T
	ua, ok := a.(*array.DenseUnion)
	if !ok {
		return zero, errArrayType(c.dt, a)
	}
	if err := checkRow(a, row); err != nil {
		return zero, err
	}
	childID := ua.ChildID(row)
	if childID < 0 || childID >= len(c.variants) {
		return zero, errors.Newf(errors.ErrorTypeData, "unknown union discriminant %d at row %d", ua.TypeCode(row), row)
	}
	child := ua.Field(childID)
	offset := int(ua.ValueOffset(row))
	if offset < 0 || offset >= child.Len() {
		return zero, errors.Newf(errors.ErrorTypeData, "union offset %d out of bounds for child of length %d", offset, child.Len()).
			WithDetail("row", row)
	}
	return c.variants[childID].readVariant(child, offset)
}
