package arrowconv

import (
	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/samber/mo"
)

// Option lifts a codec over pointer-typed optionals: nil appends a null row,
// anything else delegates to the inner codec. The physical column type is
// unchanged; only the validity bitmap carries the distinction.
//
// Nesting options collapses to a single validity bit: with
// Option(Option(Int64)) an outer nil and a present-but-nil inner pointer
// encode identically, and both deserialize to an outer nil. This is a
// deliberate lossy mapping, matching the columnar model's single validity
// layer per column.
//
// The inner codec must map to a column with a validity bitmap. Union
// columns carry none, so Option over a Union codec is not supported.
func Option[T any](inner Codec[T]) Codec[*T] {
	return optionCodec[T]{inner: inner}
}

type optionCodec[T any] struct {
	inner Codec[T]
}

func (c optionCodec[T]) DataType() arrow.DataType { return c.inner.DataType() }

func (c optionCodec[T]) Nullable() bool { return true }

func (c optionCodec[T]) Append(b array.Builder, v *T) error {
	if v == nil {
		b.AppendNull()
		return nil
	}
	return c.inner.Append(b, *v)
}

func (c optionCodec[T]) Value(a arrow.Array, row int) (*T, error) {
	if err := checkRow(a, row); err != nil {
		return nil, err
	}
	if a.IsNull(row) {
		return nil, nil
	}
	v, err := c.inner.Value(a, row)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// OptionValue is Option for value-typed optionals: absent is mo.None, and
// present values delegate to the inner codec. Same collapse semantics as
// Option when nested.
func OptionValue[T any](inner Codec[T]) Codec[mo.Option[T]] {
	return optionValueCodec[T]{inner: inner}
}

type optionValueCodec[T any] struct {
	inner Codec[T]
}

func (c optionValueCodec[T]) DataType() arrow.DataType { return c.inner.DataType() }

func (c optionValueCodec[T]) Nullable() bool { return true }

func (c optionValueCodec[T]) Append(b array.Builder, v mo.Option[T]) error {
	inner, ok := v.Get()
	if !ok {
		b.AppendNull()
		return nil
	}
	return c.inner.Append(b, inner)
}

func (c optionValueCodec[T]) Value(a arrow.Array, row int) (mo.Option[T], error) {
	if err := checkRow(a, row); err != nil {
		return mo.None[T](), err
	}
	if a.IsNull(row) {
		return mo.None[T](), nil
	}
	v, err := c.inner.Value(a, row)
	if err != nil {
		return mo.None[T](), err
	}
	return mo.Some(v), nil
}
