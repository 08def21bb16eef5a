package arrowconv

import (
	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"

	"github.com/DataEngineeringLabs/arrow-convert/pkg/errors"
)

// Variable-length codecs. String and Binary are the canonical mappings for
// string and []byte; the Large variants are use-site overrides that encode
// the same logical values against 64-bit offset columns, leaving the
// canonical mapping untouched everywhere else.
var (
	String      Codec[string] = primitiveCodec[string, *array.StringBuilder, *array.String]{dt: arrow.BinaryTypes.String}
	LargeString Codec[string] = primitiveCodec[string, *array.LargeStringBuilder, *array.LargeString]{dt: arrow.BinaryTypes.LargeString}
	Binary      Codec[[]byte] = binaryCodec[*array.Binary]{inner: primitiveCodec[[]byte, *array.BinaryBuilder, *array.Binary]{dt: arrow.BinaryTypes.Binary}}
	LargeBinary Codec[[]byte] = binaryCodec[*array.LargeBinary]{inner: primitiveCodec[[]byte, *array.BinaryBuilder, *array.LargeBinary]{dt: arrow.BinaryTypes.LargeBinary}}
)

// binaryCodec copies byte slices out of the column on read so callers never
// hold views into the array's buffers.
type binaryCodec[A typedArray[[]byte]] struct {
	inner primitiveCodec[[]byte, *array.BinaryBuilder, A]
}

func (c binaryCodec[A]) DataType() arrow.DataType { return c.inner.DataType() }

func (c binaryCodec[A]) Nullable() bool { return false }

func (c binaryCodec[A]) Append(b array.Builder, v []byte) error {
	return c.inner.Append(b, v)
}

func (c binaryCodec[A]) Value(a arrow.Array, row int) ([]byte, error) {
	v, err := c.inner.Value(a, row)
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

// FixedSizeBinary returns an override codec encoding []byte values of
// exactly width bytes into a fixed-size binary column.
func FixedSizeBinary(width int) Codec[[]byte] {
	return fixedSizeBinaryCodec{dt: &arrow.FixedSizeBinaryType{ByteWidth: width}, width: width}
}

type fixedSizeBinaryCodec struct {
	dt    *arrow.FixedSizeBinaryType
	width int
}

func (c fixedSizeBinaryCodec) DataType() arrow.DataType { return c.dt }

func (c fixedSizeBinaryCodec) Nullable() bool { return false }

func (c fixedSizeBinaryCodec) Append(b array.Builder, v []byte) error {
	fb, ok := b.(*array.FixedSizeBinaryBuilder)
	if !ok {
		return errBuilderType(c.dt, b)
	}
	if len(v) != c.width {
		return errors.Newf(errors.ErrorTypeValidation, "fixed-size binary value has %d bytes, want %d", len(v), c.width)
	}
	fb.Append(v)
	return nil
}

func (c fixedSizeBinaryCodec) Value(a arrow.Array, row int) ([]byte, error) {
	fa, ok := a.(*array.FixedSizeBinary)
	if !ok {
		return nil, errArrayType(c.dt, a)
	}
	if err := checkRow(a, row); err != nil {
		return nil, err
	}
	v := fa.Value(row)
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}
