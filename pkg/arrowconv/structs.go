package arrowconv

import (
	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"

	"github.com/DataEngineeringLabs/arrow-convert/pkg/errors"
)

// StructField binds one named member of a logical struct type T to its
// codec. Values are produced with NewField; the interface is sealed so the
// struct codec controls how members are walked.
type StructField[T any] interface {
	arrowField() arrow.Field
	appendMember(b array.Builder, v *T) error
	readMember(a arrow.Array, row int, into *T) error
}

// NewField declares a struct member: its column name, the codec for the
// member's type, and accessors connecting the member to the enclosing
// struct value. Code generated for a struct type emits one NewField per
// member in declaration order.
func NewField[T, F any](name string, codec Codec[F], get func(*T) F, set func(*T, F)) StructField[T] {
	return structField[T, F]{name: name, codec: codec, get: get, set: set}
}

type structField[T, F any] struct {
	name  string
	codec Codec[F]
	get   func(*T) F
	set   func(*T, F)
}

func (f structField[T, F]) arrowField() arrow.Field {
	return Field(f.name, f.codec)
}

func (f structField[T, F]) appendMember(b array.Builder, v *T) error {
	return f.codec.Append(b, f.get(v))
}

func (f structField[T, F]) readMember(a arrow.Array, row int, into *T) error {
	fv, err := f.codec.Value(a, row)
	if err != nil {
		return err
	}
	f.set(into, fv)
	return nil
}

// Struct composes member fields into a codec for the whole struct type.
// Serialization appends every member for every row, so sibling child
// columns always stay the same length. Deserialization reads each member
// column at the same row index and assembles one value.
func Struct[T any](fields ...StructField[T]) Codec[T] {
	arrowFields := make([]arrow.Field, len(fields))
	for i, f := range fields {
		arrowFields[i] = f.arrowField()
	}
	return structCodec[T]{fields: fields, dt: arrow.StructOf(arrowFields...)}
}

type structCodec[T any] struct {
	fields []StructField[T]
	dt     *arrow.StructType
}

func (c structCodec[T]) DataType() arrow.DataType { return c.dt }

func (c structCodec[T]) Nullable() bool { return false }

func (c structCodec[T]) Append(b array.Builder, v T) error {
	sb, ok := b.(*array.StructBuilder)
	if !ok {
		return errBuilderType(c.dt, b)
	}
	sb.Append(true)
	for i, f := range c.fields {
		if err := f.appendMember(sb.FieldBuilder(i), &v); err != nil {
			return err
		}
	}
	return nil
}

func (c structCodec[T]) Value(a arrow.Array, row int) (T, error) {
	var out T
	sa, ok := a.(*array.Struct)
	if !ok {
		return out, errArrayType(c.dt, a)
	}
	if err := checkRow(a, row); err != nil {
		return out, err
	}
	if sa.NumField() != len(c.fields) {
		return out, errors.Newf(errors.ErrorTypeData, "struct column has %d children, want %d", sa.NumField(), len(c.fields))
	}
	for i, f := range c.fields {
		if err := f.readMember(sa.Field(i), row, &out); err != nil {
			return out, err
		}
	}
	return out, nil
}
