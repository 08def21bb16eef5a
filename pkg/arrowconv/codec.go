// Package arrowconv converts between typed Go values and Arrow columnar arrays.
//
// A Codec[T] fixes the physical Arrow representation of a logical Go type T
// before any value flows: it knows the arrow.DataType to build, how to append
// one T to a mutable builder, and how to read one T back out of a finished
// array at a row index. Codecs are stateless values; combinators (Option,
// List, Struct, Union) compose leaf codecs into arbitrarily nested schemas.
package arrowconv

import (
	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"

	"github.com/DataEngineeringLabs/arrow-convert/pkg/errors"
)

// FieldType describes the physical Arrow mapping of a logical type: the
// column data type and whether rows may be null. Implementations must be
// immutable; a FieldType built once is shared by every serialize and
// deserialize call for its logical type.
type FieldType interface {
	// DataType returns the Arrow column type values are encoded into.
	DataType() arrow.DataType
	// Nullable reports whether the logical type admits null rows. Only the
	// Option combinators return true.
	Nullable() bool
}

// Serializer appends logical values of type T into a mutable Arrow builder.
// The builder passed to Append must have been created from DataType();
// anything else is an encoding invariant violation.
type Serializer[T any] interface {
	FieldType
	// Append encodes one value into the builder. Exactly one row is added
	// at the builder's top level per call, at every nesting depth required
	// to keep sibling columns in lock-step.
	Append(b array.Builder, v T) error
}

// Deserializer reads logical values of type T out of a finished Arrow array.
// It never mutates or retains the array.
type Deserializer[T any] interface {
	FieldType
	// Value decodes the row at the given index. The array must carry
	// DataType(); rows outside [0, Len) and malformed encodings are
	// reported as data corruption errors.
	Value(a arrow.Array, row int) (T, error)
}

// Codec is the full conversion capability for a logical type: field
// descriptor, serializer and deserializer in one value.
type Codec[T any] interface {
	Serializer[T]
	Deserializer[T]
}

// Field builds the arrow.Field for a named member with the given mapping.
// The name only carries meaning inside struct and union composites.
func Field(name string, ft FieldType) arrow.Field {
	return arrow.Field{Name: name, Type: ft.DataType(), Nullable: ft.Nullable()}
}

// checkRow validates a row index against the array length.
func checkRow(a arrow.Array, row int) error {
	if row < 0 || row >= a.Len() {
		return errors.Newf(errors.ErrorTypeData, "row %d out of range [0, %d)", row, a.Len())
	}
	return nil
}

// errBuilderType reports a builder that does not match the codec's physical
// type. This is a programming error in the calling code, not bad data.
func errBuilderType(want arrow.DataType, got array.Builder) error {
	return errors.Newf(errors.ErrorTypeInternal, "builder type %T does not match physical type %s", got, want)
}

// errArrayType reports an array whose data type does not match the codec.
func errArrayType(want arrow.DataType, got arrow.Array) error {
	return errors.Newf(errors.ErrorTypeSchema, "array type %s does not match physical type %s", got.DataType(), want)
}
