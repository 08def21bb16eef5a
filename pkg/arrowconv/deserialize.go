package arrowconv

import (
	"github.com/apache/arrow-go/v18/arrow"
	"go.uber.org/zap"

	"github.com/DataEngineeringLabs/arrow-convert/pkg/errors"
)

// Deserialize reconstructs the slice of logical values held by a finished
// Arrow array. The array's data type must match the deserializer's physical
// mapping exactly; a mismatch is reported before any row is read. The array
// is only read, never retained or mutated, so concurrent Deserialize calls
// over the same array are safe.
func Deserialize[T any](d Deserializer[T], arr arrow.Array) ([]T, error) {
	return DeserializeWith(SessionConfig{}, d, arr)
}

// DeserializeWith is Deserialize with an explicit session configuration.
func DeserializeWith[T any](cfg SessionConfig, d Deserializer[T], arr arrow.Array) ([]T, error) {
	if err := checkDataType(d, arr); err != nil {
		return nil, err
	}
	out := make([]T, 0, arr.Len())
	for i := 0; i < arr.Len(); i++ {
		v, err := d.Value(arr, i)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	cfg.log().Debug("deserialized column",
		zap.Int("rows", len(out)),
		zap.Stringer("type", d.DataType()))
	return out, nil
}

// Reader iterates lazily over the rows of a finished array, decoding one
// logical value at a time. A Reader is single-goroutine; create one Reader
// per goroutine to share an array.
type Reader[T any] struct {
	codec Deserializer[T]
	arr   arrow.Array
	row   int
}

// NewReader validates the array against the deserializer's physical type
// and positions the reader before the first row.
func NewReader[T any](d Deserializer[T], arr arrow.Array) (*Reader[T], error) {
	if err := checkDataType(d, arr); err != nil {
		return nil, err
	}
	return &Reader[T]{codec: d, arr: arr}, nil
}

// HasNext reports whether rows remain.
func (r *Reader[T]) HasNext() bool {
	return r.row < r.arr.Len()
}

// Next decodes and returns the next row.
func (r *Reader[T]) Next() (T, error) {
	if !r.HasNext() {
		var zero T
		return zero, errors.New(errors.ErrorTypeData, "read past end of column")
	}
	v, err := r.codec.Value(r.arr, r.row)
	if err != nil {
		var zero T
		return zero, err
	}
	r.row++
	return v, nil
}

// Len returns the total row count of the underlying array.
func (r *Reader[T]) Len() int {
	return r.arr.Len()
}

// Reset repositions the reader before the first row.
func (r *Reader[T]) Reset() {
	r.row = 0
}

func checkDataType(ft FieldType, arr arrow.Array) error {
	if !arrow.TypeEqual(ft.DataType(), arr.DataType()) {
		return errors.Newf(errors.ErrorTypeSchema, "array type %s does not match physical type %s", arr.DataType(), ft.DataType())
	}
	return nil
}
