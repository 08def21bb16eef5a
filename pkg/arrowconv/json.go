package arrowconv

import (
	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	gojson "github.com/goccy/go-json"

	"github.com/DataEngineeringLabs/arrow-convert/pkg/errors"
)

// JSON is an escape-hatch codec storing values of any Go type as JSON
// documents in a binary column. It is an explicit override, never a default
// mapping: use it for types that have no structural codec yet, at the cost
// of losing the columnar layout for that field.
func JSON[T any]() Codec[T] {
	return jsonCodec[T]{}
}

type jsonCodec[T any] struct{}

func (jsonCodec[T]) DataType() arrow.DataType { return arrow.BinaryTypes.Binary }

func (jsonCodec[T]) Nullable() bool { return false }

func (c jsonCodec[T]) Append(b array.Builder, v T) error {
	bb, ok := b.(*array.BinaryBuilder)
	if !ok {
		return errBuilderType(c.DataType(), b)
	}
	data, err := gojson.Marshal(v)
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeValidation, "marshal value to JSON")
	}
	bb.Append(data)
	return nil
}

func (c jsonCodec[T]) Value(a arrow.Array, row int) (T, error) {
	var out T
	ba, ok := a.(*array.Binary)
	if !ok {
		return out, errArrayType(c.DataType(), a)
	}
	if err := checkRow(a, row); err != nil {
		return out, err
	}
	if err := gojson.Unmarshal(ba.Value(row), &out); err != nil {
		return out, errors.Wrap(err, errors.ErrorTypeData, "unmarshal JSON value").WithDetail("row", row)
	}
	return out, nil
}
