package arrowconv

import (
	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/decimal128"
)

// Decimal128 returns a codec encoding decimal128.Num values into a decimal
// column with the given precision and scale. Precision and scale are part of
// the physical type, so two fields of the same struct may carry different
// parameterizations without interfering.
func Decimal128(precision, scale int32) Codec[decimal128.Num] {
	return decimal128Codec{dt: &arrow.Decimal128Type{Precision: precision, Scale: scale}}
}

type decimal128Codec struct {
	dt *arrow.Decimal128Type
}

func (c decimal128Codec) DataType() arrow.DataType { return c.dt }

func (c decimal128Codec) Nullable() bool { return false }

func (c decimal128Codec) Append(b array.Builder, v decimal128.Num) error {
	db, ok := b.(*array.Decimal128Builder)
	if !ok {
		return errBuilderType(c.dt, b)
	}
	db.Append(v)
	return nil
}

func (c decimal128Codec) Value(a arrow.Array, row int) (decimal128.Num, error) {
	da, ok := a.(*array.Decimal128)
	if !ok {
		return decimal128.Num{}, errArrayType(c.dt, a)
	}
	if err := checkRow(a, row); err != nil {
		return decimal128.Num{}, err
	}
	return da.Value(row), nil
}
