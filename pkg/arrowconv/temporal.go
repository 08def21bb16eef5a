package arrowconv

import (
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"

	"github.com/DataEngineeringLabs/arrow-convert/pkg/errors"
)

// Temporal codecs. Timestamp is the canonical mapping for time.Time; Date is
// an override truncating to whole days in a Date32 column.
var (
	Timestamp Codec[time.Time] = timestampCodec{}
	Date      Codec[time.Time] = dateCodec{}
)

type timestampCodec struct{}

func (timestampCodec) DataType() arrow.DataType { return arrow.FixedWidthTypes.Timestamp_ns }

func (timestampCodec) Nullable() bool { return false }

func (c timestampCodec) Append(b array.Builder, v time.Time) error {
	tb, ok := b.(*array.TimestampBuilder)
	if !ok {
		return errBuilderType(c.DataType(), b)
	}
	ts, err := arrow.TimestampFromTime(v, arrow.Nanosecond)
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeValidation, "time out of timestamp range")
	}
	tb.Append(ts)
	return nil
}

func (c timestampCodec) Value(a arrow.Array, row int) (time.Time, error) {
	ta, ok := a.(*array.Timestamp)
	if !ok {
		return time.Time{}, errArrayType(c.DataType(), a)
	}
	if err := checkRow(a, row); err != nil {
		return time.Time{}, err
	}
	return ta.Value(row).ToTime(arrow.Nanosecond).UTC(), nil
}

type dateCodec struct{}

func (dateCodec) DataType() arrow.DataType { return arrow.FixedWidthTypes.Date32 }

func (dateCodec) Nullable() bool { return false }

func (c dateCodec) Append(b array.Builder, v time.Time) error {
	db, ok := b.(*array.Date32Builder)
	if !ok {
		return errBuilderType(c.DataType(), b)
	}
	db.Append(arrow.Date32FromTime(v))
	return nil
}

func (c dateCodec) Value(a arrow.Array, row int) (time.Time, error) {
	da, ok := a.(*array.Date32)
	if !ok {
		return time.Time{}, errArrayType(c.DataType(), a)
	}
	if err := checkRow(a, row); err != nil {
		return time.Time{}, err
	}
	return da.Value(row).ToTime(), nil
}
