package arrowconv

import (
	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"

	"github.com/DataEngineeringLabs/arrow-convert/pkg/errors"
)

// SerializeRecord encodes a slice of logical struct values into an Arrow
// record batch, flattening the struct's child columns into the record's
// top-level columns. The serializer must map to a struct column type.
// The caller owns the returned record and must Release it.
func SerializeRecord[T any](s Serializer[T], values []T) (arrow.Record, error) {
	return SerializeRecordWith(SessionConfig{}, s, values)
}

// SerializeRecordWith is SerializeRecord with an explicit session
// configuration.
func SerializeRecordWith[T any](cfg SessionConfig, s Serializer[T], values []T) (arrow.Record, error) {
	st, ok := s.DataType().(*arrow.StructType)
	if !ok {
		return nil, errors.Newf(errors.ErrorTypeSchema, "record serialization requires a struct column type, got %s", s.DataType())
	}

	arr, err := SerializeWith(cfg, s, values)
	if err != nil {
		return nil, err
	}
	defer arr.Release()

	sa := arr.(*array.Struct)
	cols := make([]arrow.Array, sa.NumField())
	for i := range cols {
		cols[i] = sa.Field(i)
	}

	schema := arrow.NewSchema(st.Fields(), nil)
	// NewRecord retains the columns, so releasing the struct array above
	// leaves the record as their sole owner.
	return array.NewRecord(schema, cols, int64(sa.Len())), nil
}

// DeserializeRecord reconstructs logical struct values from a record batch
// whose columns match the deserializer's struct fields by position.
func DeserializeRecord[T any](d Deserializer[T], rec arrow.Record) ([]T, error) {
	return DeserializeRecordWith(SessionConfig{}, d, rec)
}

// DeserializeRecordWith is DeserializeRecord with an explicit session
// configuration.
func DeserializeRecordWith[T any](cfg SessionConfig, d Deserializer[T], rec arrow.Record) ([]T, error) {
	st, ok := d.DataType().(*arrow.StructType)
	if !ok {
		return nil, errors.Newf(errors.ErrorTypeSchema, "record deserialization requires a struct column type, got %s", d.DataType())
	}
	if int(rec.NumCols()) != st.NumFields() {
		return nil, errors.Newf(errors.ErrorTypeSchema, "record has %d columns, struct type has %d fields", rec.NumCols(), st.NumFields())
	}

	names := make([]string, st.NumFields())
	for i := 0; i < st.NumFields(); i++ {
		f := st.Field(i)
		if !arrow.TypeEqual(f.Type, rec.Column(i).DataType()) {
			return nil, errors.Newf(errors.ErrorTypeSchema, "record column %d has type %s, want %s", i, rec.Column(i).DataType(), f.Type)
		}
		names[i] = f.Name
	}

	sa, err := array.NewStructArray(rec.Columns(), names)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeData, "assemble struct column from record")
	}
	defer sa.Release()

	out := make([]T, 0, rec.NumRows())
	for i := 0; i < int(rec.NumRows()); i++ {
		v, err := d.Value(sa, i)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
