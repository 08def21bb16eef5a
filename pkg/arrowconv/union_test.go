package arrowconv_test

import (
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DataEngineeringLabs/arrow-convert/pkg/arrowconv"
	"github.com/DataEngineeringLabs/arrow-convert/pkg/errors"
)

// scalar is a two-variant tagged union: exactly one of the pointers is set.
type scalar struct {
	Int *int64
	Str *string
}

func intScalar(v int64) scalar  { return scalar{Int: &v} }
func strScalar(v string) scalar { return scalar{Str: &v} }

// scalarCodec is what a code generator would emit for the scalar union:
// one variant per alternative, discriminants in declaration order.
var scalarCodec = arrowconv.Union[scalar](
	arrowconv.NewVariant("int", arrowconv.Int64,
		func(v scalar) (int64, bool) {
			if v.Int != nil {
				return *v.Int, true
			}
			return 0, false
		},
		intScalar),
	arrowconv.NewVariant("str", arrowconv.String,
		func(v scalar) (string, bool) {
			if v.Str != nil {
				return *v.Str, true
			}
			return "", false
		},
		strScalar),
)

func TestUnionRoundTrip(t *testing.T) {
	values := []scalar{intScalar(1), strScalar("a"), intScalar(2), strScalar("b"), intScalar(3)}

	arr, err := arrowconv.Serialize(scalarCodec, values)
	require.NoError(t, err)
	defer arr.Release()

	require.Equal(t, 5, arr.Len())

	back, err := arrowconv.Deserialize(scalarCodec, arr)
	require.NoError(t, err)
	assert.Equal(t, values, back)
}

// A dense union appends only to the matched variant's child, so child
// lengths track variant counts, not the row count.
func TestUnionChildLengths(t *testing.T) {
	values := []scalar{intScalar(1), strScalar("a"), intScalar(2)}

	arr, err := arrowconv.Serialize(scalarCodec, values)
	require.NoError(t, err)
	defer arr.Release()

	ua := arr.(*array.DenseUnion)
	assert.Equal(t, 2, ua.Field(0).Len())
	assert.Equal(t, 1, ua.Field(1).Len())
}

func TestUnionPhysicalType(t *testing.T) {
	dt, ok := scalarCodec.DataType().(*arrow.DenseUnionType)
	require.True(t, ok)
	require.Equal(t, 2, len(dt.Fields()))
	assert.Equal(t, "int", dt.Fields()[0].Name)
	assert.Equal(t, "str", dt.Fields()[1].Name)
}

// A value matching no variant is a bug in the generated implementation and
// fails the session.
func TestUnionNoVariantMatches(t *testing.T) {
	_, err := arrowconv.Serialize(scalarCodec, []scalar{{}})
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeInternal))
}

func TestUnionInsideStruct(t *testing.T) {
	type cell struct {
		Key   string
		Value scalar
	}
	codec := arrowconv.Struct[cell](
		arrowconv.NewField("key", arrowconv.String,
			func(c *cell) string { return c.Key },
			func(c *cell, v string) { c.Key = v }),
		arrowconv.NewField("value", scalarCodec,
			func(c *cell) scalar { return c.Value },
			func(c *cell, v scalar) { c.Value = v }),
	)

	values := []cell{
		{Key: "a", Value: intScalar(1)},
		{Key: "b", Value: strScalar("x")},
	}
	roundTrip(t, codec, values)
}

func TestListOfUnion(t *testing.T) {
	codec := arrowconv.List(scalarCodec)
	values := [][]scalar{
		{intScalar(1), strScalar("a")},
		{},
		{strScalar("b")},
	}

	arr, err := arrowconv.Serialize(codec, values)
	require.NoError(t, err)
	defer arr.Release()

	back, err := arrowconv.Deserialize(codec, arr)
	require.NoError(t, err)
	require.Len(t, back, 3)
	assert.Equal(t, values[0], back[0])
	assert.Empty(t, back[1])
	assert.Equal(t, values[2], back[2])
}
