package arrowconv_test

import (
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DataEngineeringLabs/arrow-convert/pkg/arrowconv"
)

func ptr[T any](v T) *T { return &v }

func TestOptionRoundTrip(t *testing.T) {
	codec := arrowconv.Option(arrowconv.Int64)
	values := []*int64{ptr(int64(1)), nil, ptr(int64(3))}

	arr, err := arrowconv.Serialize(codec, values)
	require.NoError(t, err)
	defer arr.Release()

	require.Equal(t, 3, arr.Len())
	assert.False(t, arr.IsNull(0))
	assert.True(t, arr.IsNull(1))
	assert.False(t, arr.IsNull(2))

	back, err := arrowconv.Deserialize(codec, arr)
	require.NoError(t, err)
	assert.Equal(t, values, back)
}

// The wrapper changes nullability, not the physical column type.
func TestOptionKeepsPhysicalType(t *testing.T) {
	codec := arrowconv.Option(arrowconv.String)
	assert.True(t, arrow.TypeEqual(arrowconv.String.DataType(), codec.DataType()))
	assert.True(t, codec.Nullable())
	assert.False(t, arrowconv.String.Nullable())
}

// Nested optionals share one validity bit: a present-but-nil inner value is
// indistinguishable from an absent outer value after encoding, so both come
// back as the absent case.
func TestNestedOptionCollapse(t *testing.T) {
	codec := arrowconv.Option(arrowconv.Option(arrowconv.Int64))
	someSome := ptr(ptr(int64(7)))
	someNone := ptr((*int64)(nil))

	values := []**int64{someSome, nil, someNone}

	arr, err := arrowconv.Serialize(codec, values)
	require.NoError(t, err)
	defer arr.Release()

	back, err := arrowconv.Deserialize(codec, arr)
	require.NoError(t, err)
	require.Len(t, back, 3)

	require.NotNil(t, back[0])
	require.NotNil(t, *back[0])
	assert.Equal(t, int64(7), **back[0])
	assert.Nil(t, back[1])
	assert.Nil(t, back[2], "present-but-nil collapses to absent")
}

func TestOptionValueRoundTrip(t *testing.T) {
	codec := arrowconv.OptionValue(arrowconv.String)
	values := []mo.Option[string]{mo.Some("a"), mo.None[string](), mo.Some("")}
	roundTrip(t, codec, values)
}

func TestOptionValueNestedCollapse(t *testing.T) {
	codec := arrowconv.OptionValue(arrowconv.OptionValue(arrowconv.Int64))
	values := []mo.Option[mo.Option[int64]]{
		mo.Some(mo.Some(int64(1))),
		mo.None[mo.Option[int64]](),
		mo.Some(mo.None[int64]()),
	}

	arr, err := arrowconv.Serialize(codec, values)
	require.NoError(t, err)
	defer arr.Release()

	back, err := arrowconv.Deserialize(codec, arr)
	require.NoError(t, err)
	require.Len(t, back, 3)

	inner, present := back[0].Get()
	require.True(t, present)
	v, present := inner.Get()
	require.True(t, present)
	assert.Equal(t, int64(1), v)

	assert.True(t, back[1].IsAbsent())
	assert.True(t, back[2].IsAbsent(), "Some(None) collapses to None")
}

// Whatever placeholder is written under a null row is never interpreted.
func TestNullPropagation(t *testing.T) {
	codec := arrowconv.Option(arrowconv.String)
	values := []*string{nil, ptr("x"), nil}

	arr, err := arrowconv.Serialize(codec, values)
	require.NoError(t, err)
	defer arr.Release()

	back, err := arrowconv.Deserialize(codec, arr)
	require.NoError(t, err)
	assert.Equal(t, values, back)
}
