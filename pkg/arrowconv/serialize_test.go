package arrowconv_test

import (
	"sync"
	"testing"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/DataEngineeringLabs/arrow-convert/pkg/arrowconv"
	"github.com/DataEngineeringLabs/arrow-convert/pkg/errors"
)

func TestSerializeWithConfig(t *testing.T) {
	cfg := arrowconv.SessionConfig{
		Allocator: memory.NewGoAllocator(),
		Logger:    zaptest.NewLogger(t),
	}

	arr, err := arrowconv.SerializeWith(cfg, arrowconv.Int64, []int64{1, 2, 3})
	require.NoError(t, err)
	defer arr.Release()

	assert.Equal(t, 3, arr.Len())
}

func TestReader(t *testing.T) {
	arr, err := arrowconv.Serialize(arrowconv.String, []string{"a", "b", "c"})
	require.NoError(t, err)
	defer arr.Release()

	r, err := arrowconv.NewReader(arrowconv.String, arr)
	require.NoError(t, err)
	assert.Equal(t, 3, r.Len())

	var got []string
	for r.HasNext() {
		v, err := r.Next()
		require.NoError(t, err)
		got = append(got, v)
	}
	assert.Equal(t, []string{"a", "b", "c"}, got)

	_, err = r.Next()
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeData))

	r.Reset()
	v, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, "a", v)
}

func TestReaderTypeMismatch(t *testing.T) {
	arr, err := arrowconv.Serialize(arrowconv.Int64, []int64{1})
	require.NoError(t, err)
	defer arr.Release()

	_, err = arrowconv.NewReader(arrowconv.String, arr)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeSchema))
}

// A finished column is immutable; concurrent readers need no coordination.
func TestConcurrentDeserialize(t *testing.T) {
	values := []int64{1, 2, 3, 4, 5}
	arr, err := arrowconv.Serialize(arrowconv.Int64, values)
	require.NoError(t, err)
	defer arr.Release()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			back, err := arrowconv.Deserialize(arrowconv.Int64, arr)
			assert.NoError(t, err)
			assert.Equal(t, values, back)
		}()
	}
	wg.Wait()
}

func TestBuilderPoolReuse(t *testing.T) {
	pool := arrowconv.NewBuilderPool(memory.NewGoAllocator(), zaptest.NewLogger(t))
	cfg := arrowconv.SessionConfig{Pool: pool}

	for i := 0; i < 3; i++ {
		arr, err := arrowconv.SerializeWith(cfg, arrowconv.Int64, []int64{int64(i)})
		require.NoError(t, err)
		back, err := arrowconv.Deserialize(arrowconv.Int64, arr)
		require.NoError(t, err)
		assert.Equal(t, []int64{int64(i)}, back)
		arr.Release()
	}

	hits, misses := pool.Stats()
	assert.GreaterOrEqual(t, misses, int64(1))
	assert.GreaterOrEqual(t, hits+misses, int64(3))
}

// A session that fails mid-batch may leave partial rows in its builder; that
// builder must never reach the pool, or the next session inherits the rows.
func TestBuilderPoolAfterFailedSession(t *testing.T) {
	pool := arrowconv.NewBuilderPool(memory.NewGoAllocator(), zaptest.NewLogger(t))
	cfg := arrowconv.SessionConfig{Pool: pool}
	codec := arrowconv.FixedSizeBinary(4)

	_, err := arrowconv.SerializeWith(cfg, codec, [][]byte{{1, 2, 3, 4}, {9}})
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeValidation))

	arr, err := arrowconv.SerializeWith(cfg, codec, [][]byte{{5, 6, 7, 8}})
	require.NoError(t, err)
	defer arr.Release()
	assert.Equal(t, 1, arr.Len())

	back, err := arrowconv.Deserialize(codec, arr)
	require.NoError(t, err)
	assert.Equal(t, [][]byte{{5, 6, 7, 8}}, back)
}

func TestBuilderPoolDistinctTypes(t *testing.T) {
	pool := arrowconv.NewBuilderPool(nil, nil)

	b1 := pool.Get(arrowconv.Int64.DataType())
	b2 := pool.Get(arrowconv.String.DataType())
	pool.Put(arrowconv.Int64.DataType(), b1)
	pool.Put(arrowconv.String.DataType(), b2)

	b3 := pool.Get(arrowconv.Int64.DataType())
	defer b3.Release()
	b3.Reserve(1)
}
