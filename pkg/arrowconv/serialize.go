package arrowconv

import (
	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"go.uber.org/zap"

	"github.com/DataEngineeringLabs/arrow-convert/pkg/logger"
)

// SessionConfig carries the knobs for one serialization or deserialization
// session. The zero value is usable: it selects the default allocator, no
// builder reuse and the process-wide logger.
type SessionConfig struct {
	// Allocator owns the column buffers. Defaults to memory.DefaultAllocator.
	Allocator memory.Allocator
	// Pool optionally reuses builders across sessions with the same
	// physical type.
	Pool *BuilderPool
	// Logger receives debug-level session summaries. Defaults to the global
	// logger.
	Logger *zap.Logger
}

func (cfg SessionConfig) allocator() memory.Allocator {
	if cfg.Allocator != nil {
		return cfg.Allocator
	}
	return memory.DefaultAllocator
}

func (cfg SessionConfig) log() *zap.Logger {
	if cfg.Logger != nil {
		return cfg.Logger
	}
	return logger.Get()
}

// Serialize encodes a slice of logical values into one finished immutable
// Arrow array. The result has exactly len(values) rows in input order; an
// empty input yields a zero-length array of the serializer's physical type.
// The caller owns the returned array and must Release it.
func Serialize[T any](s Serializer[T], values []T) (arrow.Array, error) {
	return SerializeWith(SessionConfig{}, s, values)
}

// SerializeWith is Serialize with an explicit session configuration.
func SerializeWith[T any](cfg SessionConfig, s Serializer[T], values []T) (arrow.Array, error) {
	var bld array.Builder
	if cfg.Pool != nil {
		bld = cfg.Pool.Get(s.DataType())
	} else {
		bld = array.NewBuilder(cfg.allocator(), s.DataType())
	}

	bld.Reserve(len(values))
	for _, v := range values {
		if err := s.Append(bld, v); err != nil {
			// A failed session can leave partial rows behind, so the
			// builder never goes back to the pool.
			bld.Release()
			return nil, err
		}
	}

	arr := bld.NewArray()
	if cfg.Pool != nil {
		// NewArray drained the builder, which is the state Put requires.
		cfg.Pool.Put(s.DataType(), bld)
	} else {
		bld.Release()
	}

	cfg.log().Debug("serialized column",
		zap.Int("rows", arr.Len()),
		zap.Stringer("type", s.DataType()))
	return arr, nil
}
