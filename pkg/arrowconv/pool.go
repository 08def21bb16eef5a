package arrowconv

import (
	"sync"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"go.uber.org/zap"

	"github.com/DataEngineeringLabs/arrow-convert/pkg/logger"
)

// BuilderPool reuses column builders across serialization sessions to avoid
// re-allocating buffer capacity for every batch. Builders are keyed by the
// physical type's fingerprint, so a pool can serve any number of codecs.
// Safe for concurrent use; each builder is exclusively owned between Get
// and Put.
type BuilderPool struct {
	allocator memory.Allocator
	logger    *zap.Logger

	mu    sync.Mutex
	pools map[string]*sync.Pool

	stats struct {
		hits   int64
		misses int64
	}
}

// NewBuilderPool creates a builder pool backed by the given allocator. A nil
// logger selects the global logger.
func NewBuilderPool(allocator memory.Allocator, log *zap.Logger) *BuilderPool {
	if allocator == nil {
		allocator = memory.NewGoAllocator()
	}
	if log == nil {
		log = logger.Get()
	}
	return &BuilderPool{
		allocator: allocator,
		logger:    log,
		pools:     make(map[string]*sync.Pool),
	}
}

// Get retrieves a builder for the given physical type, creating one on a
// pool miss. The builder is empty and ready to append.
func (p *BuilderPool) Get(dt arrow.DataType) array.Builder {
	pool := p.typePool(dt)
	if item := pool.Get(); item != nil {
		if bld, ok := item.(array.Builder); ok {
			p.mu.Lock()
			p.stats.hits++
			p.mu.Unlock()
			return bld
		}
	}

	p.mu.Lock()
	p.stats.misses++
	p.mu.Unlock()
	p.logger.Debug("builder pool miss", zap.Stringer("type", dt))
	return array.NewBuilder(p.allocator, dt)
}

// Put returns a builder to the pool. The builder must be drained, which is
// the state NewArray leaves it in.
func (p *BuilderPool) Put(dt arrow.DataType, bld array.Builder) {
	if bld == nil {
		return
	}
	p.typePool(dt).Put(bld)
}

// Stats returns the cumulative hit and miss counts.
func (p *BuilderPool) Stats() (hits, misses int64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stats.hits, p.stats.misses
}

func (p *BuilderPool) typePool(dt arrow.DataType) *sync.Pool {
	key := dt.Fingerprint()
	if key == "" {
		// Some nested types have no fingerprint; fall back to the
		// rendered type, which is stable for a given schema node.
		key = dt.String()
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	pool, ok := p.pools[key]
	if !ok {
		pool = &sync.Pool{}
		p.pools[key] = pool
	}
	return pool
}
