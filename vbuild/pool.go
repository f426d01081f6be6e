// SPDX-License-Identifier: Unlicense OR MIT

package vbuild

import (
	"context"

	pool "github.com/jolestar/go-commons-pool"
)

// bufferPool recycles the []float32 scratch slices the vertex builder
// fills and ships into VertexLists across incremental rebuilds,
// avoiding an allocation per rebuilt line on every keystroke.
type bufferPool struct {
	p   *pool.ObjectPool
	ctx context.Context
}

const scratchCap = 256

func newBufferPool() *bufferPool {
	ctx := context.Background()
	factory := pool.NewPooledObjectFactorySimple(
		func(context.Context) (interface{}, error) {
			buf := make([]float32, 0, scratchCap)
			return buf, nil
		})
	return &bufferPool{
		p:   pool.NewObjectPoolWithDefaultConfig(ctx, factory),
		ctx: ctx,
	}
}

// get borrows a zero-length scratch buffer.
func (b *bufferPool) get() []float32 {
	obj, err := b.p.BorrowObject(b.ctx)
	if err != nil {
		return make([]float32, 0, scratchCap)
	}
	buf := obj.([]float32)
	return buf[:0]
}

// put returns buf to the pool once its owning VertexList is deleted.
// Slices grown past four times scratchCap are dropped rather than pooled, so the
// pool doesn't retain an arbitrarily large buffer for one long line.
func (b *bufferPool) put(buf []float32) {
	if buf == nil || cap(buf) > scratchCap*4 {
		return
	}
	_ = b.p.ReturnObject(b.ctx, buf[:0])
}
