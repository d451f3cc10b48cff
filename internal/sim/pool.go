package sim

import (
	"sync"

	"gonum.org/v1/gonum/spatial/r3"
)

// FramePool recycles position buffers of a fixed particle count.
type FramePool struct {
	pool sync.Pool
	size int
}

func NewFramePool(size int) *FramePool {
	return &FramePool{
		size: size,
		pool: sync.Pool{
			New: func() interface{} {
				return make([]r3.Vec, size)
			},
		},
	}
}

func (p *FramePool) Size() int { return p.size }

func (p *FramePool) Get() Frame {
	return Frame{Positions: p.pool.Get().([]r3.Vec)}
}

func (p *FramePool) Put(f Frame) {
	if len(f.Positions) == p.size {
		for i := range f.Positions {
			f.Positions[i] = r3.Vec{}
		}
		p.pool.Put(f.Positions)
	}
}
