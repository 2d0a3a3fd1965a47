package debris

import (
	"sync"

	"github.com/go-gl/mathgl/mgl64"
)

// PointPool recycles meteorite point buffers between spawns.
type PointPool struct {
	pool sync.Pool
	size int
}

func NewPointPool(capacity int) *PointPool {
	return &PointPool{
		size: capacity,
		pool: sync.Pool{
			New: func() interface{} {
				return make([]mgl64.Vec3, 0, capacity)
			},
		},
	}
}

// Get returns a zeroed buffer of length n.
func (p *PointPool) Get(n int) []mgl64.Vec3 {
	buf := p.pool.Get().([]mgl64.Vec3)
	if cap(buf) < n {
		buf = make([]mgl64.Vec3, 0, n)
	}
	return buf[:n]
}

// Put hands a buffer back. Buffers of a foreign capacity are dropped.
func (p *PointPool) Put(buf []mgl64.Vec3) {
	if cap(buf) != p.size {
		return
	}
	buf = buf[:cap(buf)]
	for i := range buf {
		buf[i] = mgl64.Vec3{}
	}
	p.pool.Put(buf[:0])
}
