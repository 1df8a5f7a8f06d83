package pipeline

import (
	"math"
	"sync/atomic"
)

// atomicFloat32 gives lock-free load/store of a float32 by bit-casting to a
// uint32, the same trick used for the level-meter values published by this
// package's callback.
type atomicFloat32 struct {
	bits atomic.Uint32
}

func (f *atomicFloat32) Load() float32 {
	return math.Float32frombits(f.bits.Load())
}

func (f *atomicFloat32) Store(v float32) {
	f.bits.Store(math.Float32bits(v))
}
