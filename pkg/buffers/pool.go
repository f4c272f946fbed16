package buffers

import (
	"sync"
)

const (
	// FrameBufferSize covers the largest logical frame: a full size byte
	// worth of payload plus the deepest header layout.
	FrameBufferSize = 264

	// WireBufferSize covers the worst-case wire encoding of such a frame,
	// where every byte after the sync marker needs an escape pair.
	WireBufferSize = 1 + 2*(FrameBufferSize-1)
)

// BufferPool maintains a pool of byte slices to reduce GC pressure on the
// frame read/write hot paths.
type BufferPool struct {
	pool sync.Pool
	size int
}

// NewBufferPool creates a new buffer pool with the specified buffer size.
func NewBufferPool(size int) *BufferPool {
	return &BufferPool{
		pool: sync.Pool{
			New: func() interface{} {
				buf := make([]byte, size)
				return &buf
			},
		},
		size: size,
	}
}

// Get retrieves a buffer from the pool.
func (p *BufferPool) Get() []byte {
	buffer := *(p.pool.Get().(*[]byte))
	if cap(buffer) < p.size {
		// Unlikely but possible if the buffer was resized
		buffer = make([]byte, p.size)
	} else {
		buffer = buffer[:p.size]
	}
	return buffer
}

// Put returns a buffer to the pool.
func (p *BufferPool) Put(buffer []byte) {
	if buffer == nil || cap(buffer) < p.size {
		return // Don't keep undersized buffers
	}
	buffer = buffer[:p.size]
	p.pool.Put(&buffer)
}

// Global pool instances for the two sizes the codec deals in.
var (
	// FrameBufferPool for logical frame buffers.
	FrameBufferPool = NewBufferPool(FrameBufferSize)

	// WireBufferPool for escaped wire-encoding scratch space.
	WireBufferPool = NewBufferPool(WireBufferSize)
)
