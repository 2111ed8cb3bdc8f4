// Package pool provides a pooled, amortized-growth byte buffer (§5:
// "Encoders allocate output proportional to output size and must be
// reentrant"). In this module the machine encoder's string table builder
// holds a ByteBuffer; the LLM and Human encoders write to a strings.Builder
// and do not use this package.
package pool

import (
	"io"
	"sync"
)

// DefaultBufferSize is the starting capacity handed out by the default pool.
// MaxBufferThreshold caps how large a returned buffer may be before it is
// discarded instead of pooled, to avoid one oversized document bloating the
// pool for every later, smaller call.
const (
	DefaultBufferSize  = 1024 * 16  // 16KiB
	MaxBufferThreshold = 1024 * 128 // 128KiB
)

// ByteBuffer is a growable byte slice with an amortized growth strategy.
type ByteBuffer struct {
	B []byte
}

// NewByteBuffer creates a new ByteBuffer with the given starting capacity.
func NewByteBuffer(defaultSize int) *ByteBuffer {
	return &ByteBuffer{
		B: make([]byte, 0, defaultSize),
	}
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Reset empties the buffer but keeps the allocated memory for reuse.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Len returns the length of the buffer.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// Cap returns the capacity of the buffer.
func (bb *ByteBuffer) Cap() int {
	return cap(bb.B)
}

// MustWrite appends data to the buffer, growing it if necessary.
func (bb *ByteBuffer) MustWrite(data []byte) {
	bb.B = append(bb.B, data...)
}

// Grow ensures the buffer can hold requiredBytes more bytes without a further
// reallocation. Small buffers grow by DefaultBufferSize; larger ones grow by
// 25% of their current capacity, trading memory for fewer reallocations.
func (bb *ByteBuffer) Grow(requiredBytes int) {
	available := cap(bb.B) - len(bb.B)
	if available >= requiredBytes {
		return
	}

	growBy := DefaultBufferSize
	if cap(bb.B) > 4*DefaultBufferSize {
		growBy = cap(bb.B) / 4
	}

	if growBy < requiredBytes {
		growBy = requiredBytes
	}

	newBuf := make([]byte, len(bb.B), len(bb.B)+growBy)
	copy(newBuf, bb.B)
	bb.B = newBuf
}

// Write implements io.Writer.
func (bb *ByteBuffer) Write(data []byte) (int, error) {
	bb.B = append(bb.B, data...)
	return len(data), nil
}

// WriteTo implements io.WriterTo.
func (bb *ByteBuffer) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(bb.B)
	return int64(n), err
}

// ByteBufferPool pools ByteBuffers to minimize allocations across repeated
// encode calls. Buffers larger than maxThreshold are discarded rather than
// retained, so one unusually large document doesn't inflate the pool forever.
type ByteBufferPool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewByteBufferPool creates a pool of buffers with the given starting
// capacity and maximum retained size.
func NewByteBufferPool(defaultSize int, maxThreshold int) *ByteBufferPool {
	return &ByteBufferPool{
		pool: sync.Pool{
			New: func() any {
				return NewByteBuffer(defaultSize)
			},
		},
		maxThreshold: maxThreshold,
	}
}

// Get retrieves a ByteBuffer from the pool.
func (bbp *ByteBufferPool) Get() *ByteBuffer {
	bb, _ := bbp.pool.Get().(*ByteBuffer)
	return bb
}

// Put returns a ByteBuffer to the pool for reuse.
func (bbp *ByteBufferPool) Put(bb *ByteBuffer) {
	if bb == nil {
		return
	}

	if bbp.maxThreshold > 0 && cap(bb.B) > bbp.maxThreshold {
		return
	}

	bb.Reset()
	bbp.pool.Put(bb)
}

var defaultPool = NewByteBufferPool(DefaultBufferSize, MaxBufferThreshold)

// Get retrieves a ByteBuffer from the default pool.
func Get() *ByteBuffer {
	return defaultPool.Get()
}

// Put returns a ByteBuffer to the default pool.
func Put(bb *ByteBuffer) {
	defaultPool.Put(bb)
}
