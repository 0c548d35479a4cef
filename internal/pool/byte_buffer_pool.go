// Package pool provides sync.Pool-backed byte buffer reuse for the ranged
// reads the parser performs against an archive file: index tables and block
// payloads are read into pooled buffers instead of allocating fresh slices
// per lookup.
package pool

import (
	"io"
	"sync"
)

// Default and max-retained sizes for the two buffer pools this package
// exposes. Index-table reads (keyword/record block index) are typically
// small; block payload reads (decompression scratch space) are larger.
const (
	IndexBufferDefaultSize = 1024 * 16   // 16KiB
	IndexBufferMaxRetained = 1024 * 128  // 128KiB
	BlockBufferDefaultSize = 1024 * 64   // 64KiB
	BlockBufferMaxRetained = 1024 * 1024 // 1MiB
)

// ByteBuffer is a growable, reusable byte slice wrapper.
type ByteBuffer struct {
	// B is the underlying byte slice.
	B []byte
}

// NewByteBuffer creates a new ByteBuffer with the specified default size.
func NewByteBuffer(defaultSize int) *ByteBuffer {
	return &ByteBuffer{
		B: make([]byte, 0, defaultSize),
	}
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Reset resets the buffer to be empty, but retains the allocated memory for reuse.
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

// Grow grows the buffer to ensure it can hold requiredBytes more bytes without reallocating.
// If the buffer has sufficient capacity, Grow does nothing.
func (bb *ByteBuffer) Grow(requiredBytes int) {
	available := cap(bb.B) - len(bb.B)
	if available >= requiredBytes {
		return
	}

	growBy := BlockBufferDefaultSize
	if cap(bb.B) > 4*BlockBufferDefaultSize {
		growBy = cap(bb.B) / 4
	}
	if growBy < requiredBytes {
		growBy = requiredBytes
	}

	newBuf := make([]byte, len(bb.B), len(bb.B)+growBy)
	copy(newBuf, bb.B)
	bb.B = newBuf
}

// SetLength sets the length of the buffer to n, growing first if needed.
func (bb *ByteBuffer) SetLength(n int) {
	if n > cap(bb.B) {
		bb.Grow(n - len(bb.B))
	}
	bb.B = bb.B[:n]
}

// Write appends the contents of data to the buffer, growing it as needed.
func (bb *ByteBuffer) Write(data []byte) (int, error) {
	bb.B = append(bb.B, data...)
	return len(data), nil
}

// WriteTo writes the contents of the buffer to w.
func (bb *ByteBuffer) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(bb.B)
	return int64(n), err
}

// ByteBufferPool is a sync.Pool of ByteBuffers with an optional size cap on
// retained buffers, so one oversized read doesn't permanently bloat the pool.
type ByteBufferPool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewByteBufferPool creates a new ByteBufferPool with buffers of the specified default size.
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

var (
	indexPool = NewByteBufferPool(IndexBufferDefaultSize, IndexBufferMaxRetained)
	blockPool = NewByteBufferPool(BlockBufferDefaultSize, BlockBufferMaxRetained)
)

// GetIndexBuffer retrieves a ByteBuffer from the default index-table pool.
func GetIndexBuffer() *ByteBuffer { return indexPool.Get() }

// PutIndexBuffer returns a ByteBuffer to the default index-table pool.
func PutIndexBuffer(bb *ByteBuffer) { indexPool.Put(bb) }

// GetBlockBuffer retrieves a ByteBuffer from the default block-payload pool.
func GetBlockBuffer() *ByteBuffer { return blockPool.Get() }

// PutBlockBuffer returns a ByteBuffer to the default block-payload pool.
func PutBlockBuffer(bb *ByteBuffer) { blockPool.Put(bb) }
