package pool

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestByteBufferSetLength(t *testing.T) {
	bb := NewByteBuffer(4)
	bb.SetLength(10)
	require.Equal(t, 10, bb.Len())
	require.GreaterOrEqual(t, bb.Cap(), 10)
}

func TestByteBufferPoolPutGet(t *testing.T) {
	p := NewByteBufferPool(8, 64)
	bb := p.Get()
	bb.SetLength(8)
	copy(bb.Bytes(), []byte("abcdefgh"))
	p.Put(bb)

	bb2 := p.Get()
	require.Equal(t, 0, bb2.Len())
}

func TestByteBufferPoolDropsOversized(t *testing.T) {
	p := NewByteBufferPool(4, 16)
	bb := p.Get()
	bb.SetLength(64)
	p.Put(bb)
	require.LessOrEqual(t, p.Get().Cap(), 16, "a buffer grown past maxThreshold must not come back from the pool")
}

func TestGetIndexAndBlockBuffers(t *testing.T) {
	ib := GetIndexBuffer()
	ib.SetLength(100)
	PutIndexBuffer(ib)

	bb := GetBlockBuffer()
	bb.SetLength(100)
	PutBlockBuffer(bb)
}
