package pool

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("write failed")
}

func TestByteBuffer_Write(t *testing.T) {
	bb := NewByteBuffer(InflateBufferDefaultSize)

	n, err := bb.Write([]byte("imap"))
	require.NoError(t, err)
	require.Equal(t, 4, n)

	bb.MustWrite([]byte("mmap"))
	require.Equal(t, []byte("imapmmap"), bb.Bytes())
	require.Equal(t, 8, bb.Len())

	bb.Reset()
	assert.Equal(t, 0, bb.Len())
	assert.GreaterOrEqual(t, bb.Cap(), InflateBufferDefaultSize, "reset keeps capacity")
}

func TestByteBuffer_WriteTo(t *testing.T) {
	bb := NewByteBuffer(16)
	bb.MustWrite([]byte("KEY*"))

	var out bytes.Buffer
	n, err := bb.WriteTo(&out)
	require.NoError(t, err)
	require.Equal(t, int64(4), n)
	require.Equal(t, "KEY*", out.String())

	_, err = bb.WriteTo(failingWriter{})
	require.Error(t, err)
}

func TestByteBuffer_Grow(t *testing.T) {
	t.Run("Sufficient capacity", func(t *testing.T) {
		bb := NewByteBuffer(InflateBufferDefaultSize)
		bb.Grow(100)
		assert.Equal(t, InflateBufferDefaultSize, bb.Cap())
	})

	t.Run("Small buffer", func(t *testing.T) {
		bb := NewByteBuffer(InflateBufferDefaultSize)
		bb.MustWrite(make([]byte, InflateBufferDefaultSize))
		bb.Grow(1024)
		assert.GreaterOrEqual(t, bb.Cap(), InflateBufferDefaultSize*2)
		assert.Equal(t, InflateBufferDefaultSize, bb.Len(), "length should not change")
	})

	t.Run("Large buffer grows by a quarter", func(t *testing.T) {
		size := 4*InflateBufferDefaultSize + 1024
		bb := NewByteBuffer(size)
		bb.MustWrite(make([]byte, size))
		bb.Grow(1)
		assert.GreaterOrEqual(t, bb.Cap(), size+size/4)
	})

	t.Run("Huge request", func(t *testing.T) {
		bb := NewByteBuffer(16)
		bb.MustWrite([]byte("payload"))
		bb.Grow(InflateBufferDefaultSize * 10)
		assert.GreaterOrEqual(t, bb.Cap(), 7+InflateBufferDefaultSize*10)
		assert.Equal(t, []byte("payload"), bb.Bytes(), "growth preserves data")
	})
}

func TestPools(t *testing.T) {
	bb := GetInflateBuffer()
	require.NotNil(t, bb)
	assert.GreaterOrEqual(t, bb.Cap(), InflateBufferDefaultSize)
	bb.MustWrite([]byte("data"))
	PutInflateBuffer(bb)
	assert.Equal(t, 0, bb.Len(), "put resets the buffer")

	sb := GetSnapshotBuffer()
	require.NotNil(t, sb)
	assert.GreaterOrEqual(t, sb.Cap(), SnapshotBufferDefaultSize)
	PutSnapshotBuffer(sb)

	require.NotPanics(t, func() {
		PutInflateBuffer(nil)
		PutSnapshotBuffer(nil)
	})
}

func TestByteBufferPool_DiscardsOversized(t *testing.T) {
	p := NewByteBufferPool(8, 64)
	bb := p.Get()
	bb.MustWrite(make([]byte, 128))
	p.Put(bb)
	assert.Equal(t, 128, bb.Len(), "oversized buffers are dropped without reset")
}
