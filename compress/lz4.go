package compress

import (
	"errors"
	"fmt"
	"sync"

	"github.com/pierrec/lz4/v4"

	"github.com/arloliu/rifx/errs"
)

// lz4MaxRatio is the largest expansion a single LZ4 block can encode: one
// match token covers at most 255 output bytes per input byte.
const lz4MaxRatio = 255

var lz4CompressorPool = sync.Pool{
	New: func() any {
		return &lz4.Compressor{}
	},
}

// LZ4Codec stores a snapshot body as one raw LZ4 block.
//
// A raw block carries no length of its own; snapshot headers record the body
// length and decoding goes through DecompressSize.
type LZ4Codec struct{}

var _ Codec = LZ4Codec{}

// NewLZ4Codec returns the LZ4 block codec.
func NewLZ4Codec() LZ4Codec {
	return LZ4Codec{}
}

// Compress encodes data as a single LZ4 block. Empty input encodes to nil.
func (LZ4Codec) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	lc, _ := lz4CompressorPool.Get().(*lz4.Compressor)
	defer lz4CompressorPool.Put(lc)

	dst := make([]byte, lz4.CompressBlockBound(len(data)))
	n, err := lc.CompressBlock(data, dst)
	if err != nil {
		return nil, fmt.Errorf("lz4 compression failed: %w", err)
	}

	return dst[:n], nil
}

// DecompressSize decodes a block that must expand to exactly size bytes. A
// size the block could not possibly reach is rejected before allocating.
func (LZ4Codec) DecompressSize(data []byte, size int) ([]byte, error) {
	if len(data) == 0 {
		if size != 0 {
			return nil, sizeMismatch(size, 0)
		}

		return nil, nil
	}
	if size < 0 || size > len(data)*lz4MaxRatio {
		return nil, fmt.Errorf("%w: %d-byte lz4 block cannot expand to %d bytes", errs.ErrSizeMismatch, len(data), size)
	}

	out := make([]byte, size)
	n, err := lz4.UncompressBlock(data, out)
	if errors.Is(err, lz4.ErrInvalidSourceShortBuffer) {
		return nil, fmt.Errorf("%w: lz4 block does not decode within %d bytes", errs.ErrSizeMismatch, size)
	}
	if err != nil {
		return nil, fmt.Errorf("lz4 decompression failed: %w", err)
	}
	if n != size {
		return nil, sizeMismatch(size, n)
	}

	return out, nil
}

// Decompress decodes a block of unknown decoded length. The output buffer
// starts at four times the input and doubles while the block does not fit,
// up to the largest expansion a block can encode.
func (LZ4Codec) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	limit := len(data) * lz4MaxRatio
	for bufSize := len(data) * 4; ; bufSize = min(bufSize*2, limit) {
		buf := make([]byte, bufSize)
		n, err := lz4.UncompressBlock(data, buf)
		if err == nil {
			return buf[:n], nil
		}
		if !errors.Is(err, lz4.ErrInvalidSourceShortBuffer) || bufSize >= limit {
			return nil, fmt.Errorf("lz4 decompression failed: %w", err)
		}
	}
}
