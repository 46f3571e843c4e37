//go:build !gozstd || !cgo

package compress

import (
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
)

var zstdDecoderPool = sync.Pool{
	New: func() any {
		decoder, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
		if err != nil {
			panic(fmt.Sprintf("zstd decoder options: %v", err))
		}

		return decoder
	},
}

var zstdEncoderPool = sync.Pool{
	New: func() any {
		encoder, err := zstd.NewWriter(nil,
			zstd.WithEncoderLevel(zstd.SpeedDefault),
			zstd.WithEncoderCRC(false),
		)
		if err != nil {
			panic(fmt.Sprintf("zstd encoder options: %v", err))
		}

		return encoder
	},
}

// Compress encodes data as a single frame with a pooled encoder.
func (ZstdCodec) Compress(data []byte) ([]byte, error) {
	encoder, _ := zstdEncoderPool.Get().(*zstd.Encoder)
	defer zstdEncoderPool.Put(encoder)

	return encoder.EncodeAll(data, nil), nil
}

// Decompress decodes a frame of unknown decoded length.
func (c ZstdCodec) Decompress(data []byte) ([]byte, error) {
	return c.decode(data, nil)
}

// DecompressSize decodes a frame that must decode to exactly size bytes. A
// frame header announcing a different content size is rejected before
// decoding.
func (c ZstdCodec) DecompressSize(data []byte, size int) ([]byte, error) {
	if len(data) == 0 {
		if size != 0 {
			return nil, sizeMismatch(size, 0)
		}

		return nil, nil
	}

	var hdr zstd.Header
	if err := hdr.Decode(data); err != nil {
		return nil, fmt.Errorf("zstd decompression failed: %w", err)
	}
	if hdr.HasFCS && hdr.FrameContentSize != uint64(size) { //nolint: gosec
		return nil, sizeMismatch(size, int(hdr.FrameContentSize)) //nolint: gosec
	}

	out, err := c.decode(data, make([]byte, 0, presize(size, len(data), zstdMaxPresizeRatio)))
	if err != nil {
		return nil, err
	}
	if len(out) != size {
		return nil, sizeMismatch(size, len(out))
	}

	return out, nil
}

func (ZstdCodec) decode(data, dst []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	decoder, _ := zstdDecoderPool.Get().(*zstd.Decoder)
	defer zstdDecoderPool.Put(decoder)

	out, err := decoder.DecodeAll(data, dst)
	if err != nil {
		return nil, fmt.Errorf("zstd decompression failed: %w", err)
	}

	return out, nil
}
