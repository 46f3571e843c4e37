//go:build gozstd && cgo

package compress

import (
	"fmt"

	"github.com/valyala/gozstd"
)

// Compress encodes data as a single frame at level 3.
func (ZstdCodec) Compress(data []byte) ([]byte, error) {
	return gozstd.CompressLevel(nil, data, 3), nil
}

// Decompress decodes a frame of unknown decoded length.
func (c ZstdCodec) Decompress(data []byte) ([]byte, error) {
	return c.decode(data, nil)
}

// DecompressSize decodes a frame that must decode to exactly size bytes.
func (c ZstdCodec) DecompressSize(data []byte, size int) ([]byte, error) {
	if len(data) == 0 {
		if size != 0 {
			return nil, sizeMismatch(size, 0)
		}

		return nil, nil
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

	out, err := gozstd.Decompress(dst, data)
	if err != nil {
		return nil, fmt.Errorf("zstd decompression failed: %w", err)
	}

	return out, nil
}
