package compress

import (
	"fmt"

	"github.com/klauspost/compress/s2"
)

// S2Codec stores a snapshot body as one S2 block. The block header records
// its decoded length, so sized decoding is checked before any allocation.
type S2Codec struct{}

var _ Codec = S2Codec{}

// NewS2Codec returns the S2 block codec.
func NewS2Codec() S2Codec {
	return S2Codec{}
}

// Compress encodes data as a single S2 block. Empty input encodes to nil.
func (S2Codec) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return s2.Encode(nil, data), nil
}

// Decompress decodes an S2 block.
func (S2Codec) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	out, err := s2.Decode(nil, data)
	if err != nil {
		return nil, fmt.Errorf("s2 decompression failed: %w", err)
	}

	return out, nil
}

// DecompressSize decodes an S2 block whose header must announce size bytes.
func (c S2Codec) DecompressSize(data []byte, size int) ([]byte, error) {
	if len(data) == 0 {
		if size != 0 {
			return nil, sizeMismatch(size, 0)
		}

		return nil, nil
	}

	n, err := s2.DecodedLen(data)
	if err != nil {
		return nil, fmt.Errorf("s2 decompression failed: %w", err)
	}
	if n != size {
		return nil, sizeMismatch(size, n)
	}

	return c.Decompress(data)
}
