package compress

import (
	"fmt"

	"github.com/arloliu/rifx/errs"
	"github.com/arloliu/rifx/format"
)

// Compressor compresses a complete snapshot body.
//
// The returned slice is newly allocated and owned by the caller; data is not
// modified.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor decodes a complete payload whose decoded length is not known.
//
// Custom decoders installed with Registry.WithDecompressor only need this
// method. The returned slice is owned by the caller and must not alias data.
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// SizedDecompressor decodes a payload that must decode to exactly size bytes.
//
// Implementations stop decoding once the output passes size and fail with
// errs.ErrSizeMismatch. The memory reserved up front is bounded by the input
// length, never by size alone, because size comes from the file being read.
type SizedDecompressor interface {
	DecompressSize(data []byte, size int) ([]byte, error)
}

// Codec is a snapshot body codec.
type Codec interface {
	Compressor
	Decompressor
	SizedDecompressor
}

// presize returns the output capacity to reserve before decoding inputLen
// bytes that should decode to size bytes, given the codec's worst expansion
// ratio.
func presize(size, inputLen, ratio int) int {
	return max(0, min(size, inputLen*ratio))
}

func sizeMismatch(want, got int) error {
	return fmt.Errorf("%w: want %d bytes, got %d", errs.ErrSizeMismatch, want, got)
}

// CompressionStats describes the effect of compressing one payload.
type CompressionStats struct {
	// Algorithm identifies the compression algorithm used
	Algorithm format.CompressionType

	// OriginalSize is the size of input data before compression
	OriginalSize int64

	// CompressedSize is the size of data after compression
	CompressedSize int64
}

// CompressionRatio returns the compression ratio (compressed size / original size).
//
// Values less than 1.0 indicate successful compression.
//
// Returns:
//   - float64: Compression ratio (0.0 if original size is zero)
func (s CompressionStats) CompressionRatio() float64 {
	if s.OriginalSize == 0 {
		return 0.0
	}

	return float64(s.CompressedSize) / float64(s.OriginalSize)
}

// SpaceSavings returns the space savings as a percentage (0-100%).
func (s CompressionStats) SpaceSavings() float64 {
	return (1.0 - s.CompressionRatio()) * 100.0
}

// CreateCodec creates the snapshot body codec for compressionType.
//
// Parameters:
//   - compressionType: Type of compression (None, Zstd, S2, or LZ4)
//   - target: Description of target usage (for error messages)
//
// Returns:
//   - Codec: codec for the specified type
//   - error: invalid compression type error
func CreateCodec(compressionType format.CompressionType, target string) (Codec, error) {
	switch compressionType {
	case format.CompressionNone:
		return NewPassThroughCodec(), nil
	case format.CompressionZstd:
		return NewZstdCodec(), nil
	case format.CompressionS2:
		return NewS2Codec(), nil
	case format.CompressionLZ4:
		return NewLZ4Codec(), nil
	default:
		return nil, fmt.Errorf("invalid %s compression: %s", target, compressionType)
	}
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewPassThroughCodec(),
	format.CompressionZstd: NewZstdCodec(),
	format.CompressionS2:   NewS2Codec(),
	format.CompressionLZ4:  NewLZ4Codec(),
}

// GetCodec retrieves a built-in Codec for the specified compression type.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("unsupported compression type: %s", compressionType)
}
