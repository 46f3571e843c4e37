package compress

import "bytes"

// PassThroughCodec copies bytes unchanged.
//
// It writes uncompressed snapshot bodies, and it is the registry decoder for
// Director payloads that are stored or that this package leaves encoded
// (sound, font map and unknown identifiers). Every result is a fresh copy, so
// a payload never aliases the movie buffer it was sliced from.
type PassThroughCodec struct{}

var _ Codec = PassThroughCodec{}

// NewPassThroughCodec returns the pass-through codec.
func NewPassThroughCodec() PassThroughCodec {
	return PassThroughCodec{}
}

// Compress returns a copy of data.
func (PassThroughCodec) Compress(data []byte) ([]byte, error) {
	return bytes.Clone(data), nil
}

// Decompress returns a copy of data.
func (PassThroughCodec) Decompress(data []byte) ([]byte, error) {
	return bytes.Clone(data), nil
}

// DecompressSize returns a copy of data, which must be exactly size bytes.
// Short input is still copied and returned with errs.ErrSizeMismatch.
func (PassThroughCodec) DecompressSize(data []byte, size int) ([]byte, error) {
	switch {
	case len(data) > size:
		return nil, sizeMismatch(size, len(data))
	case len(data) < size:
		return bytes.Clone(data), sizeMismatch(size, len(data))
	}

	return bytes.Clone(data), nil
}
