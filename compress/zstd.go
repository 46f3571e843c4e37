package compress

// zstdMaxPresizeRatio bounds the output reserved before decoding a Zstd frame
// that declares no content size. The decoded length is checked afterwards.
const zstdMaxPresizeRatio = 32

// ZstdCodec stores a snapshot body as one Zstandard frame. It is the default
// snapshot codec.
//
// The pure-Go build uses klauspost/compress; building with the gozstd tag and
// cgo enabled switches to the valyala/gozstd binding.
type ZstdCodec struct{}

var _ Codec = ZstdCodec{}

// NewZstdCodec returns the Zstandard codec.
func NewZstdCodec() ZstdCodec {
	return ZstdCodec{}
}
