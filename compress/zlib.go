package compress

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	"github.com/klauspost/compress/zlib"

	"github.com/arloliu/rifx/errs"
	"github.com/arloliu/rifx/internal/pool"
)

// zlibMaxPresizeRatio bounds the output reserved before inflating. Deflate
// can expand up to about 1032:1, so this only sizes the first buffer; the
// output still grows while the stream produces data within its limit.
const zlibMaxPresizeRatio = 8

// zlibReaderPool pools zlib readers. A pooled reader is re-armed with
// zlib.Resetter instead of allocating a new inflater per chunk.
var zlibReaderPool sync.Pool

// ZlibCodec inflates the zlib streams used by Afterburner movies.
type ZlibCodec struct {
	level int
}

var _ Codec = ZlibCodec{}

// NewZlibCodec creates a zlib codec using the default compression level.
func NewZlibCodec() ZlibCodec {
	return ZlibCodec{level: zlib.DefaultCompression}
}

// Compress deflates data into a zlib stream.
func (c ZlibCodec) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw, err := zlib.NewWriterLevel(&buf, c.level)
	if err != nil {
		return nil, err
	}
	if _, err := zw.Write(data); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// Decompress inflates a complete zlib stream of unknown decoded length.
func (c ZlibCodec) Decompress(data []byte) ([]byte, error) {
	return c.inflate(data, len(data)*4, -1)
}

// DecompressSize inflates a zlib stream that must produce exactly size bytes.
//
// At most size+1 bytes are inflated, so a stream that runs past size fails
// with errs.ErrSizeMismatch without being inflated to its end. A stream that
// ends early returns its output together with errs.ErrSizeMismatch. Trailing bytes
// after the end of the stream are ignored; Afterburner chunks are frequently
// padded.
func (c ZlibCodec) DecompressSize(data []byte, size int) ([]byte, error) {
	if size < 0 {
		return c.Decompress(data)
	}

	out, err := c.inflate(data, presize(size, len(data), zlibMaxPresizeRatio), int64(size)+1)
	if err != nil {
		return nil, err
	}
	if len(out) > size {
		return nil, fmt.Errorf("%w: want %d bytes, stream inflates past it", errs.ErrSizeMismatch, size)
	}
	if len(out) != size {
		return out, sizeMismatch(size, len(out))
	}

	return out, nil
}

// inflate decodes data into a pooled buffer pre-grown to hint bytes, reading
// at most limit bytes when limit is not negative.
func (c ZlibCodec) inflate(data []byte, hint int, limit int64) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	zr, err := getZlibReader(data)
	if err != nil {
		return nil, fmt.Errorf("zlib decompression failed: %w", err)
	}
	defer zlibReaderPool.Put(zr)

	bb := pool.GetInflateBuffer()
	defer pool.PutInflateBuffer(bb)

	if hint > 0 {
		bb.Grow(hint)
	}

	var src io.Reader = zr
	if limit >= 0 {
		src = io.LimitReader(zr, limit)
	}
	if _, err := io.Copy(bb, src); err != nil {
		return nil, fmt.Errorf("zlib decompression failed: %w", err)
	}

	return bytes.Clone(bb.Bytes()), nil
}

func getZlibReader(data []byte) (io.ReadCloser, error) {
	src := bytes.NewReader(data)
	if zr, ok := zlibReaderPool.Get().(io.ReadCloser); ok {
		if err := zr.(zlib.Resetter).Reset(src, nil); err != nil {
			return nil, err
		}

		return zr, nil
	}

	return zlib.NewReader(src)
}
