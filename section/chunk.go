package section

import (
	"fmt"

	"github.com/arloliu/rifx/endian"
	"github.com/arloliu/rifx/errs"
	"github.com/arloliu/rifx/format"
)

// ChunkHeader is the tag and length that precede every classic chunk.
type ChunkHeader struct {
	Tag    format.FourCC
	Length uint32
	// Offset is the absolute offset of the tag.
	Offset int64
}

// BodyOffset returns the absolute offset of the chunk body.
func (h ChunkHeader) BodyOffset() int64 {
	return h.Offset + ChunkHeaderSize
}

// ParseChunkHeader reads the chunk header at offset.
func ParseChunkHeader(data []byte, offset int64, engine endian.EndianEngine) (ChunkHeader, error) {
	if offset < 0 || offset+ChunkHeaderSize > int64(len(data)) {
		return ChunkHeader{}, fmt.Errorf("%w: chunk header at %d, length %d", errs.ErrOffsetOutOfRange, offset, len(data))
	}

	return ChunkHeader{
		Tag:    format.FourCC(engine.Uint32(data[offset : offset+4])),
		Length: engine.Uint32(data[offset+4 : offset+8]),
		Offset: offset,
	}, nil
}

// AppendChunk appends a classic chunk with the given tag and body to dst.
func AppendChunk(dst []byte, tag format.FourCC, body []byte, engine endian.EndianEngine) []byte {
	dst = engine.AppendUint32(dst, uint32(tag))
	dst = engine.AppendUint32(dst, uint32(len(body))) //nolint: gosec

	return append(dst, body...)
}
