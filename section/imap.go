package section

import (
	"fmt"

	"github.com/arloliu/rifx/endian"
	"github.com/arloliu/rifx/errs"
	"github.com/arloliu/rifx/format"
)

// ImapBlock is the initial map of a classic movie. It points at the mmap
// resource table and carries the archive-version marker.
type ImapBlock struct {
	Length         uint32 // byte offset 4-7
	MapVersion     uint32 // byte offset 8-11
	MapOffset      uint32 // byte offset 12-15
	ArchiveVersion uint32 // byte offset 16-19
}

// ParseImap parses an imap chunk located at offset.
//
// Returns:
//   - ImapBlock: decoded block
//   - error: errs.ErrFormat if the tag is not "imap" or the block is cut short
func ParseImap(data []byte, offset int64, engine endian.EndianEngine) (ImapBlock, error) {
	if offset < 0 || offset+ImapSize > int64(len(data)) {
		return ImapBlock{}, fmt.Errorf("%w: imap at %d needs %d bytes, length %d", errs.ErrFormat, offset, ImapSize, len(data))
	}

	b := data[offset : offset+ImapSize]
	if tag := format.FourCC(engine.Uint32(b[0:4])); tag != format.TagImap {
		return ImapBlock{}, fmt.Errorf("%w: expected imap at %d, found %q", errs.ErrFormat, offset, tag)
	}

	return ImapBlock{
		Length:         engine.Uint32(b[4:8]),
		MapVersion:     engine.Uint32(b[8:12]),
		MapOffset:      engine.Uint32(b[12:16]),
		ArchiveVersion: engine.Uint32(b[16:20]),
	}, nil
}

// Bytes serializes the imap chunk, tag included.
func (b ImapBlock) Bytes(engine endian.EndianEngine) []byte {
	out := make([]byte, 0, ImapSize)
	out = engine.AppendUint32(out, uint32(format.TagImap))
	out = engine.AppendUint32(out, b.Length)
	out = engine.AppendUint32(out, b.MapVersion)
	out = engine.AppendUint32(out, b.MapOffset)
	out = engine.AppendUint32(out, b.ArchiveVersion)

	return out
}
