package section

import (
	"fmt"

	"github.com/arloliu/rifx/endian"
	"github.com/arloliu/rifx/errs"
	"github.com/arloliu/rifx/format"
)

// MmapEntry is one row of the memory map. Rows are EntrySize bytes apart;
// only the first MmapEntrySize bytes are interpreted.
type MmapEntry struct {
	Tag        format.FourCC // byte offset 0-3
	Size       uint32        // byte offset 4-7
	Offset     uint32        // byte offset 8-11, absolute offset of the chunk tag
	Flags      uint16        // byte offset 12-13
	Attributes uint16        // byte offset 14-15
	NextFree   int32         // byte offset 16-19, next slot of the free list or -1
}

// IsFree reports whether the row is a free-list or junk slot.
func (e MmapEntry) IsFree() bool {
	return e.Tag.IsFree()
}

// MmapBlock is the memory map of a classic movie.
type MmapBlock struct {
	Length        uint32
	HeaderSize    uint16
	EntrySize     uint16
	EntryCountMax uint32
	EntryCount    uint32
	JunkHead      int32
	JunkHead2     int32
	FreeHead      int32

	Entries []MmapEntry
}

// ParseMmap parses the mmap chunk located at offset.
//
// Rows are read with a stride of EntrySize so that padding added by later
// Director releases is skipped. When the declared rows run past the end of
// data, every complete row is returned together with an error wrapping
// errs.ErrTruncatedStream.
//
// Returns:
//   - MmapBlock: decoded block (partial on truncation)
//   - error: errs.ErrFormat for a missing tag or an unusable header,
//     errs.ErrTruncatedStream for a short row table
func ParseMmap(data []byte, offset int64, engine endian.EndianEngine) (MmapBlock, error) {
	hdr, err := ParseChunkHeader(data, offset, engine)
	if err != nil {
		return MmapBlock{}, fmt.Errorf("%w: %w", errs.ErrFormat, err)
	}
	if hdr.Tag != format.TagMmap {
		return MmapBlock{}, fmt.Errorf("%w: map offset %d points at %q, not mmap", errs.ErrFormat, offset, hdr.Tag)
	}

	start := hdr.BodyOffset()
	if start+MmapHeaderSize > int64(len(data)) {
		return MmapBlock{}, fmt.Errorf("%w: mmap header at %d is cut short", errs.ErrFormat, start)
	}

	b := data[start : start+MmapHeaderSize]
	block := MmapBlock{
		Length:        hdr.Length,
		HeaderSize:    engine.Uint16(b[0:2]),
		EntrySize:     engine.Uint16(b[2:4]),
		EntryCountMax: engine.Uint32(b[4:8]),
		EntryCount:    engine.Uint32(b[8:12]),
		JunkHead:      int32(engine.Uint32(b[12:16])), //nolint: gosec
		JunkHead2:     int32(engine.Uint32(b[16:20])), //nolint: gosec
		FreeHead:      int32(engine.Uint32(b[20:24])), //nolint: gosec
	}

	if block.HeaderSize < MmapHeaderSize {
		return block, fmt.Errorf("%w: mmap header size %d", errs.ErrFormat, block.HeaderSize)
	}
	if block.EntrySize < MmapEntrySize {
		return block, fmt.Errorf("%w: mmap entry size %d", errs.ErrFormat, block.EntrySize)
	}

	rowsStart := start + int64(block.HeaderSize)
	available := int64(len(data)) - rowsStart
	if available < 0 {
		available = 0
	}

	stride := int64(block.EntrySize)
	count := int64(block.EntryCount)
	var truncErr error
	if count*stride > available {
		count = available / stride
		truncErr = fmt.Errorf("%w: mmap declares %d rows of %d bytes, %d complete rows available",
			errs.ErrTruncatedStream, block.EntryCount, block.EntrySize, count)
	}

	block.Entries = make([]MmapEntry, count)
	for i := range count {
		row := data[rowsStart+i*stride:]
		block.Entries[i] = parseMmapEntry(row, engine)
	}

	return block, truncErr
}

func parseMmapEntry(b []byte, engine endian.EndianEngine) MmapEntry {
	return MmapEntry{
		Tag:        format.FourCC(engine.Uint32(b[0:4])),
		Size:       engine.Uint32(b[4:8]),
		Offset:     engine.Uint32(b[8:12]),
		Flags:      engine.Uint16(b[12:14]),
		Attributes: engine.Uint16(b[14:16]),
		NextFree:   int32(engine.Uint32(b[16:20])), //nolint: gosec
	}
}

// Bytes serializes the mmap chunk, tag included. Rows are padded with zeros
// up to EntrySize.
func (b MmapBlock) Bytes(engine endian.EndianEngine) []byte {
	headerSize := max(b.HeaderSize, MmapHeaderSize)
	entrySize := max(b.EntrySize, MmapEntrySize)

	body := make([]byte, 0, int(headerSize)+len(b.Entries)*int(entrySize))
	body = engine.AppendUint16(body, headerSize)
	body = engine.AppendUint16(body, entrySize)
	body = engine.AppendUint32(body, b.EntryCountMax)
	body = engine.AppendUint32(body, b.EntryCount)
	body = engine.AppendUint32(body, uint32(b.JunkHead))  //nolint: gosec
	body = engine.AppendUint32(body, uint32(b.JunkHead2)) //nolint: gosec
	body = engine.AppendUint32(body, uint32(b.FreeHead))  //nolint: gosec
	body = append(body, make([]byte, int(headerSize)-MmapHeaderSize)...)

	for _, e := range b.Entries {
		body = engine.AppendUint32(body, uint32(e.Tag))
		body = engine.AppendUint32(body, e.Size)
		body = engine.AppendUint32(body, e.Offset)
		body = engine.AppendUint16(body, e.Flags)
		body = engine.AppendUint16(body, e.Attributes)
		body = engine.AppendUint32(body, uint32(e.NextFree)) //nolint: gosec
		body = append(body, make([]byte, int(entrySize)-MmapEntrySize)...)
	}

	return AppendChunk(nil, format.TagMmap, body, engine)
}
