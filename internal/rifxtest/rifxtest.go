// Package rifxtest builds synthetic Director movies for tests.
package rifxtest

import (
	"github.com/arloliu/rifx/compress"
	"github.com/arloliu/rifx/endian"
	"github.com/arloliu/rifx/format"
	"github.com/arloliu/rifx/internal/stream"
	"github.com/arloliu/rifx/section"
)

// Resource is one payload stored in a synthetic movie.
type Resource struct {
	Tag  string
	Data []byte
	// Free writes a free-list row instead of a chunk.
	Free bool
}

// Key is one KEY* row.
type Key struct {
	ChildID  int32
	ParentID int32
	Tag      string
}

// Classic describes a classic imap/mmap movie.
type Classic struct {
	BigEndian bool
	// Codec defaults to MV93.
	Codec format.Codec
	// Release selects the archive-version marker. ReleaseUnknown writes Marker.
	Release format.Release
	Marker  uint32
	// EntrySize defaults to the minimal 20-byte row; larger values pad rows.
	EntrySize uint16
	Resources []Resource
	// Keys, when non-nil, adds a KEY* resource after Resources.
	Keys []Key
}

// First resource id assigned to Classic.Resources. Rows 0-2 describe the
// file header, imap and mmap.
const FirstClassicID = 3

// Engine returns the byte order of the movie.
func (m Classic) Engine() endian.EndianEngine {
	return endian.GetEngine(m.BigEndian)
}

// KeyID returns the resource id of the KEY* chunk.
func (m Classic) KeyID() int32 {
	return int32(FirstClassicID + len(m.Resources)) //nolint: gosec
}

func (m Classic) resources() []Resource {
	if m.Keys == nil {
		return m.Resources
	}

	return append(append([]Resource(nil), m.Resources...), Resource{
		Tag:  format.TagKey.String(),
		Data: KeyTableBytes(m.Keys, m.Engine()),
	})
}

// Bytes builds the movie. Rows follow the mmap order: header, imap, mmap, then
// one row per resource.
func (m Classic) Bytes() []byte {
	engine := m.Engine()
	codec := m.Codec
	if codec == format.CodecUnknown {
		codec = format.CodecMV93
	}
	entrySize := max(m.EntrySize, section.MmapEntrySize)
	resources := m.resources()

	const mmapOffset = section.HeaderSize + section.ImapSize
	rowCount := FirstClassicID + len(resources)
	mmapBody := section.MmapHeaderSize + rowCount*int(entrySize)
	offset := uint32(mmapOffset + section.ChunkHeaderSize + mmapBody) //nolint: gosec

	rows := make([]section.MmapEntry, 0, rowCount)
	rows = append(rows,
		section.MmapEntry{Tag: format.TagRIFX, Offset: 0, NextFree: -1},
		section.MmapEntry{Tag: format.TagImap, Size: section.ImapSize - section.ChunkHeaderSize, Offset: section.HeaderSize, NextFree: -1},
		section.MmapEntry{Tag: format.TagMmap, Size: uint32(mmapBody), Offset: mmapOffset, NextFree: -1}, //nolint: gosec
	)

	var chunks []byte
	for _, r := range resources {
		tag := format.MakeFourCC(r.Tag)
		if r.Free {
			rows = append(rows, section.MmapEntry{Tag: tag, NextFree: -1})
			continue
		}
		rows = append(rows, section.MmapEntry{Tag: tag, Size: uint32(len(r.Data)), Offset: offset, NextFree: -1}) //nolint: gosec
		chunks = section.AppendChunk(chunks, tag, r.Data, engine)
		offset += uint32(section.ChunkHeaderSize + len(r.Data)) //nolint: gosec
	}

	mmap := section.MmapBlock{
		HeaderSize:    section.MmapHeaderSize,
		EntrySize:     entrySize,
		EntryCountMax: uint32(rowCount), //nolint: gosec
		EntryCount:    uint32(rowCount), //nolint: gosec
		JunkHead:      -1,
		JunkHead2:     -1,
		FreeHead:      -1,
		Entries:       rows,
	}

	marker := m.Marker
	if mk, ok := format.ArchiveMarker(m.Release); ok {
		marker = mk
	}
	imap := section.ImapBlock{
		Length:         section.ImapSize - section.ChunkHeaderSize,
		MapVersion:     format.ClassicMapVersion,
		MapOffset:      mmapOffset,
		ArchiveVersion: marker,
	}

	body := imap.Bytes(engine)
	body = append(body, mmap.Bytes(engine)...)
	body = append(body, chunks...)

	return withHeader(body, codec, engine)
}

func withHeader(body []byte, codec format.Codec, engine endian.EndianEngine) []byte {
	block := section.DataBlock{
		DeclaredSize: uint32(len(body) + section.HeaderSize - section.ChunkHeaderSize), //nolint: gosec
		Format: section.DataFormat{
			Codec:     codec,
			BigEndian: endian.IsBigEndian(engine),
		},
	}

	return append(block.Bytes(), body...)
}

// KeyTableBytes serializes a KEY* body.
func KeyTableBytes(keys []Key, engine endian.EndianEngine) []byte {
	table := section.KeyTable{
		EntrySize:  section.KeyEntrySize,
		EntrySize2: section.KeyEntrySize,
		CountMax:   uint32(len(keys)), //nolint: gosec
		Count:      uint32(len(keys)), //nolint: gosec
		Entries:    make([]section.KeyEntry, len(keys)),
	}
	for i, k := range keys {
		table.Entries[i] = section.KeyEntry{ChildID: k.ChildID, ParentID: k.ParentID, Tag: format.MakeFourCC(k.Tag)}
	}

	return table.Bytes(engine)
}

// Zlib compresses data with the zlib codec and panics on failure.
func Zlib(data []byte) []byte {
	out, err := compress.NewZlibCodec().Compress(data)
	if err != nil {
		panic(err)
	}

	return out
}

// Varints encodes each value as a Director varint.
func Varints(values ...uint32) []byte {
	var out []byte
	for _, v := range values {
		out = stream.AppendVarint(out, v)
	}

	return out
}
