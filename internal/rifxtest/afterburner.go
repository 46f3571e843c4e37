package rifxtest

import (
	"github.com/arloliu/rifx/compress"
	"github.com/arloliu/rifx/endian"
	"github.com/arloliu/rifx/format"
	"github.com/arloliu/rifx/internal/stream"
)

// ILSID is the resource id the builder gives the initial-load segment.
const ILSID int32 = 2

// Segment is one resource of a synthetic Afterburner movie.
type Segment struct {
	ID  int32
	Tag string
	// Data is the decoded payload.
	Data []byte
	// Index is the Fcdr compression index. The default table puts zlib at 0;
	// -1 stores Data as-is.
	Index int32
	// Inline stores the payload in the initial-load segment.
	Inline bool
	// Stored, when non-nil, replaces the encoded bytes written to the file.
	Stored []byte
	// Size, when non-zero, replaces the declared uncompressed size.
	Size uint32
}

// Afterburner describes an FGDM/FGDC movie.
type Afterburner struct {
	BigEndian bool
	// Codec defaults to FGDM.
	Codec format.Codec
	// Release defaults to format.DefaultWriterRelease.
	Release       format.Release
	VersionString string
	// Compressions is the Fcdr table; nil writes DefaultCompressions.
	Compressions []compress.MoaID
	Segments     []Segment
	// Keys, when non-nil, adds an inline zlib KEY* segment with id KeyID.
	Keys  []Key
	KeyID int32
}

// DefaultCompressions is the Fcdr table written by default. Index 0 is zlib.
var DefaultCompressions = []compress.MoaID{
	compress.ZlibMoaID,
	compress.SoundMoaID,
	compress.NullMoaID,
	compress.FontMapMoaID,
}

const fverVersion = 0x501

// Engine returns the byte order of the movie.
func (m Afterburner) Engine() endian.EndianEngine {
	return endian.GetEngine(m.BigEndian)
}

func (m Afterburner) segments() []Segment {
	if m.Keys == nil {
		return m.Segments
	}

	return append(append([]Segment(nil), m.Segments...), Segment{
		ID:     m.KeyID,
		Tag:    format.TagKey.String(),
		Data:   KeyTableBytes(m.Keys, m.Engine()),
		Inline: true,
	})
}

// Bytes builds the movie.
func (m Afterburner) Bytes() []byte {
	engine := m.Engine()
	codec := m.Codec
	if codec == format.CodecUnknown {
		codec = format.CodecFGDM
	}
	release := m.Release
	if release == format.ReleaseUnknown {
		release = format.DefaultWriterRelease
	}
	marker, _ := format.ArchiveMarker(release)
	comps := m.Compressions
	if comps == nil {
		comps = DefaultCompressions
	}

	// Fver
	fver := Varints(fverVersion, format.ClassicMapVersion, marker)
	fver = append(fver, byte(len(m.VersionString)))
	fver = append(fver, m.VersionString...)

	// Fcdr
	fcdr := engine.AppendUint16(nil, uint16(len(comps))) //nolint: gosec
	for _, id := range comps {
		fcdr = id.AppendBytes(fcdr, engine)
	}
	for _, id := range comps {
		fcdr = append(fcdr, compress.DefaultRegistry().Name(id)...)
		fcdr = append(fcdr, 0)
	}

	// initial-load segment and file-backed payloads
	type row struct {
		id                 int32
		offset             int32
		compSize, uncompSz uint32
		index              int32
		tag                format.FourCC
	}

	var (
		ils, files []byte
		rows       []row
	)
	for _, s := range m.segments() {
		stored := s.Stored
		if stored == nil {
			stored = s.Data
			if s.Index >= 0 {
				stored = Zlib(s.Data)
			}
		}
		size := s.Size
		if size == 0 {
			size = uint32(len(s.Data)) //nolint: gosec
		}

		r := row{id: s.ID, offset: -1, compSize: uint32(len(stored)), uncompSz: size, index: s.Index, tag: format.MakeFourCC(s.Tag)} //nolint: gosec
		if s.Inline {
			ils = stream.AppendVarint(ils, uint32(s.ID)) //nolint: gosec
			ils = append(ils, stored...)
		} else {
			r.offset = int32(len(files)) //nolint: gosec
			files = append(files, stored...)
		}
		rows = append(rows, r)
	}

	ilsStored := Zlib(ils)
	for i := range rows {
		if rows[i].offset >= 0 {
			rows[i].offset += int32(len(ilsStored)) //nolint: gosec
		}
	}
	rows = append([]row{{
		id: ILSID, offset: 0, compSize: uint32(len(ilsStored)), uncompSz: uint32(len(ils)), //nolint: gosec
		index: 0, tag: format.TagILS,
	}}, rows...)

	// ABMP
	abmp := Varints(0, 0, uint32(len(rows))) //nolint: gosec
	for _, r := range rows {
		abmp = append(abmp, Varints(uint32(r.id), uint32(r.offset), r.compSize, r.uncompSz, uint32(r.index))...) //nolint: gosec
		abmp = engine.AppendUint32(abmp, uint32(r.tag))
	}
	abmpBody := Varints(0, uint32(len(abmp))) //nolint: gosec
	abmpBody = append(abmpBody, Zlib(abmp)...)

	var body []byte
	body = appendABChunk(body, format.TagFver, fver, engine)
	body = appendABChunk(body, format.TagFcdr, Zlib(fcdr), engine)
	body = appendABChunk(body, format.TagABMP, abmpBody, engine)
	body = engine.AppendUint32(body, uint32(format.TagFGEI))
	body = stream.AppendVarint(body, 0)
	body = append(body, ilsStored...)
	body = append(body, files...)

	return withHeader(body, codec, engine)
}

func appendABChunk(dst []byte, tag format.FourCC, body []byte, engine endian.EndianEngine) []byte {
	dst = engine.AppendUint32(dst, uint32(tag))
	dst = stream.AppendVarint(dst, uint32(len(body))) //nolint: gosec

	return append(dst, body...)
}
