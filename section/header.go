package section

import (
	"fmt"

	"github.com/arloliu/rifx/endian"
	"github.com/arloliu/rifx/errs"
	"github.com/arloliu/rifx/format"
)

// DataFormat describes how a movie is encoded.
//
// The Director version and its label are derived from the archive-version
// marker and are only updated through SetArchiveVersion.
type DataFormat struct {
	// Codec is the decoded codec tag at byte offset 8-11.
	Codec format.Codec
	// CodecTag is the raw codec tag, kept for reporting unknown codecs.
	CodecTag format.FourCC
	// BigEndian is true for "RIFX" movies and false for "XFIR" movies.
	BigEndian bool
	// MapVersion is the imap map version (always 1 for classic archives).
	MapVersion uint32
	// AfterburnerVersion is the version string stored in the Fver chunk.
	AfterburnerVersion string

	archiveVersion  uint32
	hasVersion      bool
	directorVersion int
	versionLabel    string
}

// SetArchiveVersion records the archive-version marker and recomputes the
// Director version and label from the version table.
func (f *DataFormat) SetArchiveVersion(marker uint32) {
	f.archiveVersion = marker
	f.hasVersion = true
	f.directorVersion, f.versionLabel = format.ResolveArchiveVersion(marker)
}

// ArchiveVersion returns the raw archive-version marker.
func (f DataFormat) ArchiveVersion() uint32 {
	return f.archiveVersion
}

// HasArchiveVersion reports whether a marker was recorded. Afterburner movies
// carry no imap and therefore no marker.
func (f DataFormat) HasArchiveVersion() bool {
	return f.hasVersion
}

// DirectorVersion returns the Director release number, or 0 when unknown.
func (f DataFormat) DirectorVersion() int {
	return f.directorVersion
}

// DirectorVersionLabel returns a display label such as "Director 6".
func (f DataFormat) DirectorVersionLabel() string {
	if !f.hasVersion {
		return "Unknown"
	}

	return f.versionLabel
}

// IsAfterburner reports whether the movie uses the compressed Afterburner layout.
func (f DataFormat) IsAfterburner() bool {
	return f.Codec.IsAfterburner()
}

// Engine returns the byte order engine of the movie.
func (f DataFormat) Engine() endian.EndianEngine {
	return endian.GetEngine(f.BigEndian)
}

// DataBlock is the top-level RIFX chunk of a movie.
type DataBlock struct {
	// DeclaredSize is the payload length stored at byte offset 4-7.
	DeclaredSize uint32
	// PayloadStart is the absolute offset of the first chunk (always 12).
	PayloadStart int64
	// PayloadEnd is PayloadStart + DeclaredSize. It may exceed the file size
	// for truncated movies.
	PayloadEnd int64

	Format DataFormat
}

// ParseDataBlock parses the 12-byte movie header.
//
// Unrecognized codec tags are not an error: Format.Codec is set to
// format.CodecUnknown and Format.CodecTag keeps the raw tag.
//
// Returns:
//   - DataBlock: parsed header
//   - error: errs.ErrFormat if data is shorter than 12 bytes or the signature
//     is neither "RIFX" nor "XFIR"
func ParseDataBlock(data []byte) (DataBlock, error) {
	if len(data) < HeaderSize {
		return DataBlock{}, fmt.Errorf("%w: header needs %d bytes, got %d", errs.ErrFormat, HeaderSize, len(data))
	}

	engine, ok := endian.FromSignature(data[0:4])
	if !ok {
		return DataBlock{}, fmt.Errorf("%w: bad signature %q", errs.ErrFormat, data[0:4])
	}

	codecTag := format.FourCC(engine.Uint32(data[8:12]))
	block := DataBlock{
		DeclaredSize: engine.Uint32(data[4:8]),
		PayloadStart: PayloadStartBase,
		Format: DataFormat{
			Codec:     format.CodecFromTag(codecTag),
			CodecTag:  codecTag,
			BigEndian: endian.IsBigEndian(engine),
		},
	}
	block.PayloadEnd = block.PayloadStart + int64(block.DeclaredSize)

	return block, nil
}

// Bytes serializes the 12-byte movie header.
func (b *DataBlock) Bytes() []byte {
	engine := b.Format.Engine()
	tag := b.Format.CodecTag
	if tag == 0 {
		tag = b.Format.Codec.Tag()
	}

	out := make([]byte, 0, HeaderSize)
	out = append(out, endian.Signature(engine)...)
	out = engine.AppendUint32(out, b.DeclaredSize)
	out = engine.AppendUint32(out, uint32(tag))

	return out
}
