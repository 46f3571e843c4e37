package afterburner

import (
	"errors"
	"fmt"
	"io"

	"github.com/arloliu/rifx/compress"
	"github.com/arloliu/rifx/endian"
	"github.com/arloliu/rifx/errs"
	"github.com/arloliu/rifx/format"
	"github.com/arloliu/rifx/internal/collision"
	"github.com/arloliu/rifx/internal/stream"
	"github.com/arloliu/rifx/resource"
	"github.com/arloliu/rifx/section"
)

// ILSResourceID is the ABMP id of the initial-load segment itself.
const ILSResourceID int32 = 2

// Fver versions that add fields to the chunk.
const (
	fverWithDirectorVersion = 0x401
	fverWithVersionString   = 0x501
)

// Compression is one row of the Fcdr compression table.
type Compression struct {
	ID          compress.MoaID
	Kind        format.CompressionKind
	Description string
}

// Info is the metadata read from the Afterburner control chunks.
type Info struct {
	// Version is the Fver chunk version.
	Version uint32
	// MapVersion and ArchiveVersion mirror the imap fields of a classic movie.
	// They are only present for Fver version 0x401 and later.
	MapVersion     uint32
	ArchiveVersion uint32
	HasVersion     bool
	// VersionString is the authoring version text, e.g. "10.1r11".
	VersionString string
	// Compressions is the Fcdr table, indexed by CompressionIndex.
	Compressions []Compression
	// SegmentBase is the absolute offset of the FGEI body. ABMP body offsets
	// are relative to it.
	SegmentBase int64
	// ResourceCount is the number of rows the ABMP table declares.
	ResourceCount uint32
}

// Read parses the Afterburner control chunks of data and fills c with one entry
// per ABMP row and one inline segment per resource stored in the initial-load
// segment.
//
// Recoverable problems (short tables, duplicate ids, unknown compression
// indexes, a damaged initial-load segment) are returned as warnings; entries
// read before the problem stay in c.
//
// Returns:
//   - Info: control chunk metadata
//   - []error: recoverable warnings
//   - error: errs.ErrFormat when a control chunk is missing or unreadable
func Read(data []byte, block section.DataBlock, registry *compress.Registry, c *resource.Container) (Info, []error, error) {
	if !block.Format.IsAfterburner() {
		return Info{}, nil, fmt.Errorf("%w: codec %s is not Afterburner", errs.ErrFormat, block.Format.Codec)
	}

	r := stream.NewReader(data, block.Format.Engine())
	if err := r.Seek(int(block.PayloadStart)); err != nil {
		return Info{}, nil, fmt.Errorf("%w: %w", errs.ErrFormat, err)
	}

	var (
		info     Info
		warnings []error
	)

	if err := readFver(r, &info); err != nil {
		return info, nil, err
	}
	if err := readFcdr(r, registry, &info); err != nil {
		return info, nil, err
	}

	entries, abmpWarnings, err := readABMP(r, registry, &info)
	if err != nil {
		return info, nil, err
	}
	warnings = append(warnings, abmpWarnings...)

	if err := expectTag(r, format.TagFGEI); err != nil {
		return info, warnings, err
	}
	if _, err := r.Varint(); err != nil {
		return info, warnings, fmt.Errorf("%w: FGEI header: %w", errs.ErrFormat, err)
	}
	info.SegmentBase = int64(r.Pos())

	for _, e := range entries {
		e, warn := resolveCompression(e, &info, registry)
		if warn != nil {
			warnings = append(warnings, warn)
		}
		if err := c.Add(e); err != nil {
			warnings = append(warnings, err)
		}
	}

	warnings = append(warnings, readInlineSegments(data, r.Engine(), &info, registry, c)...)

	return info, warnings, nil
}

func expectTag(r *stream.Reader, want format.FourCC) error {
	at := r.Pos()
	tag, err := r.FourCC()
	if err != nil {
		return fmt.Errorf("%w: expected %s at %d: %w", errs.ErrFormat, want, at, err)
	}
	if tag != want {
		return fmt.Errorf("%w: expected %s at %d, found %q", errs.ErrFormat, want, at, tag)
	}

	return nil
}

// readChunkBody reads the tag and varint length of a control chunk and returns
// its body, leaving r positioned after it.
func readChunkBody(r *stream.Reader, tag format.FourCC) ([]byte, error) {
	if err := expectTag(r, tag); err != nil {
		return nil, err
	}

	length, err := r.Varint()
	if err != nil {
		return nil, fmt.Errorf("%w: %s length: %w", errs.ErrFormat, tag, err)
	}

	body, err := r.Bytes(int(length))
	if err != nil {
		return nil, fmt.Errorf("%w: %s body of %d bytes: %w", errs.ErrFormat, tag, length, err)
	}

	return body, nil
}

func readFver(r *stream.Reader, info *Info) error {
	body, err := readChunkBody(r, format.TagFver)
	if err != nil {
		return err
	}

	fr := stream.NewReader(body, r.Engine())
	if info.Version, err = fr.Varint(); err != nil {
		return fmt.Errorf("%w: Fver version: %w", errs.ErrFormat, err)
	}

	if info.Version >= fverWithDirectorVersion {
		if info.MapVersion, err = fr.Varint(); err != nil {
			return fmt.Errorf("%w: Fver map version: %w", errs.ErrFormat, err)
		}
		if info.ArchiveVersion, err = fr.Varint(); err != nil {
			return fmt.Errorf("%w: Fver archive version: %w", errs.ErrFormat, err)
		}
		info.HasVersion = true
	}

	if info.Version >= fverWithVersionString {
		if info.VersionString, err = fr.PascalString(); err != nil {
			return fmt.Errorf("%w: Fver version string: %w", errs.ErrFormat, err)
		}
	}

	return nil
}

func readFcdr(r *stream.Reader, registry *compress.Registry, info *Info) error {
	body, err := readChunkBody(r, format.TagFcdr)
	if err != nil {
		return err
	}

	raw, err := registry.Decode(format.CompressionKindZlib, body, -1)
	if err != nil {
		return fmt.Errorf("%w: Fcdr: %w", errs.ErrFormat, err)
	}

	fr := stream.NewReader(raw, r.Engine())
	count, err := fr.Uint16()
	if err != nil {
		return fmt.Errorf("%w: Fcdr count: %w", errs.ErrFormat, err)
	}

	info.Compressions = make([]Compression, count)
	for i := range info.Compressions {
		b, err := fr.Bytes(compress.MoaIDSize)
		if err != nil {
			return fmt.Errorf("%w: Fcdr id %d: %w", errs.ErrFormat, i, err)
		}
		id, err := compress.ParseMoaID(b, r.Engine())
		if err != nil {
			return fmt.Errorf("%w: Fcdr id %d: %w", errs.ErrFormat, i, err)
		}
		info.Compressions[i] = Compression{ID: id, Kind: registry.Kind(id)}
	}

	// descriptions are informational; older writers omit them
	for i := range info.Compressions {
		desc, err := fr.CString()
		if err != nil {
			break
		}
		info.Compressions[i].Description = desc
	}

	return nil
}

func readABMP(r *stream.Reader, registry *compress.Registry, info *Info) ([]resource.Entry, []error, error) {
	body, err := readChunkBody(r, format.TagABMP)
	if err != nil {
		return nil, nil, err
	}

	br := stream.NewReader(body, r.Engine())
	if _, err := br.Varint(); err != nil { // compression type of the map itself
		return nil, nil, fmt.Errorf("%w: ABMP compression: %w", errs.ErrFormat, err)
	}
	uncompressedLen, err := br.Varint()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: ABMP length: %w", errs.ErrFormat, err)
	}
	compressed, _ := br.Bytes(br.Remaining())

	var warnings []error
	raw, err := registry.Decode(format.CompressionKindZlib, compressed, int(uncompressedLen))
	if err != nil {
		if !errors.Is(err, errs.ErrSizeMismatch) || raw == nil {
			return nil, nil, fmt.Errorf("%w: ABMP: %w", errs.ErrFormat, err)
		}
		warnings = append(warnings, fmt.Errorf("ABMP: %w", err))
	}

	mr := stream.NewReader(raw, r.Engine())
	for range 2 { // two unidentified varints precede the count
		if _, err := mr.Varint(); err != nil {
			return nil, nil, fmt.Errorf("%w: ABMP header: %w", errs.ErrFormat, err)
		}
	}
	count, err := mr.Varint()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: ABMP count: %w", errs.ErrFormat, err)
	}
	info.ResourceCount = count

	tracker := collision.NewTracker()
	entries := make([]resource.Entry, 0, min(count, uint32(mr.Remaining())))
	for i := uint32(0); i < count; i++ {
		e, err := readABMPRow(mr)
		if err != nil {
			warnings = append(warnings, fmt.Errorf("%w: ABMP declares %d rows, %d readable: %w",
				errs.ErrTruncatedStream, count, i, err))

			break
		}
		if err := tracker.Track(e.ID, e.Tag); err != nil {
			warnings = append(warnings, err)
			continue
		}
		entries = append(entries, e)
	}

	return entries, warnings, nil
}

func readABMPRow(r *stream.Reader) (resource.Entry, error) {
	id, err := r.SignedVarint()
	if err != nil {
		return resource.Entry{}, err
	}
	offset, err := r.SignedVarint()
	if err != nil {
		return resource.Entry{}, err
	}
	compSize, err := r.Varint()
	if err != nil {
		return resource.Entry{}, err
	}
	uncompSize, err := r.Varint()
	if err != nil {
		return resource.Entry{}, err
	}
	compIndex, err := r.SignedVarint()
	if err != nil {
		return resource.Entry{}, err
	}
	tag, err := r.FourCC()
	if err != nil {
		return resource.Entry{}, err
	}

	return resource.NewAfterburnerEntry(id, tag, offset, compSize, uncompSize, compIndex), nil
}

// resolveCompression sets the compression kind of e from the Fcdr table.
// A -1 index means stored and never consults the registry.
func resolveCompression(e resource.Entry, info *Info, registry *compress.Registry) (resource.Entry, error) {
	idx := e.CompressionIndex()
	switch {
	case idx < 0:
		return e.SetCompression(format.CompressionKindNone), nil
	case int(idx) < len(info.Compressions):
		comp := info.Compressions[idx]
		e = e.SetCompression(comp.Kind)
		if comp.Kind == format.CompressionKindUnknown {
			return e, errs.NewResourceError(e.ID, e.Tag.String(),
				fmt.Errorf("%w: %s", errs.ErrUnsupportedCompression, registry.Name(comp.ID)))
		}

		return e, nil
	default:
		return e.SetCompression(format.CompressionKindUnknown), errs.NewResourceError(e.ID, e.Tag.String(),
			fmt.Errorf("%w: %d of %d", errs.ErrInvalidCompressionIndex, idx, len(info.Compressions)))
	}
}

// readInlineSegments decodes the initial-load segment and registers the
// payload of every resource stored in it.
func readInlineSegments(data []byte, engine endian.EndianEngine, info *Info, registry *compress.Registry, c *resource.Container) []error {
	ils, ok := c.TryGetEntry(ILSResourceID)
	if !ok {
		for e := range c.Resources() {
			if e.UsesInlineData() {
				return []error{fmt.Errorf("%w: inline resources present but no initial-load segment", errs.ErrTruncatedStream)}
			}
		}

		return nil
	}

	s, _ := ils.Afterburner()
	start := info.SegmentBase + int64(s.BodyOffset)
	end := start + int64(s.CompressedSize)
	if s.BodyOffset < 0 || end > int64(len(data)) {
		return []error{errs.NewResourceError(ils.ID, ils.Tag.String(),
			fmt.Errorf("%w: initial-load segment [%d, %d) past end %d", errs.ErrTruncatedStream, start, end, len(data)))}
	}

	raw := data[start:end]
	var err error
	if s.CompressionIndex >= 0 {
		raw, err = registry.Decode(s.Compression, raw, int(s.UncompressedSize))
	}
	if err != nil && (raw == nil || !errors.Is(err, errs.ErrSizeMismatch)) {
		return []error{errs.NewResourceError(ils.ID, ils.Tag.String(), err)}
	}

	var warnings []error
	if err != nil {
		warnings = append(warnings, errs.NewResourceError(ils.ID, ils.Tag.String(), err))
	}

	tracker := collision.NewTracker()
	ir := stream.NewReader(raw, engine)
	for !ir.EOF() {
		id, err := ir.SignedVarint()
		if err != nil {
			warnings = append(warnings, fmt.Errorf("%w: initial-load segment id at %d: %w", errs.ErrTruncatedStream, ir.Pos(), err))
			break
		}

		e, ok := c.TryGetEntry(id)
		if !ok {
			warnings = append(warnings, fmt.Errorf("%w: initial-load segment references %d", errs.ErrUnknownResource, id))
			break
		}
		es, _ := e.Afterburner()

		payload, err := ir.Bytes(int(es.CompressedSize))
		if err != nil {
			if errors.Is(err, io.ErrUnexpectedEOF) {
				err = errs.ErrTruncatedStream
			}
			warnings = append(warnings, errs.NewResourceError(id, e.Tag.String(), fmt.Errorf("%w: inline payload of %d bytes", err, es.CompressedSize)))

			break
		}

		if err := tracker.Track(id, e.Tag); err != nil {
			warnings = append(warnings, err)
			continue
		}
		if err := c.SetInlineSegment(id, payload); err != nil {
			warnings = append(warnings, err)
		}
	}

	return warnings
}
