package rifx

import (
	"bytes"
	"fmt"

	"github.com/arloliu/rifx/errs"
	"github.com/arloliu/rifx/format"
	"github.com/arloliu/rifx/resource"
	"github.com/arloliu/rifx/section"
)

// Bytes returns the decoded payload of resource id.
//
// Classic resources are returned as stored, without their chunk header.
// Afterburner resources are read from the initial-load segment or from the
// file, decompressed and checked against their declared size; stored ones
// (compression index -1) are returned unchanged. Payloads using a
// compression this package cannot decode (sound, font map, unknown
// identifiers) are returned still encoded; Entry.Unsupported reports the
// unknown case.
//
// The returned slice is owned by the caller.
//
// Returns:
//   - []byte: decoded payload
//   - error: *errs.ResourceError wrapping errs.ErrUnknownResource,
//     errs.ErrFreeChunkRequested, errs.ErrOffsetOutOfRange,
//     errs.ErrDecompression or errs.ErrSizeMismatch
func (m *Movie) Bytes(id int32) ([]byte, error) {
	e, ok := m.Container.TryGetEntry(id)
	if !ok {
		return nil, errs.NewResourceError(id, "", errs.ErrUnknownResource)
	}
	if e.IsFreeChunk() {
		return nil, errs.NewResourceError(id, e.Tag.String(), errs.ErrFreeChunkRequested)
	}

	var (
		out []byte
		err error
	)
	switch s := e.Storage.(type) {
	case resource.ClassicStorage:
		out, err = m.classicPayload(s)
	case resource.AfterburnerStorage:
		out, err = m.afterburnerPayload(e, s)
	default:
		err = fmt.Errorf("%w: entry has no storage", errs.ErrFormat)
	}
	if err != nil {
		return nil, errs.NewResourceError(id, e.Tag.String(), err)
	}

	return out, nil
}

func (m *Movie) classicPayload(s resource.ClassicStorage) ([]byte, error) {
	start := int64(s.MapOffset) + section.ChunkHeaderSize
	end := start + int64(s.Size)
	if end > int64(len(m.data)) {
		return nil, fmt.Errorf("%w: chunk body [%d, %d), file length %d", errs.ErrOffsetOutOfRange, start, end, len(m.data))
	}

	return bytes.Clone(m.data[start:end]), nil
}

func (m *Movie) afterburnerPayload(e resource.Entry, s resource.AfterburnerStorage) ([]byte, error) {
	var raw []byte
	if e.UsesInlineData() {
		seg, ok := m.Container.TryGetInlineSegment(e.ID)
		if !ok {
			return nil, fmt.Errorf("%w: inline payload missing from the initial-load segment", errs.ErrTruncatedStream)
		}
		raw = seg
	} else {
		start := m.segmentBase + int64(s.BodyOffset)
		end := start + int64(s.CompressedSize)
		if end > int64(len(m.data)) {
			return nil, fmt.Errorf("%w: segment [%d, %d), file length %d", errs.ErrOffsetOutOfRange, start, end, len(m.data))
		}
		raw = m.data[start:end]
	}

	// stored entries bypass the registry and keep their bytes as written
	if s.CompressionIndex < 0 {
		return bytes.Clone(raw), nil
	}
	if s.Compression == format.CompressionKindUnknown && m.cfg.strict {
		return nil, fmt.Errorf("%w: compression index %d", errs.ErrUnsupportedCompression, s.CompressionIndex)
	}

	return m.cfg.registry.Decode(s.Compression, raw, int(s.UncompressedSize))
}
