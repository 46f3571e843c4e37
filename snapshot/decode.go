package snapshot

import (
	"bytes"
	"fmt"

	"github.com/arloliu/rifx/compress"
	"github.com/arloliu/rifx/endian"
	"github.com/arloliu/rifx/errs"
	"github.com/arloliu/rifx/format"
	"github.com/arloliu/rifx/internal/hash"
	"github.com/arloliu/rifx/internal/stream"
	"github.com/arloliu/rifx/resource"
	"github.com/arloliu/rifx/section"
)

// Decode verifies and decodes a snapshot image.
//
// Returns:
//   - *Snapshot: decoded snapshot; payloads are copied out of data
//   - error: errs.ErrInvalidSnapshot for a malformed image,
//     errs.ErrSnapshotChecksum when the body or a payload fails its checksum
func Decode(data []byte) (*Snapshot, error) {
	if len(data) < headerSize {
		return nil, fmt.Errorf("%w: %d bytes, header needs %d", errs.ErrInvalidSnapshot, len(data), headerSize)
	}
	if !bytes.Equal(data[0:4], magic[:]) {
		return nil, fmt.Errorf("%w: bad magic %q", errs.ErrInvalidSnapshot, data[0:4])
	}
	if data[4] != layoutVersion {
		return nil, fmt.Errorf("%w: layout version %d", errs.ErrInvalidSnapshot, data[4])
	}

	engine := endian.GetLittleEndianEngine()
	compression := format.CompressionType(data[5])
	flags := engine.Uint16(data[6:8])
	codecTag := format.FourCC(engine.Uint32(data[8:12]))
	archiveVersion := engine.Uint32(data[12:16])
	mapVersion := engine.Uint32(data[16:20])
	storedLen := int(engine.Uint32(data[20:24]))
	rawLen := int(engine.Uint32(data[24:28]))
	checksum := engine.Uint64(data[28:36])

	stored := data[headerSize:]
	if len(stored) != storedLen {
		return nil, fmt.Errorf("%w: body is %d bytes, header says %d", errs.ErrInvalidSnapshot, len(stored), storedLen)
	}
	if hash.Checksum(stored) != checksum {
		return nil, errs.ErrSnapshotChecksum
	}

	codec, err := compress.GetCodec(compression)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrInvalidSnapshot, err)
	}
	body, err := codec.DecompressSize(stored, rawLen)
	if err != nil {
		return nil, fmt.Errorf("%w: body: %w", errs.ErrInvalidSnapshot, err)
	}

	s := &Snapshot{
		Compression: compression,
		Stats: compress.CompressionStats{
			Algorithm:      compression,
			OriginalSize:   int64(rawLen),
			CompressedSize: int64(storedLen),
		},
		format: section.DataFormat{
			Codec:      format.CodecFromTag(codecTag),
			CodecTag:   codecTag,
			BigEndian:  flags&flagBigEndian != 0,
			MapVersion: mapVersion,
		},
		links: resource.NewContainer(),
	}
	if flags&flagHasArchiveVersion != 0 {
		s.format.SetArchiveVersion(archiveVersion)
	}

	if err := s.decodeBody(stream.NewReader(body, engine)); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Snapshot) decodeBody(r *stream.Reader) error {
	abVersion, err := readString(r)
	if err != nil {
		return invalid("afterburner version", err)
	}
	s.format.AfterburnerVersion = abVersion

	count, err := r.Varint()
	if err != nil {
		return invalid("entry count", err)
	}

	s.records = make([]Record, 0, min(int(count), r.Remaining()))
	s.byID = make(map[int32]int, cap(s.records))
	for i := uint32(0); i < count; i++ {
		rec, err := readRecord(r)
		if err != nil {
			return err
		}
		if _, dup := s.byID[rec.ID]; dup {
			return fmt.Errorf("%w: %w: %d", errs.ErrInvalidSnapshot, errs.ErrDuplicateResource, rec.ID)
		}
		s.byID[rec.ID] = len(s.records)
		s.records = append(s.records, rec)
	}

	linkCount, err := r.Varint()
	if err != nil {
		return invalid("link count", err)
	}
	for range linkCount {
		child, err := r.Int32()
		if err != nil {
			return invalid("link", err)
		}
		parent, err := r.Int32()
		if err != nil {
			return invalid("link", err)
		}
		tag, err := r.FourCC()
		if err != nil {
			return invalid("link", err)
		}
		if err := s.links.AddRelationship(resource.KeyLink{ChildID: child, ParentID: parent, Tag: tag}); err != nil {
			return fmt.Errorf("%w: %w", errs.ErrInvalidSnapshot, err)
		}
	}

	if !r.EOF() {
		return fmt.Errorf("%w: %d trailing bytes", errs.ErrInvalidSnapshot, r.Remaining())
	}

	return nil
}

func readRecord(r *stream.Reader) (Record, error) {
	var (
		rec Record
		err error
	)

	if rec.ID, err = r.Int32(); err != nil {
		return rec, invalid("entry id", err)
	}
	if rec.Tag, err = r.FourCC(); err != nil {
		return rec, invalid("entry tag", err)
	}
	storage, err := r.Uint8()
	if err != nil {
		return rec, invalid("entry storage", err)
	}
	comp, err := r.Uint8()
	if err != nil {
		return rec, invalid("entry compression", err)
	}
	rec.Storage = format.StorageKind(storage)
	rec.Compression = format.CompressionKind(comp)
	if rec.CompressionIndex, err = r.Int32(); err != nil {
		return rec, invalid("compression index", err)
	}
	if rec.Size, err = r.Uint32(); err != nil {
		return rec, invalid("entry size", err)
	}

	status, err := r.Uint8()
	if err != nil {
		return rec, invalid("entry status", err)
	}

	switch status {
	case statusFree:
		rec.Free = true
	case statusFailed:
		if rec.Err, err = readString(r); err != nil {
			return rec, invalid("entry error", err)
		}
	case statusOK:
		sum, err := r.Uint64()
		if err != nil {
			return rec, invalid("payload checksum", err)
		}
		n, err := r.Varint()
		if err != nil {
			return rec, invalid("payload length", err)
		}
		payload, err := r.Bytes(int(n))
		if err != nil {
			return rec, invalid("payload", err)
		}
		if hash.Checksum(payload) != sum {
			return rec, errs.NewResourceError(rec.ID, rec.Tag.String(), errs.ErrSnapshotChecksum)
		}
		rec.Checksum = sum
		rec.payload = bytes.Clone(payload)
	default:
		return rec, fmt.Errorf("%w: entry %d has status %d", errs.ErrInvalidSnapshot, rec.ID, status)
	}

	return rec, nil
}

func readString(r *stream.Reader) (string, error) {
	n, err := r.Varint()
	if err != nil {
		return "", err
	}
	b, err := r.Bytes(int(n))
	if err != nil {
		return "", err
	}

	return string(b), nil
}

func invalid(field string, err error) error {
	return fmt.Errorf("%w: %s: %w", errs.ErrInvalidSnapshot, field, err)
}
