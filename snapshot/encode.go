package snapshot

import (
	"errors"

	"github.com/arloliu/rifx"
	"github.com/arloliu/rifx/compress"
	"github.com/arloliu/rifx/endian"
	"github.com/arloliu/rifx/format"
	"github.com/arloliu/rifx/internal/hash"
	"github.com/arloliu/rifx/internal/options"
	"github.com/arloliu/rifx/internal/pool"
	"github.com/arloliu/rifx/internal/stream"
)

type encodeConfig struct {
	compression format.CompressionType
}

// Option configures Encode.
type Option = options.Option[*encodeConfig]

// WithCompression sets the codec used for the snapshot body. The default is Zstd.
func WithCompression(c format.CompressionType) Option {
	return options.New("WithCompression", func(cfg *encodeConfig) error {
		if _, err := compress.GetCodec(c); err != nil {
			return err
		}
		cfg.compression = c

		return nil
	})
}

// Encode resolves every payload of m and returns the snapshot image together
// with the compression statistics of its body.
//
// Resources that fail to resolve are stored with their error message, so the
// snapshot reproduces the movie's per-resource failures.
func Encode(m *rifx.Movie, opts ...Option) ([]byte, compress.CompressionStats, error) {
	cfg := &encodeConfig{compression: format.CompressionZstd}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, compress.CompressionStats{}, err
	}
	if m == nil || m.Container == nil {
		return nil, compress.CompressionStats{}, errors.New("snapshot: nil movie")
	}

	engine := endian.GetLittleEndianEngine()

	bb := pool.GetSnapshotBuffer()
	defer pool.PutSnapshotBuffer(bb)

	body := bb.B
	body = appendString(body, m.Format.AfterburnerVersion)

	entries := m.Container.Entries()
	body = stream.AppendVarint(body, uint32(len(entries))) //nolint: gosec
	for _, e := range entries {
		body = engine.AppendUint32(body, uint32(e.ID)) //nolint: gosec
		body = engine.AppendUint32(body, uint32(e.Tag))
		body = append(body, uint8(e.StorageKind()), uint8(e.Compression()))
		body = engine.AppendUint32(body, uint32(e.CompressionIndex())) //nolint: gosec
		body = engine.AppendUint32(body, e.Size())

		if e.IsFreeChunk() {
			body = append(body, statusFree)
			continue
		}

		payload, err := m.Bytes(e.ID)
		if err != nil {
			body = append(body, statusFailed)
			body = appendString(body, err.Error())

			continue
		}
		body = append(body, statusOK)
		body = engine.AppendUint64(body, hash.Checksum(payload))
		body = stream.AppendVarint(body, uint32(len(payload))) //nolint: gosec
		body = append(body, payload...)
	}

	links := m.Container.Links()
	body = stream.AppendVarint(body, uint32(len(links))) //nolint: gosec
	for _, l := range links {
		body = engine.AppendUint32(body, uint32(l.ChildID))  //nolint: gosec
		body = engine.AppendUint32(body, uint32(l.ParentID)) //nolint: gosec
		body = engine.AppendUint32(body, uint32(l.Tag))
	}
	bb.B = body

	codec, err := compress.GetCodec(cfg.compression)
	if err != nil {
		return nil, compress.CompressionStats{}, err
	}
	stored, err := codec.Compress(body)
	if err != nil {
		return nil, compress.CompressionStats{}, err
	}

	var flags uint16
	if m.Format.BigEndian {
		flags |= flagBigEndian
	}
	if m.Format.HasArchiveVersion() {
		flags |= flagHasArchiveVersion
	}

	out := make([]byte, 0, headerSize+len(stored))
	out = append(out, magic[:]...)
	out = append(out, layoutVersion, uint8(cfg.compression))
	out = engine.AppendUint16(out, flags)
	out = engine.AppendUint32(out, uint32(m.Format.CodecTag))
	out = engine.AppendUint32(out, m.Format.ArchiveVersion())
	out = engine.AppendUint32(out, m.Format.MapVersion)
	out = engine.AppendUint32(out, uint32(len(stored))) //nolint: gosec
	out = engine.AppendUint32(out, uint32(len(body)))   //nolint: gosec
	out = engine.AppendUint64(out, hash.Checksum(stored))
	out = append(out, stored...)

	stats := compress.CompressionStats{
		Algorithm:      cfg.compression,
		OriginalSize:   int64(len(body)),
		CompressedSize: int64(len(stored)),
	}

	return out, stats, nil
}

func appendString(dst []byte, s string) []byte {
	dst = stream.AppendVarint(dst, uint32(len(s))) //nolint: gosec
	return append(dst, s...)
}
