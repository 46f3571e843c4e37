package compress

import (
	"errors"
	"fmt"

	"github.com/arloliu/rifx/errs"
	"github.com/arloliu/rifx/format"
)

// TableEntry binds one compression identifier to the kind that decodes it.
type TableEntry struct {
	ID   MoaID
	Kind format.CompressionKind
	Name string
}

// Table is an ordered, read-only list of known compression identifiers.
type Table []TableEntry

var defaultTable = Table{
	{ID: ZlibMoaID, Kind: format.CompressionKindZlib, Name: "zlib"},
	{ID: SoundMoaID, Kind: format.CompressionKindSound, Name: "sound"},
	{ID: NullMoaID, Kind: format.CompressionKindNone, Name: "none"},
	{ID: FontMapMoaID, Kind: format.CompressionKindFontMap, Name: "font map"},
}

// DefaultTable returns a copy of the identifiers written by Director.
func DefaultTable() Table {
	return append(Table(nil), defaultTable...)
}

// Registry resolves compression identifiers to kinds and decodes payloads.
//
// A Registry is immutable after NewRegistry and safe for concurrent use.
type Registry struct {
	kinds  map[MoaID]format.CompressionKind
	names  map[MoaID]string
	codecs map[format.CompressionKind]Decompressor
}

// NewRegistry builds a registry from table. Later duplicates of an identifier
// are ignored.
func NewRegistry(table Table) *Registry {
	r := &Registry{
		kinds: make(map[MoaID]format.CompressionKind, len(table)),
		names: make(map[MoaID]string, len(table)),
		codecs: map[format.CompressionKind]Decompressor{
			format.CompressionKindNone:    NewPassThroughCodec(),
			format.CompressionKindZlib:    NewZlibCodec(),
			format.CompressionKindSound:   NewPassThroughCodec(),
			format.CompressionKindFontMap: NewPassThroughCodec(),
			format.CompressionKindUnknown: NewPassThroughCodec(),
		},
	}

	for _, e := range table {
		if _, ok := r.kinds[e.ID]; ok {
			continue
		}
		r.kinds[e.ID] = e.Kind
		r.names[e.ID] = e.Name
	}

	return r
}

// DefaultRegistry returns a registry over DefaultTable.
func DefaultRegistry() *Registry {
	return NewRegistry(defaultTable)
}

// Kind resolves id. Unregistered identifiers resolve to CompressionKindUnknown.
func (r *Registry) Kind(id MoaID) format.CompressionKind {
	if kind, ok := r.kinds[id]; ok {
		return kind
	}

	return format.CompressionKindUnknown
}

// Name returns the registered display name of id, or its GUID string.
func (r *Registry) Name(id MoaID) string {
	if name, ok := r.names[id]; ok {
		return name
	}

	return id.String()
}

// Decompressor returns the codec used for kind.
func (r *Registry) Decompressor(kind format.CompressionKind) Decompressor {
	if d, ok := r.codecs[kind]; ok {
		return d
	}

	return r.codecs[format.CompressionKindUnknown]
}

// VerifiesSize reports whether payloads of kind decode to their declared
// uncompressed size at this layer. Sound, font map and unknown payloads are
// passed through still encoded.
func VerifiesSize(kind format.CompressionKind) bool {
	return kind == format.CompressionKindNone || kind == format.CompressionKindZlib
}

// Decode decodes data according to kind.
//
// For kinds that VerifiesSize, expected is the declared uncompressed size:
// decoding stops once the output passes it and a different length fails with
// errs.ErrSizeMismatch. When the stream ends early, the short output is
// returned with the error so callers can recover what was decoded. A negative
// expected skips the check. Pass-through kinds return a copy of data. Corrupt
// streams fail with errs.ErrDecompression.
func (r *Registry) Decode(kind format.CompressionKind, data []byte, expected int) ([]byte, error) {
	var (
		out []byte
		err error
	)

	d := r.Decompressor(kind)
	verify := expected >= 0 && VerifiesSize(kind)
	if sized, ok := d.(SizedDecompressor); ok && verify {
		out, err = sized.DecompressSize(data, expected)
	} else {
		out, err = d.Decompress(data)
	}
	if err != nil {
		if errors.Is(err, errs.ErrSizeMismatch) {
			return out, err
		}

		return nil, fmt.Errorf("%w: %s: %w", errs.ErrDecompression, kind, err)
	}

	if verify && len(out) > expected {
		return nil, sizeMismatch(expected, len(out))
	}
	if verify && len(out) != expected {
		return out, sizeMismatch(expected, len(out))
	}

	return out, nil
}

// WithDecompressor returns a copy of r that decodes kind with d.
func (r *Registry) WithDecompressor(kind format.CompressionKind, d Decompressor) *Registry {
	clone := &Registry{
		kinds:  r.kinds,
		names:  r.names,
		codecs: make(map[format.CompressionKind]Decompressor, len(r.codecs)+1),
	}
	for k, v := range r.codecs {
		clone.codecs[k] = v
	}
	clone.codecs[kind] = d

	return clone
}
