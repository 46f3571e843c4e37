// Package compress provides the codecs used to read Afterburner movies and to
// store rifx snapshots.
//
// # Afterburner compression
//
// Afterburner movies name their compression schemes with 16-byte identifiers
// (MoaID) listed in the Fcdr chunk. Each ABMP resource refers to that list by
// index. The Registry maps identifiers to a format.CompressionKind and decodes
// payloads:
//
//   - Zlib: inflated with github.com/klauspost/compress/zlib
//   - None: stored, returned as a copy
//   - Sound, FontMap: passed through; decoding them belongs to the audio and
//     text subsystems
//   - Unknown: passed through so the caller can decide whether to skip the
//     resource or fail
//
// Registries are built from an immutable Table, which keeps them testable with
// injected identifiers:
//
//	reg := compress.NewRegistry(compress.DefaultTable())
//	kind := reg.Kind(id)
//	data, err := reg.Decode(kind, chunk, uncompressedSize)
//
// The uncompressed size comes from the file, so it is never trusted for
// allocation: zlib output is pre-sized relative to the compressed input and
// inflation stops as soon as it passes the declared size.
//
// # Snapshot codecs
//
// The Codec interface is implemented by the general-purpose codecs a snapshot
// can be written with. Snapshot headers record the body length, so bodies are
// decoded through SizedDecompressor:
//
//   - None (format.CompressionNone): PassThroughCodec, a plain copy
//   - Zstd (format.CompressionZstd): best ratio; pure Go by default, cgo
//     binding with the gozstd build tag
//   - S2 (format.CompressionS2): balanced speed and ratio
//   - LZ4 (format.CompressionLZ4): fastest decompression
//
// # Thread Safety
//
// All codecs and Registry values are safe for concurrent use. Encoders and
// decoders that carry state are pooled internally.
package compress
