package resource

import (
	"github.com/arloliu/rifx/format"
)

// Storage is where an entry's bytes live. It is implemented only by
// ClassicStorage and AfterburnerStorage.
type Storage interface {
	Kind() format.StorageKind
	isStorage()
}

// ClassicStorage locates a chunk through the mmap table.
type ClassicStorage struct {
	// Size is the chunk body length.
	Size uint32
	// MapOffset is the absolute offset of the chunk tag.
	MapOffset uint32
	Flags      uint16
	Attributes uint16
	NextFree   int32
}

func (ClassicStorage) Kind() format.StorageKind { return format.ClassicChunk }
func (ClassicStorage) isStorage()               {}

// AfterburnerStorage locates a resource through the ABMP table.
type AfterburnerStorage struct {
	// BodyOffset is relative to the start of the FGEI segment body. A negative
	// offset marks a resource stored inline in the initial-load segment.
	BodyOffset       int32
	CompressedSize   uint32
	UncompressedSize uint32
	// CompressionIndex indexes the Fcdr compression table; -1 means stored.
	CompressionIndex int32
	// Compression is the kind CompressionIndex resolved to.
	Compression format.CompressionKind
}

func (AfterburnerStorage) Kind() format.StorageKind { return format.AfterburnerSegment }
func (AfterburnerStorage) isStorage()               {}

// Entry is the normalized record of one resource, whichever map it came from.
type Entry struct {
	ID      int32
	Tag     format.FourCC
	Storage Storage
}

// NewClassicEntry builds an entry for an mmap row.
func NewClassicEntry(id int32, tag format.FourCC, size, mapOffset uint32, flags, attributes uint16, nextFree int32) Entry {
	return Entry{
		ID:  id,
		Tag: tag,
		Storage: ClassicStorage{
			Size:       size,
			MapOffset:  mapOffset,
			Flags:      flags,
			Attributes: attributes,
			NextFree:   nextFree,
		},
	}
}

// NewAfterburnerEntry builds an entry for an ABMP row. The compression kind is
// None for stored entries and Unknown until SetCompression resolves the index.
func NewAfterburnerEntry(id int32, tag format.FourCC, bodyOffset int32, compressedSize, uncompressedSize uint32, compressionIndex int32) Entry {
	kind := format.CompressionKindUnknown
	if compressionIndex < 0 {
		kind = format.CompressionKindNone
	}

	return Entry{
		ID:  id,
		Tag: tag,
		Storage: AfterburnerStorage{
			BodyOffset:       bodyOffset,
			CompressedSize:   compressedSize,
			UncompressedSize: uncompressedSize,
			CompressionIndex: compressionIndex,
			Compression:      kind,
		},
	}
}

// StorageKind returns the storage variant of e.
func (e Entry) StorageKind() format.StorageKind {
	if e.Storage == nil {
		return 0
	}

	return e.Storage.Kind()
}

// Classic returns the classic storage of e.
func (e Entry) Classic() (ClassicStorage, bool) {
	s, ok := e.Storage.(ClassicStorage)
	return s, ok
}

// Afterburner returns the Afterburner storage of e.
func (e Entry) Afterburner() (AfterburnerStorage, bool) {
	s, ok := e.Storage.(AfterburnerStorage)
	return s, ok
}

// CompressionIndex returns the Fcdr index of e, or -1 for classic and stored entries.
func (e Entry) CompressionIndex() int32 {
	if s, ok := e.Afterburner(); ok {
		return s.CompressionIndex
	}

	return -1
}

// Compression returns the compression kind of e. Classic chunks are stored.
func (e Entry) Compression() format.CompressionKind {
	if s, ok := e.Afterburner(); ok {
		return s.Compression
	}

	return format.CompressionKindNone
}

// Unsupported reports whether e uses a compression scheme this package cannot
// decode. Its payload is returned still encoded.
func (e Entry) Unsupported() bool {
	return e.Compression() == format.CompressionKindUnknown
}

// SetCompression returns a copy of e with its compression kind set. Classic
// entries are returned unchanged.
func (e Entry) SetCompression(kind format.CompressionKind) Entry {
	if s, ok := e.Afterburner(); ok {
		s.Compression = kind
		e.Storage = s
	}

	return e
}

// UsesInlineData reports whether e is stored in the initial-load segment.
func (e Entry) UsesInlineData() bool {
	s, ok := e.Afterburner()
	return ok && s.BodyOffset < 0
}

// IsFreeChunk reports whether e is a free or junk slot.
func (e Entry) IsFreeChunk() bool {
	return e.Tag.IsFree()
}

// Size returns the size of the decoded payload: the chunk length for classic
// entries and the uncompressed size for Afterburner entries.
func (e Entry) Size() uint32 {
	switch s := e.Storage.(type) {
	case ClassicStorage:
		return s.Size
	case AfterburnerStorage:
		return s.UncompressedSize
	default:
		return 0
	}
}
