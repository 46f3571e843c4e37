// Package snapshot stores a parsed movie as a compact, checksummed binary image.
//
// A snapshot keeps the format metadata, every resource entry, the KEY*
// relationships and the resolved payload of each resource, so fixtures and
// caches can be served without re-parsing or re-inflating the original movie.
//
// # Layout
//
// All integers are little-endian.
//
//	offset  size  field
//	0       4     magic "RFXS"
//	4       1     layout version
//	5       1     body compression (format.CompressionType)
//	6       2     flags
//	8       4     movie codec tag
//	12      4     archive-version marker
//	16      4     map version
//	20      4     stored body length
//	24      4     raw body length
//	28      8     xxHash64 of the stored body
//	36      ...   body
//
// The body lists the entries, their payloads with one xxHash64 each, and the
// relationship table. It is compressed as a whole with None, Zstd, S2 or LZ4.
package snapshot

import (
	"fmt"

	"github.com/arloliu/rifx/compress"
	"github.com/arloliu/rifx/errs"
	"github.com/arloliu/rifx/format"
	"github.com/arloliu/rifx/resource"
	"github.com/arloliu/rifx/section"
)

const (
	headerSize    = 36
	layoutVersion = 1
)

var magic = [4]byte{'R', 'F', 'X', 'S'}

// header flags
const (
	flagBigEndian uint16 = 1 << iota
	flagHasArchiveVersion
)

// record status
const (
	statusOK uint8 = iota
	statusFree
	statusFailed
)

// Record is one resource entry stored in a snapshot.
type Record struct {
	ID               int32
	Tag              format.FourCC
	Storage          format.StorageKind
	Compression      format.CompressionKind
	CompressionIndex int32
	// Size is the declared decoded size of the resource.
	Size uint32
	Free bool
	// Err is the message of the error the payload resolver returned, if any.
	Err string
	// Checksum is the xxHash64 of the payload.
	Checksum uint64

	payload []byte
}

// Snapshot is a decoded, read-only snapshot.
type Snapshot struct {
	Compression format.CompressionType
	Stats       compress.CompressionStats

	format  section.DataFormat
	records []Record
	byID    map[int32]int
	links   *resource.Container
}

// Format returns the format metadata of the original movie.
func (s *Snapshot) Format() section.DataFormat {
	return s.format
}

// Records returns the stored entries in map order.
func (s *Snapshot) Records() []Record {
	return s.records
}

// Len returns the number of stored entries.
func (s *Snapshot) Len() int {
	return len(s.records)
}

// Record returns the entry with the given id.
func (s *Snapshot) Record(id int32) (Record, bool) {
	i, ok := s.byID[id]
	if !ok {
		return Record{}, false
	}

	return s.records[i], true
}

// Bytes returns the payload of resource id. It fails the same way the payload
// resolver of the original movie did.
func (s *Snapshot) Bytes(id int32) ([]byte, error) {
	r, ok := s.Record(id)
	if !ok {
		return nil, errs.NewResourceError(id, "", errs.ErrUnknownResource)
	}
	if r.Free {
		return nil, errs.NewResourceError(id, r.Tag.String(), errs.ErrFreeChunkRequested)
	}
	if r.Err != "" {
		return nil, errs.NewResourceError(id, r.Tag.String(), fmt.Errorf("recorded failure: %s", r.Err))
	}

	return append([]byte(nil), r.payload...), nil
}

// Links returns the KEY* relationships in table order.
func (s *Snapshot) Links() []resource.KeyLink {
	return s.links.Links()
}

// Parent returns the id linked above child.
func (s *Snapshot) Parent(child int32) (int32, bool) {
	return s.links.ParentByChild(child)
}

// Children returns the ids linked below parent.
func (s *Snapshot) Children(parent int32) []int32 {
	return s.links.ChildrenByParent(parent)
}
