package section

import (
	"fmt"

	"github.com/arloliu/rifx/endian"
	"github.com/arloliu/rifx/errs"
	"github.com/arloliu/rifx/format"
)

// KeyEntry is one row of the KEY* table: the resource ChildID is owned by the
// resource (usually a cast) ParentID.
type KeyEntry struct {
	ChildID  int32         // byte offset 0-3
	ParentID int32         // byte offset 4-7
	Tag      format.FourCC // byte offset 8-11, tag of the child resource
}

// KeyTable is the decoded body of a KEY* chunk.
type KeyTable struct {
	EntrySize  uint16
	EntrySize2 uint16
	CountMax   uint32
	Count      uint32
	Entries    []KeyEntry
}

// ParseKeyTable parses the body of a KEY* chunk (without its tag and length).
//
// Returns every complete row and an error wrapping errs.ErrTruncatedStream when
// the declared count runs past the end of body.
func ParseKeyTable(body []byte, engine endian.EndianEngine) (KeyTable, error) {
	if len(body) < KeyHeaderSize {
		return KeyTable{}, fmt.Errorf("%w: KEY* header needs %d bytes, got %d", errs.ErrTruncatedStream, KeyHeaderSize, len(body))
	}

	table := KeyTable{
		EntrySize:  engine.Uint16(body[0:2]),
		EntrySize2: engine.Uint16(body[2:4]),
		CountMax:   engine.Uint32(body[4:8]),
		Count:      engine.Uint32(body[8:12]),
	}

	stride := int64(table.EntrySize)
	if stride < KeyEntrySize {
		stride = KeyEntrySize
	}

	available := int64(len(body) - KeyHeaderSize)
	count := int64(table.Count)
	var truncErr error
	if count*stride > available {
		count = available / stride
		truncErr = fmt.Errorf("%w: KEY* declares %d rows, %d complete rows available",
			errs.ErrTruncatedStream, table.Count, count)
	}

	table.Entries = make([]KeyEntry, count)
	for i := range count {
		row := body[KeyHeaderSize+i*stride:]
		table.Entries[i] = KeyEntry{
			ChildID:  int32(engine.Uint32(row[0:4])), //nolint: gosec
			ParentID: int32(engine.Uint32(row[4:8])), //nolint: gosec
			Tag:      format.FourCC(engine.Uint32(row[8:12])),
		}
	}

	return table, truncErr
}

// Bytes serializes the KEY* table body.
func (t KeyTable) Bytes(engine endian.EndianEngine) []byte {
	body := make([]byte, 0, KeyHeaderSize+len(t.Entries)*KeyEntrySize)
	body = engine.AppendUint16(body, KeyEntrySize)
	body = engine.AppendUint16(body, KeyEntrySize)
	body = engine.AppendUint32(body, t.CountMax)
	body = engine.AppendUint32(body, t.Count)

	for _, e := range t.Entries {
		body = engine.AppendUint32(body, uint32(e.ChildID))  //nolint: gosec
		body = engine.AppendUint32(body, uint32(e.ParentID)) //nolint: gosec
		body = engine.AppendUint32(body, uint32(e.Tag))
	}

	return body
}
