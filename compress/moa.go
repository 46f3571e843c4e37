package compress

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/arloliu/rifx/endian"
)

// MoaIDSize is the on-disk size of a compression identifier.
const MoaIDSize = 16

// MoaID is the 16-byte GUID Director uses to name a compression scheme.
// The first three fields follow the byte order of the movie; the trailing
// eight bytes are stored as-is.
type MoaID struct {
	Data1 uint32
	Data2 uint16
	Data3 uint16
	Data4 [8]byte
}

// ParseMoaID decodes a MoaID from the first 16 bytes of data.
func ParseMoaID(data []byte, engine endian.EndianEngine) (MoaID, error) {
	if len(data) < MoaIDSize {
		return MoaID{}, fmt.Errorf("moa id needs %d bytes, got %d", MoaIDSize, len(data))
	}

	id := MoaID{
		Data1: engine.Uint32(data[0:4]),
		Data2: engine.Uint16(data[4:6]),
		Data3: engine.Uint16(data[6:8]),
	}
	copy(id.Data4[:], data[8:16])

	return id, nil
}

// AppendBytes appends the on-disk form of id to dst.
func (id MoaID) AppendBytes(dst []byte, engine endian.EndianEngine) []byte {
	dst = engine.AppendUint32(dst, id.Data1)
	dst = engine.AppendUint16(dst, id.Data2)
	dst = engine.AppendUint16(dst, id.Data3)

	return append(dst, id.Data4[:]...)
}

func (id MoaID) String() string {
	return fmt.Sprintf("%08X-%04X-%04X-%02X%02X-%02X%02X%02X%02X%02X%02X",
		id.Data1, id.Data2, id.Data3,
		id.Data4[0], id.Data4[1], id.Data4[2], id.Data4[3],
		id.Data4[4], id.Data4[5], id.Data4[6], id.Data4[7])
}

// ParseMoaIDString parses the text form produced by MoaID.String. Dashes are
// optional and hex digits are case-insensitive.
func ParseMoaIDString(s string) (MoaID, error) {
	raw, err := hex.DecodeString(strings.ReplaceAll(strings.TrimSpace(s), "-", ""))
	if err != nil {
		return MoaID{}, fmt.Errorf("invalid moa id %q: %w", s, err)
	}
	if len(raw) != MoaIDSize {
		return MoaID{}, fmt.Errorf("invalid moa id %q: %d bytes", s, len(raw))
	}

	return ParseMoaID(raw, endian.GetBigEndianEngine())
}

// Compression identifiers written by Director.
var (
	ZlibMoaID    = MoaID{0xAC99E904, 0x0070, 0x0B36, [8]byte{0x00, 0x00, 0x08, 0x00, 0x07, 0x2C, 0x63, 0x26}}
	SoundMoaID   = MoaID{0x7204A889, 0xAFD0, 0x11CF, [8]byte{0xA2, 0x22, 0x00, 0xA0, 0x24, 0x53, 0x44, 0x4C}}
	NullMoaID    = MoaID{0xAC99982E, 0x005D, 0x0D50, [8]byte{0x00, 0x00, 0x08, 0x00, 0x07, 0x37, 0x7A, 0x34}}
	FontMapMoaID = MoaID{0x8A4679A1, 0x3720, 0x11D0, [8]byte{0x92, 0x23, 0x00, 0xA0, 0xC9, 0x08, 0x68, 0x0B}}
)
