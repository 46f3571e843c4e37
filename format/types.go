package format

import "fmt"

type (
	// FourCC is a four-character chunk tag held in its big-endian numeric form,
	// so FourCC("RIFX") is 0x52494658 regardless of the file's byte order.
	FourCC uint32

	Codec           uint8
	CompressionKind uint8
	StorageKind     uint8
	CompressionType uint8
)

// MakeFourCC builds a FourCC from a 4-character string. Shorter strings are
// padded with spaces, longer ones are truncated.
func MakeFourCC(s string) FourCC {
	var b [4]byte
	for i := range b {
		b[i] = ' '
		if i < len(s) {
			b[i] = s[i]
		}
	}

	return FourCC(uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3]))
}

func (f FourCC) String() string {
	return string([]byte{byte(f >> 24), byte(f >> 16), byte(f >> 8), byte(f)})
}

// Chunk tags used by the container reader.
var (
	TagRIFX = MakeFourCC("RIFX")
	TagImap = MakeFourCC("imap")
	TagMmap = MakeFourCC("mmap")
	TagKey  = MakeFourCC("KEY*")
	TagFree = MakeFourCC("free")
	TagJunk = MakeFourCC("junk")
	TagFver = MakeFourCC("Fver")
	TagFcdr = MakeFourCC("Fcdr")
	TagABMP = MakeFourCC("ABMP")
	TagFGEI = MakeFourCC("FGEI")
	TagILS  = MakeFourCC("ILS ")
)

// IsFree reports whether tag marks a free-list or junk slot in the memory map.
func (f FourCC) IsFree() bool {
	return f == TagFree || f == TagJunk
}

const (
	CodecUnknown Codec = 0x0 // CodecUnknown represents an unrecognized codec tag.
	CodecMV93    Codec = 0x1 // CodecMV93 represents a Director movie.
	CodecMC95    Codec = 0x2 // CodecMC95 represents an external cast.
	CodecAPPL    Codec = 0x3 // CodecAPPL represents a projector.
	CodecFGDM    Codec = 0x4 // CodecFGDM represents an Afterburner (Shockwave) movie.
	CodecFGDC    Codec = 0x5 // CodecFGDC represents an Afterburner (Shockwave) cast.

	CompressionKindNone    CompressionKind = 0x0 // CompressionKindNone represents stored data.
	CompressionKindZlib    CompressionKind = 0x1 // CompressionKindZlib represents zlib streams.
	CompressionKindSound   CompressionKind = 0x2 // CompressionKindSound represents Shockwave audio.
	CompressionKindFontMap CompressionKind = 0x3 // CompressionKindFontMap represents the font map codec.
	CompressionKindUnknown CompressionKind = 0x4 // CompressionKindUnknown represents an unrecognized identifier.

	ClassicChunk       StorageKind = 0x1 // ClassicChunk represents a chunk addressed by the mmap table.
	AfterburnerSegment StorageKind = 0x2 // AfterburnerSegment represents a resource addressed by ABMP.

	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

var codecTags = map[FourCC]Codec{
	MakeFourCC("MV93"): CodecMV93,
	MakeFourCC("MC95"): CodecMC95,
	MakeFourCC("APPL"): CodecAPPL,
	MakeFourCC("FGDM"): CodecFGDM,
	MakeFourCC("FGDC"): CodecFGDC,
}

// CodecFromTag maps a codec tag to a Codec. Unrecognized tags map to CodecUnknown.
func CodecFromTag(tag FourCC) Codec {
	if c, ok := codecTags[tag]; ok {
		return c
	}

	return CodecUnknown
}

// Tag returns the FourCC written for c. CodecUnknown has no tag and returns 0.
func (c Codec) Tag() FourCC {
	for tag, codec := range codecTags {
		if codec == c {
			return tag
		}
	}

	return 0
}

// IsAfterburner reports whether c is one of the compressed Afterburner codecs.
func (c Codec) IsAfterburner() bool {
	return c == CodecFGDM || c == CodecFGDC
}

func (c Codec) String() string {
	switch c {
	case CodecMV93:
		return "MV93"
	case CodecMC95:
		return "MC95"
	case CodecAPPL:
		return "APPL"
	case CodecFGDM:
		return "FGDM"
	case CodecFGDC:
		return "FGDC"
	default:
		return "Unknown"
	}
}

func (k CompressionKind) String() string {
	switch k {
	case CompressionKindNone:
		return "None"
	case CompressionKindZlib:
		return "Zlib"
	case CompressionKindSound:
		return "Sound"
	case CompressionKindFontMap:
		return "FontMap"
	default:
		return "Unknown"
	}
}

func (s StorageKind) String() string {
	switch s {
	case ClassicChunk:
		return "Classic"
	case AfterburnerSegment:
		return "Afterburner"
	default:
		return fmt.Sprintf("StorageKind(%d)", uint8(s))
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// ParseCompressionType maps a case-sensitive lowercase name to a CompressionType.
func ParseCompressionType(name string) (CompressionType, error) {
	switch name {
	case "none":
		return CompressionNone, nil
	case "zstd":
		return CompressionZstd, nil
	case "s2":
		return CompressionS2, nil
	case "lz4":
		return CompressionLZ4, nil
	default:
		return 0, fmt.Errorf("unknown compression type: %s", name)
	}
}
