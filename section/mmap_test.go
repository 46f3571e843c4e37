package section

import (
	"testing"

	"github.com/arloliu/rifx/endian"
	"github.com/arloliu/rifx/errs"
	"github.com/arloliu/rifx/format"
	"github.com/stretchr/testify/require"
)

func sampleMmap(entrySize uint16, n int) MmapBlock {
	block := MmapBlock{
		HeaderSize:    MmapHeaderSize,
		EntrySize:     entrySize,
		EntryCountMax: uint32(n + 2), //nolint: gosec
		EntryCount:    uint32(n),     //nolint: gosec
		JunkHead:      -1,
		JunkHead2:     -1,
		FreeHead:      int32(n - 1), //nolint: gosec
	}
	for i := range n {
		tag := format.MakeFourCC("CASt")
		if i == n-1 {
			tag = format.TagFree
		}
		block.Entries = append(block.Entries, MmapEntry{
			Tag:        tag,
			Size:       uint32(i * 10),  //nolint: gosec
			Offset:     uint32(i * 100), //nolint: gosec
			Flags:      uint16(i),       //nolint: gosec
			Attributes: 0x0C,
			NextFree:   -1,
		})
	}

	return block
}

func TestParseMmap(t *testing.T) {
	tests := []struct {
		name      string
		entrySize uint16
		rows      int
		engine    endian.EndianEngine
	}{
		{name: "big-endian 20-byte rows", entrySize: 20, rows: 5, engine: endian.GetBigEndianEngine()},
		{name: "little-endian 20-byte rows", entrySize: 20, rows: 5, engine: endian.GetLittleEndianEngine()},
		{name: "padded rows", entrySize: 24, rows: 7, engine: endian.GetBigEndianEngine()},
		{name: "no rows", entrySize: 20, rows: 0, engine: endian.GetBigEndianEngine()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			original := sampleMmap(tt.entrySize, tt.rows)
			data := append(make([]byte, 16), original.Bytes(tt.engine)...)

			parsed, err := ParseMmap(data, 16, tt.engine)
			require.NoError(t, err)
			require.Equal(t, original.EntrySize, parsed.EntrySize)
			require.Equal(t, original.EntryCount, parsed.EntryCount)
			require.Equal(t, original.FreeHead, parsed.FreeHead)
			require.Len(t, parsed.Entries, int(parsed.EntryCount))
			if tt.rows > 0 {
				require.Equal(t, original.Entries, parsed.Entries)
				require.True(t, parsed.Entries[tt.rows-1].IsFree())
				require.False(t, parsed.Entries[0].IsFree())
			}
		})
	}
}

func TestParseMmap_Truncated(t *testing.T) {
	engine := endian.GetBigEndianEngine()
	original := sampleMmap(24, 10)
	data := original.Bytes(engine)

	// keep 6 full rows and half of the 7th
	rowsStart := ChunkHeaderSize + MmapHeaderSize
	cut := data[:rowsStart+6*24+12]

	parsed, err := ParseMmap(cut, 0, engine)
	require.ErrorIs(t, err, errs.ErrTruncatedStream)
	require.Len(t, parsed.Entries, 6, "floor(available / EntrySize) rows")
	require.Equal(t, original.Entries[:6], parsed.Entries)
	require.Equal(t, uint32(10), parsed.EntryCount, "declared count is kept")
}

func TestParseMmap_Errors(t *testing.T) {
	engine := endian.GetBigEndianEngine()

	t.Run("Not mmap", func(t *testing.T) {
		data := AppendChunk(nil, format.TagImap, make([]byte, 40), engine)
		_, err := ParseMmap(data, 0, engine)
		require.ErrorIs(t, err, errs.ErrFormat)
	})

	t.Run("Offset past end", func(t *testing.T) {
		_, err := ParseMmap(make([]byte, 10), 8, engine)
		require.ErrorIs(t, err, errs.ErrFormat)
	})

	t.Run("Header cut short", func(t *testing.T) {
		data := sampleMmap(20, 1).Bytes(engine)
		_, err := ParseMmap(data[:ChunkHeaderSize+10], 0, engine)
		require.ErrorIs(t, err, errs.ErrFormat)
	})

	t.Run("Entry size too small", func(t *testing.T) {
		data := sampleMmap(20, 1).Bytes(engine)
		engine.PutUint16(data[ChunkHeaderSize+2:], 12)
		_, err := ParseMmap(data, 0, engine)
		require.ErrorIs(t, err, errs.ErrFormat)
	})
}
