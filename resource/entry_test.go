package resource

import (
	"testing"

	"github.com/arloliu/rifx/format"
	"github.com/stretchr/testify/require"
)

func TestNewClassicEntry(t *testing.T) {
	e := NewClassicEntry(3, format.MakeFourCC("CASt"), 120, 0x400, 0x1, 0xC, -1)

	require.Equal(t, format.ClassicChunk, e.StorageKind())
	require.Equal(t, int32(-1), e.CompressionIndex())
	require.Equal(t, format.CompressionKindNone, e.Compression())
	require.False(t, e.UsesInlineData())
	require.False(t, e.IsFreeChunk())
	require.False(t, e.Unsupported())
	require.Equal(t, uint32(120), e.Size())

	s, ok := e.Classic()
	require.True(t, ok)
	require.Equal(t, uint32(0x400), s.MapOffset)
	require.Equal(t, int32(-1), s.NextFree)

	_, ok = e.Afterburner()
	require.False(t, ok)

	require.Equal(t, e, e.SetCompression(format.CompressionKindZlib), "classic entries ignore compression")
}

func TestNewAfterburnerEntry(t *testing.T) {
	t.Run("Compressed file-backed", func(t *testing.T) {
		e := NewAfterburnerEntry(10, format.MakeFourCC("BITD"), 512, 80, 300, 0)

		require.Equal(t, format.AfterburnerSegment, e.StorageKind())
		require.Equal(t, int32(0), e.CompressionIndex())
		require.False(t, e.UsesInlineData())
		require.True(t, e.Unsupported(), "unresolved index is unknown")
		require.Equal(t, uint32(300), e.Size())

		e = e.SetCompression(format.CompressionKindZlib)
		require.Equal(t, format.CompressionKindZlib, e.Compression())
		require.False(t, e.Unsupported())
	})

	t.Run("Inline", func(t *testing.T) {
		e := NewAfterburnerEntry(11, format.MakeFourCC("Lscr"), -1, 40, 40, -1)

		require.True(t, e.UsesInlineData())
		require.Equal(t, format.CompressionKindNone, e.Compression())

		s, ok := e.Afterburner()
		require.True(t, ok)
		require.Equal(t, int32(-1), s.BodyOffset)
	})
}

func TestEntry_IsFreeChunk(t *testing.T) {
	require.True(t, NewClassicEntry(1, format.TagFree, 0, 0, 0, 0, 2).IsFreeChunk())
	require.True(t, NewClassicEntry(2, format.TagJunk, 0, 0, 0, 0, -1).IsFreeChunk())
	require.False(t, NewClassicEntry(3, format.TagKey, 0, 0, 0, 0, -1).IsFreeChunk())
}

func TestEntry_ZeroValue(t *testing.T) {
	var e Entry
	require.Equal(t, format.StorageKind(0), e.StorageKind())
	require.Equal(t, uint32(0), e.Size())
	require.Equal(t, int32(-1), e.CompressionIndex())
}
