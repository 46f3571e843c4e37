package format

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFourCC(t *testing.T) {
	require.Equal(t, FourCC(0x52494658), MakeFourCC("RIFX"))
	require.Equal(t, "RIFX", TagRIFX.String())
	require.Equal(t, "KEY*", TagKey.String())
	require.Equal(t, "ILS ", MakeFourCC("ILS").String(), "short tags are space padded")
	require.Equal(t, "ABMP", MakeFourCC("ABMPX").String(), "long tags are truncated")
}

func TestFourCC_IsFree(t *testing.T) {
	require.True(t, TagFree.IsFree())
	require.True(t, TagJunk.IsFree())
	require.False(t, TagMmap.IsFree())
	require.False(t, MakeFourCC("FREE").IsFree())
}

func TestCodecFromTag(t *testing.T) {
	tests := []struct {
		tag         string
		codec       Codec
		afterburner bool
	}{
		{"MV93", CodecMV93, false},
		{"MC95", CodecMC95, false},
		{"APPL", CodecAPPL, false},
		{"FGDM", CodecFGDM, true},
		{"FGDC", CodecFGDC, true},
		{"ABCD", CodecUnknown, false},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			codec := CodecFromTag(MakeFourCC(tt.tag))
			require.Equal(t, tt.codec, codec)
			require.Equal(t, tt.afterburner, codec.IsAfterburner())
			if codec != CodecUnknown {
				require.Equal(t, tt.tag, codec.String())
				require.Equal(t, MakeFourCC(tt.tag), codec.Tag())
			}
		})
	}

	require.Equal(t, FourCC(0), CodecUnknown.Tag())
}

func TestKindStrings(t *testing.T) {
	require.Equal(t, "Zlib", CompressionKindZlib.String())
	require.Equal(t, "FontMap", CompressionKindFontMap.String())
	require.Equal(t, "Unknown", CompressionKind(99).String())
	require.Equal(t, "Classic", ClassicChunk.String())
	require.Equal(t, "Afterburner", AfterburnerSegment.String())
	require.Equal(t, "StorageKind(0)", StorageKind(0).String())
}

func TestParseCompressionType(t *testing.T) {
	for _, c := range []CompressionType{CompressionNone, CompressionZstd, CompressionS2, CompressionLZ4} {
		name := map[CompressionType]string{
			CompressionNone: "none",
			CompressionZstd: "zstd",
			CompressionS2:   "s2",
			CompressionLZ4:  "lz4",
		}[c]

		got, err := ParseCompressionType(name)
		require.NoError(t, err)
		require.Equal(t, c, got)
	}

	_, err := ParseCompressionType("brotli")
	require.Error(t, err)
}
