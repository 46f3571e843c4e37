package format

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveArchiveVersion(t *testing.T) {
	tests := []struct {
		marker  uint32
		version int
		label   string
	}{
		{0x00000000, 4, "Director 4"},
		{0x000004C1, 5, "Director 5"},
		{0x000004C7, 6, "Director 6"},
		{0x00000708, 8, "Director 8"},
		{0x00000742, 10, "Director 10"},
		{0x00000744, 10, "Director 10.1"},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			version, label := ResolveArchiveVersion(tt.marker)
			require.Equal(t, tt.version, version)
			require.Equal(t, tt.label, label)
		})
	}
}

func TestResolveArchiveVersion_Unknown(t *testing.T) {
	for _, marker := range []uint32{0x1, 0x4C2, 0x73B, 0xFFFFFFFF} {
		require.NotPanics(t, func() {
			version, label := ResolveArchiveVersion(marker)
			require.Equal(t, 0, version)
			require.Contains(t, label, "Unknown (0x")
		})
	}

	_, label := ResolveArchiveVersion(0x73B)
	require.Equal(t, "Unknown (0x73B)", label)
}

func TestArchiveMarker_RoundTrip(t *testing.T) {
	for _, release := range Releases() {
		marker, ok := ArchiveMarker(release)
		require.True(t, ok, release.String())

		back, ok := ReleaseForMarker(marker)
		require.True(t, ok)
		require.Equal(t, release, back)

		version, label := ResolveArchiveVersion(marker)
		require.Equal(t, release.Version(), version)
		require.Equal(t, release.String(), label)
	}

	require.Len(t, Releases(), 6)
}

func TestArchiveMarker_Unknown(t *testing.T) {
	_, ok := ArchiveMarker(ReleaseUnknown)
	require.False(t, ok)
	require.Equal(t, 0, ReleaseUnknown.Version())
	require.Equal(t, "Unknown", ReleaseUnknown.String())

	_, ok = ReleaseForMarker(0x1234)
	require.False(t, ok)
}

func TestDefaultWriterRelease(t *testing.T) {
	marker, ok := ArchiveMarker(DefaultWriterRelease)
	require.True(t, ok)
	require.Equal(t, uint32(0x744), marker)
}
