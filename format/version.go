package format

import "fmt"

// Release identifies a Director release that writes a distinct archive-version
// marker. Two releases share DirectorVersion 10, so the marker table is keyed
// by Release rather than by the numeric version.
type Release uint8

const (
	ReleaseUnknown Release = iota
	Director4
	Director5
	Director6
	Director8
	Director10
	Director10_1
)

// DefaultWriterRelease is the release whose marker is written when none is chosen.
const DefaultWriterRelease = Director10_1

// ClassicMapVersion is the imap map version written by every classic archive.
const ClassicMapVersion uint32 = 1

type versionInfo struct {
	release Release
	marker  uint32
	version int
	label   string
}

// versionTable is the single source of truth for both lookup directions.
var versionTable = [...]versionInfo{
	{release: Director4, marker: 0x00000000, version: 4, label: "Director 4"},
	{release: Director5, marker: 0x000004C1, version: 5, label: "Director 5"},
	{release: Director6, marker: 0x000004C7, version: 6, label: "Director 6"},
	{release: Director8, marker: 0x00000708, version: 8, label: "Director 8"},
	{release: Director10, marker: 0x00000742, version: 10, label: "Director 10"},
	{release: Director10_1, marker: 0x00000744, version: 10, label: "Director 10.1"},
}

// ResolveArchiveVersion maps an archive-version marker to a Director version and
// a display label. Unknown markers resolve to version 0 and a label embedding the
// raw marker.
func ResolveArchiveVersion(marker uint32) (int, string) {
	if info, ok := lookupMarker(marker); ok {
		return info.version, info.label
	}

	return 0, fmt.Sprintf("Unknown (0x%X)", marker)
}

// ReleaseForMarker returns the Release that writes marker.
func ReleaseForMarker(marker uint32) (Release, bool) {
	info, ok := lookupMarker(marker)
	return info.release, ok
}

// ArchiveMarker returns the archive-version marker written by r.
func ArchiveMarker(r Release) (uint32, bool) {
	for _, info := range versionTable {
		if info.release == r {
			return info.marker, true
		}
	}

	return 0, false
}

// Version returns the numeric Director version of r, or 0 for unknown releases.
func (r Release) Version() int {
	for _, info := range versionTable {
		if info.release == r {
			return info.version
		}
	}

	return 0
}

func (r Release) String() string {
	for _, info := range versionTable {
		if info.release == r {
			return info.label
		}
	}

	return "Unknown"
}

// Releases returns every known release in ascending order.
func Releases() []Release {
	out := make([]Release, len(versionTable))
	for i, info := range versionTable {
		out[i] = info.release
	}

	return out
}

func lookupMarker(marker uint32) (versionInfo, bool) {
	for _, info := range versionTable {
		if info.marker == marker {
			return info, true
		}
	}

	return versionInfo{}, false
}
