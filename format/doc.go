// Package format defines the small closed vocabularies shared by the rifx
// packages: chunk tags (FourCC), container codecs, compression kinds, storage
// kinds, and the archive-version table that maps on-disk markers to Director
// releases.
//
// The version table is shared by both lookup directions, so for every known
// marker m:
//
//	r, _ := format.ReleaseForMarker(m)
//	back, _ := format.ArchiveMarker(r) // back == m
package format
