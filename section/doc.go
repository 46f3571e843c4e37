// Package section parses the fixed-layout records of a Director movie.
//
// # File Layout
//
// Every movie starts with a 12-byte header:
//
//	Offset  Size  Field
//	0x00    4     Signature: "RIFX" (big-endian movie) or "XFIR" (little-endian)
//	0x04    4     DeclaredSize: payload length
//	0x08    4     Codec: MV93, MC95, APPL, FGDM, FGDC
//	0x0C    ...   Payload: chunk stream
//
// All integers and chunk tags after the signature use the byte order the
// signature selects, so a little-endian movie stores "imap" as "pami".
//
// # Classic Movies
//
// A classic movie follows the header with an imap chunk:
//
//	tag "imap" | u32 length | u32 map version | u32 map offset | u32 archive version
//
// The map offset points at the mmap chunk, the memory map of every chunk in
// the file:
//
//	tag "mmap" | u32 length
//	u16 header size | u16 entry size | u32 max count | u32 used count
//	i32 junk head | i32 junk head 2 | i32 free head
//	used count rows of entry size bytes:
//	    tag | u32 size | u32 offset | u16 flags | u16 attributes | i32 next free
//
// The KEY* chunk records which resources own which:
//
//	u16 entry size | u16 entry size | u32 max count | u32 used count
//	used count rows: i32 child id | i32 parent id | tag
//
// # Error Handling
//
// Headers that cannot be trusted fail with errs.ErrFormat. Tables whose
// declared rows run past the available data return the complete rows together
// with an error wrapping errs.ErrTruncatedStream, so partially damaged movies
// remain usable.
package section
