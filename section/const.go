package section

// offset and section sizes in a movie file
const (
	HeaderSize       = 12 // RIFX signature, declared size, codec tag
	ChunkHeaderSize  = 8  // tag + u32 length of a classic chunk
	ImapSize         = 20 // tag + length + map version + map offset + archive version
	MmapHeaderSize   = 24 // u16 header size ... i32 free head
	MmapEntrySize    = 20 // tag, size, offset, flags, attributes, next free
	KeyHeaderSize    = 12 // u16 entry size, u16 entry size, u32 max count, u32 used count
	KeyEntrySize     = 12 // child id, parent id, tag
	PayloadStartBase = HeaderSize
)
