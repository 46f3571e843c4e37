// Package stream provides a bounds-checked cursor over an in-memory movie buffer.
package stream

import (
	"fmt"
	"io"

	"github.com/arloliu/rifx/endian"
	"github.com/arloliu/rifx/errs"
	"github.com/arloliu/rifx/format"
)

// maxVarintBytes bounds a Director varint to 32 bits of payload.
const maxVarintBytes = 5

// Reader reads integers, tags and varints from a byte slice in the byte order of
// its engine. Every read is bounds checked and reports io.ErrUnexpectedEOF
// instead of panicking.
type Reader struct {
	data   []byte
	off    int
	engine endian.EndianEngine
}

// NewReader returns a Reader over data positioned at offset 0.
func NewReader(data []byte, engine endian.EndianEngine) *Reader {
	return &Reader{data: data, engine: engine}
}

func (r *Reader) Engine() endian.EndianEngine {
	return r.engine
}

// Pos returns the current offset.
func (r *Reader) Pos() int {
	return r.off
}

// Len returns the total length of the underlying buffer.
func (r *Reader) Len() int {
	return len(r.data)
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.data) - r.off
}

// EOF reports whether every byte has been consumed.
func (r *Reader) EOF() bool {
	return r.off >= len(r.data)
}

// Seek moves the cursor to an absolute offset. Seeking to len(data) is allowed.
func (r *Reader) Seek(off int) error {
	if off < 0 || off > len(r.data) {
		return fmt.Errorf("%w: seek to %d, length %d", errs.ErrOffsetOutOfRange, off, len(r.data))
	}
	r.off = off

	return nil
}

// Skip advances the cursor by n bytes.
func (r *Reader) Skip(n int) error {
	if n < 0 || n > r.Remaining() {
		return io.ErrUnexpectedEOF
	}
	r.off += n

	return nil
}

// Bytes returns the next n bytes without copying.
func (r *Reader) Bytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("invalid read length %d", n)
	}
	if n > r.Remaining() {
		return nil, io.ErrUnexpectedEOF
	}
	b := r.data[r.off : r.off+n]
	r.off += n

	return b, nil
}

func (r *Reader) Uint8() (uint8, error) {
	b, err := r.Bytes(1)
	if err != nil {
		return 0, err
	}

	return b[0], nil
}

func (r *Reader) Uint16() (uint16, error) {
	b, err := r.Bytes(2)
	if err != nil {
		return 0, err
	}

	return r.engine.Uint16(b), nil
}

func (r *Reader) Uint32() (uint32, error) {
	b, err := r.Bytes(4)
	if err != nil {
		return 0, err
	}

	return r.engine.Uint32(b), nil
}

func (r *Reader) Uint64() (uint64, error) {
	b, err := r.Bytes(8)
	if err != nil {
		return 0, err
	}

	return r.engine.Uint64(b), nil
}

func (r *Reader) Int32() (int32, error) {
	v, err := r.Uint32()
	return int32(v), err //nolint: gosec
}

// FourCC reads a chunk tag. Tags are stored in the file's byte order, so a
// little-endian file holds "pami" for "imap".
func (r *Reader) FourCC() (format.FourCC, error) {
	v, err := r.Uint32()
	return format.FourCC(v), err
}

// Varint reads a Director variable-length integer: big-endian groups of seven
// bits, high bit set on every byte but the last. The byte order of the engine
// does not apply. A fifth group that would push bits past 32 fails with
// errs.ErrInvalidVarint.
func (r *Reader) Varint() (uint32, error) {
	var v uint32
	for i := 0; i < maxVarintBytes; i++ {
		b, err := r.Uint8()
		if err != nil {
			return 0, err
		}
		if i == maxVarintBytes-1 && v > 0x1FFFFFF {
			return 0, errs.ErrInvalidVarint
		}
		v = v<<7 | uint32(b&0x7F)
		if b&0x80 == 0 {
			return v, nil
		}
	}

	return 0, errs.ErrInvalidVarint
}

// SignedVarint reads a varint and reinterprets it as a 32-bit two's complement
// value, which is how Afterburner encodes -1 offsets and indexes.
func (r *Reader) SignedVarint() (int32, error) {
	v, err := r.Varint()
	return int32(v), err //nolint: gosec
}

// CString reads a NUL-terminated string. A missing terminator consumes the
// rest of the buffer.
func (r *Reader) CString() (string, error) {
	if r.EOF() {
		return "", io.ErrUnexpectedEOF
	}

	start := r.off
	for r.off < len(r.data) {
		if r.data[r.off] == 0 {
			s := string(r.data[start:r.off])
			r.off++

			return s, nil
		}
		r.off++
	}

	return string(r.data[start:]), nil
}

// PascalString reads a string prefixed by a one-byte length.
func (r *Reader) PascalString() (string, error) {
	n, err := r.Uint8()
	if err != nil {
		return "", err
	}
	b, err := r.Bytes(int(n))
	if err != nil {
		return "", err
	}

	return string(b), nil
}

// AppendVarint appends v to dst in Director varint encoding.
func AppendVarint(dst []byte, v uint32) []byte {
	var tmp [maxVarintBytes]byte
	i := len(tmp) - 1
	tmp[i] = byte(v & 0x7F)
	v >>= 7
	for v != 0 {
		i--
		tmp[i] = byte(v&0x7F) | 0x80
		v >>= 7
	}

	return append(dst, tmp[i:]...)
}
