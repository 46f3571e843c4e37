package stream

import (
	"io"
	"testing"

	"github.com/arloliu/rifx/endian"
	"github.com/arloliu/rifx/errs"
	"github.com/arloliu/rifx/format"
	"github.com/stretchr/testify/require"
)

func TestReader_Integers(t *testing.T) {
	data := []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0xFF, 0xFF, 0xFF, 0xFF}

	t.Run("Big endian", func(t *testing.T) {
		r := NewReader(data, endian.GetBigEndianEngine())

		v16, err := r.Uint16()
		require.NoError(t, err)
		require.Equal(t, uint16(0x0102), v16)

		v32, err := r.Uint32()
		require.NoError(t, err)
		require.Equal(t, uint32(0x03040506), v32)

		i32, err := r.Int32()
		require.NoError(t, err)
		require.Equal(t, int32(-1), i32)
		require.True(t, r.EOF())
	})

	t.Run("Little endian", func(t *testing.T) {
		r := NewReader(data, endian.GetLittleEndianEngine())

		v16, err := r.Uint16()
		require.NoError(t, err)
		require.Equal(t, uint16(0x0201), v16)

		v32, err := r.Uint32()
		require.NoError(t, err)
		require.Equal(t, uint32(0x06050403), v32)
	})

	t.Run("Uint64", func(t *testing.T) {
		r := NewReader(append([]byte{0, 0, 0, 0}, data[:4]...), endian.GetBigEndianEngine())
		v64, err := r.Uint64()
		require.NoError(t, err)
		require.Equal(t, uint64(0x01020304), v64)

		_, err = r.Uint64()
		require.ErrorIs(t, err, io.ErrUnexpectedEOF)
	})

	t.Run("Short read", func(t *testing.T) {
		r := NewReader(data[:3], endian.GetBigEndianEngine())
		_, err := r.Uint32()
		require.ErrorIs(t, err, io.ErrUnexpectedEOF)
		require.Equal(t, 0, r.Pos(), "failed reads do not advance")
	})
}

func TestReader_FourCC(t *testing.T) {
	r := NewReader([]byte("imappami"), endian.GetBigEndianEngine())
	tag, err := r.FourCC()
	require.NoError(t, err)
	require.Equal(t, format.TagImap, tag)

	r = NewReader([]byte("pami"), endian.GetLittleEndianEngine())
	tag, err = r.FourCC()
	require.NoError(t, err)
	require.Equal(t, format.TagImap, tag)
}

func TestReader_Varint(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want uint32
	}{
		{name: "zero", in: []byte{0x00}, want: 0},
		{name: "one byte", in: []byte{0x7F}, want: 127},
		{name: "two bytes", in: []byte{0x81, 0x00}, want: 128},
		{name: "three bytes", in: []byte{0x83, 0xFF, 0x7F}, want: 0xFFFF},
		{name: "minus one", in: []byte{0x8F, 0xFF, 0xFF, 0xFF, 0x7F}, want: 0xFFFFFFFF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, engine := range []endian.EndianEngine{endian.GetBigEndianEngine(), endian.GetLittleEndianEngine()} {
				r := NewReader(tt.in, engine)
				v, err := r.Varint()
				require.NoError(t, err)
				require.Equal(t, tt.want, v)
				require.True(t, r.EOF())
			}

			require.Equal(t, tt.in, AppendVarint(nil, tt.want))
		})
	}

	t.Run("Signed", func(t *testing.T) {
		r := NewReader(AppendVarint(nil, 0xFFFFFFFF), endian.GetBigEndianEngine())
		v, err := r.SignedVarint()
		require.NoError(t, err)
		require.Equal(t, int32(-1), v)
	})

	t.Run("Too long", func(t *testing.T) {
		r := NewReader([]byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x00}, endian.GetBigEndianEngine())
		_, err := r.Varint()
		require.ErrorIs(t, err, errs.ErrInvalidVarint)
	})

	t.Run("Overflows 32 bits", func(t *testing.T) {
		r := NewReader([]byte{0x90, 0x80, 0x80, 0x80, 0x00}, endian.GetBigEndianEngine())
		_, err := r.Varint()
		require.ErrorIs(t, err, errs.ErrInvalidVarint)
	})

	t.Run("Unterminated", func(t *testing.T) {
		r := NewReader([]byte{0x80, 0x80}, endian.GetBigEndianEngine())
		_, err := r.Varint()
		require.ErrorIs(t, err, io.ErrUnexpectedEOF)
	})
}

func TestReader_Strings(t *testing.T) {
	r := NewReader([]byte("zlib\x00sound\x00tail"), endian.GetBigEndianEngine())

	s, err := r.CString()
	require.NoError(t, err)
	require.Equal(t, "zlib", s)

	s, err = r.CString()
	require.NoError(t, err)
	require.Equal(t, "sound", s)

	s, err = r.CString()
	require.NoError(t, err)
	require.Equal(t, "tail", s)

	_, err = r.CString()
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)

	r = NewReader([]byte{3, 'a', 'b', 'c', 5, 'x'}, endian.GetBigEndianEngine())
	s, err = r.PascalString()
	require.NoError(t, err)
	require.Equal(t, "abc", s)

	_, err = r.PascalString()
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestReader_SeekSkip(t *testing.T) {
	r := NewReader(make([]byte, 8), endian.GetBigEndianEngine())

	require.NoError(t, r.Seek(8))
	require.True(t, r.EOF())
	require.ErrorIs(t, r.Seek(9), errs.ErrOffsetOutOfRange)
	require.ErrorIs(t, r.Seek(-1), errs.ErrOffsetOutOfRange)

	require.NoError(t, r.Seek(2))
	require.NoError(t, r.Skip(4))
	require.Equal(t, 6, r.Pos())
	require.Equal(t, 2, r.Remaining())
	require.ErrorIs(t, r.Skip(3), io.ErrUnexpectedEOF)

	_, err := r.Bytes(-1)
	require.Error(t, err)
}
