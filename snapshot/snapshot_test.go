package snapshot

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/rifx"
	"github.com/arloliu/rifx/errs"
	"github.com/arloliu/rifx/format"
	"github.com/arloliu/rifx/internal/rifxtest"
)

func classicMovie(t *testing.T) *rifx.Movie {
	t.Helper()

	m := rifxtest.Classic{
		BigEndian: true,
		Release:   format.Director8,
		Resources: []rifxtest.Resource{
			{Tag: "CASt", Data: bytes.Repeat([]byte("member"), 50)},
			{Tag: "free", Free: true},
			{Tag: "STXT", Data: []byte("text")},
		},
		Keys: []rifxtest.Key{{ChildID: 5, ParentID: 3, Tag: "STXT"}},
	}

	movie, err := rifx.Parse(m.Bytes())
	require.NoError(t, err)

	return movie
}

func TestEncodeDecode(t *testing.T) {
	movie := classicMovie(t)

	for _, c := range []format.CompressionType{
		format.CompressionNone,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	} {
		t.Run(c.String(), func(t *testing.T) {
			data, stats, err := Encode(movie, WithCompression(c))
			require.NoError(t, err)
			require.Equal(t, c, stats.Algorithm)
			require.Positive(t, stats.OriginalSize)

			snap, err := Decode(data)
			require.NoError(t, err)
			require.Equal(t, c, snap.Compression)
			require.Equal(t, stats, snap.Stats)
			require.Equal(t, movie.Format, snap.Format())
			require.Equal(t, "Director 8", snap.Format().DirectorVersionLabel())

			require.Equal(t, movie.Container.Len(), snap.Len())
			for _, e := range movie.Container.Entries() {
				rec, ok := snap.Record(e.ID)
				require.True(t, ok)
				require.Equal(t, e.Tag, rec.Tag)
				require.Equal(t, e.StorageKind(), rec.Storage)
				require.Equal(t, e.Size(), rec.Size)
				require.Equal(t, e.IsFreeChunk(), rec.Free)

				want, wantErr := movie.Bytes(e.ID)
				got, gotErr := snap.Bytes(e.ID)
				if wantErr != nil {
					require.Error(t, gotErr)
					continue
				}
				require.NoError(t, gotErr)
				require.Equal(t, want, got)
			}

			_, err = snap.Bytes(4)
			require.ErrorIs(t, err, errs.ErrFreeChunkRequested)
			_, err = snap.Bytes(42)
			require.ErrorIs(t, err, errs.ErrUnknownResource)

			parent, ok := snap.Parent(5)
			require.True(t, ok)
			require.Equal(t, int32(3), parent)
			require.Equal(t, []int32{5}, snap.Children(3))
			require.Equal(t, movie.Container.Links(), snap.Links())
		})
	}
}

func TestEncode_Afterburner(t *testing.T) {
	m := rifxtest.Afterburner{
		VersionString: "8.5r321",
		Release:       format.Director8,
		Segments: []rifxtest.Segment{
			{ID: 3, Tag: "CASt", Data: []byte("inline"), Inline: true},
			{ID: 4, Tag: "BITD", Data: []byte("bits"), Stored: []byte("broken")},
		},
	}
	movie, err := rifx.Parse(m.Bytes())
	require.NoError(t, err)

	data, _, err := Encode(movie)
	require.NoError(t, err)

	snap, err := Decode(data)
	require.NoError(t, err)
	require.True(t, snap.Format().IsAfterburner())
	require.Equal(t, "8.5r321", snap.Format().AfterburnerVersion)
	require.Equal(t, format.CompressionZstd, snap.Compression)

	payload, err := snap.Bytes(3)
	require.NoError(t, err)
	require.Equal(t, []byte("inline"), payload)

	rec, ok := snap.Record(4)
	require.True(t, ok)
	require.NotEmpty(t, rec.Err)
	_, err = snap.Bytes(4)
	require.Error(t, err)
	id, ok := errs.ResourceID(err)
	require.True(t, ok)
	require.Equal(t, int32(4), id)
}

func TestDecode_Corruption(t *testing.T) {
	data, _, err := Encode(classicMovie(t), WithCompression(format.CompressionNone))
	require.NoError(t, err)

	tests := []struct {
		name    string
		mutate  func([]byte) []byte
		wantErr error
	}{
		{
			name:    "short",
			mutate:  func(b []byte) []byte { return b[:headerSize-1] },
			wantErr: errs.ErrInvalidSnapshot,
		},
		{
			name:    "magic",
			mutate:  func(b []byte) []byte { b[0] = 'X'; return b },
			wantErr: errs.ErrInvalidSnapshot,
		},
		{
			name:    "version",
			mutate:  func(b []byte) []byte { b[4] = 9; return b },
			wantErr: errs.ErrInvalidSnapshot,
		},
		{
			name:    "truncated body",
			mutate:  func(b []byte) []byte { return b[:len(b)-1] },
			wantErr: errs.ErrInvalidSnapshot,
		},
		{
			name:    "flipped body byte",
			mutate:  func(b []byte) []byte { b[len(b)-5] ^= 0xFF; return b },
			wantErr: errs.ErrSnapshotChecksum,
		},
		{
			name:    "unknown compression",
			mutate:  func(b []byte) []byte { b[5] = 42; return b },
			wantErr: errs.ErrInvalidSnapshot,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.mutate(bytes.Clone(data)))
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestDecode_DeclaredBodyLength(t *testing.T) {
	for _, ct := range []format.CompressionType{
		format.CompressionNone,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	} {
		t.Run(ct.String(), func(t *testing.T) {
			data, _, err := Encode(classicMovie(t), WithCompression(ct))
			require.NoError(t, err)

			for _, rawLen := range []uint32{0xF0000000, 1} {
				forged := bytes.Clone(data)
				binary.LittleEndian.PutUint32(forged[24:28], rawLen)

				_, err := Decode(forged)
				require.ErrorIs(t, err, errs.ErrInvalidSnapshot)
				require.ErrorIs(t, err, errs.ErrSizeMismatch)
			}
		})
	}
}

func TestEncode_Options(t *testing.T) {
	_, _, err := Encode(classicMovie(t), WithCompression(format.CompressionType(99)))
	require.ErrorIs(t, err, errs.ErrInvalidOption)

	_, _, err = Encode(nil)
	require.Error(t, err)
}
