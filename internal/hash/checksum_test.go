package hash

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestChecksum(t *testing.T) {
	require.Equal(t, Checksum([]byte("BITD payload")), Checksum([]byte("BITD payload")))
	require.NotEqual(t, Checksum([]byte("a")), Checksum([]byte("b")))
	require.Equal(t, uint64(0xef46db3751d8e999), Checksum(nil), "xxHash64 of empty input")
}
