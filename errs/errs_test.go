package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResourceError(t *testing.T) {
	t.Run("Matches sentinel", func(t *testing.T) {
		err := NewResourceError(7, "BITD", fmt.Errorf("%w: want 10, got 4", ErrSizeMismatch))

		require.ErrorIs(t, err, ErrSizeMismatch)
		require.NotErrorIs(t, err, ErrDecompression)
		require.Equal(t, "resource 7 (BITD): decoded size mismatch: want 10, got 4", err.Error())
	})

	t.Run("Without tag", func(t *testing.T) {
		err := NewResourceError(3, "", ErrUnknownResource)
		require.Equal(t, "resource 3: unknown resource id", err.Error())
	})

	t.Run("ResourceID through wrapping", func(t *testing.T) {
		wrapped := fmt.Errorf("extract: %w", NewResourceError(42, "CASt", ErrDecompression))

		id, ok := ResourceID(wrapped)
		require.True(t, ok)
		require.Equal(t, int32(42), id)

		_, ok = ResourceID(errors.New("plain"))
		require.False(t, ok)
	})
}
