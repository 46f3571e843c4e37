package collision

import (
	"testing"

	"github.com/arloliu/rifx/errs"
	"github.com/arloliu/rifx/format"
	"github.com/stretchr/testify/require"
)

func TestTracker_Track(t *testing.T) {
	tracker := NewTracker()
	cast := format.MakeFourCC("CASt")

	require.NoError(t, tracker.Track(1, cast))
	require.NoError(t, tracker.Track(2, cast))

	err := tracker.Track(1, format.MakeFourCC("BITD"))
	require.ErrorIs(t, err, errs.ErrDuplicateResource)
	require.ErrorContains(t, err, "1 (BITD), first seen as CASt")

	err = tracker.Track(1, cast)
	require.ErrorIs(t, err, errs.ErrDuplicateResource, "the first occurrence stays recorded")
	require.NoError(t, tracker.Track(3, format.TagKey))
}
