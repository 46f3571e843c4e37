package collision

import (
	"fmt"

	"github.com/arloliu/rifx/errs"
	"github.com/arloliu/rifx/format"
)

// Tracker detects resource ids that a map table lists more than once.
// The first occurrence of an id is the one kept.
type Tracker struct {
	seen map[int32]format.FourCC // id → tag of first occurrence
}

// NewTracker creates a new id tracker.
func NewTracker() *Tracker {
	return &Tracker{seen: make(map[int32]format.FourCC)}
}

// Track records id. It returns errs.ErrDuplicateResource if id was already
// tracked; the caller should drop the later occurrence.
func (t *Tracker) Track(id int32, tag format.FourCC) error {
	if first, exists := t.seen[id]; exists {
		return fmt.Errorf("%w: %d (%s), first seen as %s", errs.ErrDuplicateResource, id, tag, first)
	}
	t.seen[id] = tag

	return nil
}
