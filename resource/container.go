package resource

import (
	"fmt"
	"iter"
	"slices"

	"github.com/arloliu/rifx/errs"
)

// Container holds every resource entry of one movie together with the
// inline-segment payloads and the KEY* relationship graph.
//
// A Container is filled by a single parse pass through Add, SetInlineSegment
// and AddRelationship, then only read. Concurrent reads are safe once the
// parse has finished; mutators must not run concurrently with anything.
//
// Entries are referenced by resource id, never by pointer.
type Container struct {
	entries          []Entry
	byID             map[int32]int
	inline           map[int32][]byte
	links            []KeyLink
	parentByChild    map[int32]int32
	childrenByParent map[int32][]int32
}

// NewContainer creates an empty container.
func NewContainer() *Container {
	c := &Container{}
	c.Reset()

	return c
}

// Reset clears all state so the container can be reused for another movie.
func (c *Container) Reset() {
	c.entries = nil
	c.byID = make(map[int32]int)
	c.inline = make(map[int32][]byte)
	c.links = nil
	c.parentByChild = make(map[int32]int32)
	c.childrenByParent = make(map[int32][]int32)
}

// Add appends an entry. A second entry with the same id is rejected with
// errs.ErrDuplicateResource and the first one is kept.
func (c *Container) Add(e Entry) error {
	if _, ok := c.byID[e.ID]; ok {
		return fmt.Errorf("%w: %d (%s)", errs.ErrDuplicateResource, e.ID, e.Tag)
	}

	c.byID[e.ID] = len(c.entries)
	c.entries = append(c.entries, e)

	return nil
}

// SetInlineSegment records the inline bytes of resource id. The first segment
// registered for an id wins.
func (c *Container) SetInlineSegment(id int32, data []byte) error {
	if _, ok := c.inline[id]; ok {
		return fmt.Errorf("%w: inline segment %d", errs.ErrDuplicateResource, id)
	}
	c.inline[id] = data

	return nil
}

// AddRelationship records a KEY* link. Each child has at most one parent: a
// second link for the same child fails with errs.ErrDuplicateRelationship and
// the first parent is kept.
func (c *Container) AddRelationship(link KeyLink) error {
	if parent, ok := c.parentByChild[link.ChildID]; ok {
		return fmt.Errorf("%w: child %d already owned by %d, ignoring parent %d",
			errs.ErrDuplicateRelationship, link.ChildID, parent, link.ParentID)
	}

	c.links = append(c.links, link)
	c.parentByChild[link.ChildID] = link.ParentID
	c.childrenByParent[link.ParentID] = append(c.childrenByParent[link.ParentID], link.ChildID)

	return nil
}

// TryGetEntry returns the entry with the given id.
func (c *Container) TryGetEntry(id int32) (Entry, bool) {
	idx, ok := c.byID[id]
	if !ok {
		return Entry{}, false
	}

	return c.entries[idx], true
}

// TryGetInlineSegment returns the inline bytes registered for id. The slice is
// shared with the container and must not be modified.
func (c *Container) TryGetInlineSegment(id int32) ([]byte, bool) {
	data, ok := c.inline[id]
	return data, ok
}

// Len returns the number of entries, free slots included.
func (c *Container) Len() int {
	return len(c.entries)
}

// InlineCount returns the number of registered inline segments.
func (c *Container) InlineCount() int {
	return len(c.inline)
}

// Entries returns a copy of every entry in parse order, free slots included.
func (c *Container) Entries() []Entry {
	return slices.Clone(c.entries)
}

// Resources iterates over the entries that hold data, skipping free and junk slots.
func (c *Container) Resources() iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		for _, e := range c.entries {
			if e.IsFreeChunk() {
				continue
			}
			if !yield(e) {
				return
			}
		}
	}
}

// ByTag returns the non-free entries with the given tag, in parse order.
func (c *Container) ByTag(tag string) []Entry {
	var out []Entry
	for e := range c.Resources() {
		if e.Tag.String() == tag {
			out = append(out, e)
		}
	}

	return out
}

// Links returns a copy of the relationships in the order they were added.
func (c *Container) Links() []KeyLink {
	return slices.Clone(c.links)
}

// ParentByChild returns the parent recorded for child.
func (c *Container) ParentByChild(child int32) (int32, bool) {
	parent, ok := c.parentByChild[child]
	return parent, ok
}

// ChildrenByParent returns a copy of the children recorded for parent in
// insertion order.
func (c *Container) ChildrenByParent(parent int32) []int32 {
	return slices.Clone(c.childrenByParent[parent])
}

// Parents returns every parent id that owns at least one child, ascending.
func (c *Container) Parents() []int32 {
	parents := make([]int32, 0, len(c.childrenByParent))
	for p := range c.childrenByParent {
		parents = append(parents, p)
	}
	slices.Sort(parents)

	return parents
}
