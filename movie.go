package rifx

import (
	"errors"
	"fmt"

	"github.com/apex/log"

	"github.com/arloliu/rifx/afterburner"
	"github.com/arloliu/rifx/errs"
	"github.com/arloliu/rifx/format"
	"github.com/arloliu/rifx/resource"
	"github.com/arloliu/rifx/section"
)

// Movie is a parsed Director movie.
//
// Block and Format describe the file header. Container holds one entry per
// resource, the inline segments of Afterburner movies and the KEY* links.
// Exactly one of Imap/Mmap (classic) and Afterburner is set.
type Movie struct {
	Block     section.DataBlock
	Format    section.DataFormat
	Container *resource.Container

	Imap        *section.ImapBlock
	Mmap        *section.MmapBlock
	Afterburner *afterburner.Info
	Keys        *section.KeyTable

	// Warnings lists recoverable problems found while parsing.
	Warnings []error

	data        []byte
	segmentBase int64
	cfg         *Config
}

func parse(data []byte, cfg *Config) (*Movie, error) {
	block, err := section.ParseDataBlock(data)
	if err != nil {
		return nil, err
	}

	m := &Movie{
		Block:     block,
		Container: resource.NewContainer(),
		data:      data,
		cfg:       cfg,
	}

	logger := cfg.logger.WithFields(log.Fields{
		"codec":  block.Format.CodecTag.String(),
		"size":   len(data),
		"endian": byteOrderName(block.Format.BigEndian),
	})

	if block.Format.Codec == format.CodecUnknown {
		if err := m.warn(fmt.Errorf("%w: %q, reading as a classic movie", errs.ErrUnknownCodec, block.Format.CodecTag)); err != nil {
			return nil, err
		}
	}
	if int64(block.DeclaredSize)+section.ChunkHeaderSize > int64(len(data)) {
		err := fmt.Errorf("%w: header declares %d bytes, file has %d", errs.ErrTruncatedStream,
			int64(block.DeclaredSize)+section.ChunkHeaderSize, len(data))
		if err := m.warn(err); err != nil {
			return nil, err
		}
	}

	if block.Format.IsAfterburner() {
		err = m.readAfterburner()
	} else {
		err = m.readClassic()
	}
	if err != nil {
		return nil, err
	}

	if err := m.readKeys(); err != nil {
		return nil, err
	}

	m.Block.Format = m.Format
	logger.WithFields(log.Fields{
		"version":   m.Format.DirectorVersionLabel(),
		"resources": m.Container.Len(),
		"links":     len(m.Container.Links()),
		"warnings":  len(m.Warnings),
	}).Debug("parsed movie")

	return m, nil
}

// warn records a recoverable problem, or returns it in strict mode.
func (m *Movie) warn(err error) error {
	entry := m.cfg.logger.WithError(err)
	if id, ok := errs.ResourceID(err); ok {
		entry = entry.WithField("id", id)
	}

	if m.cfg.strict {
		entry.Error("movie rejected")
		return err
	}
	entry.Warn("movie warning")
	m.Warnings = append(m.Warnings, err)

	return nil
}

func (m *Movie) readClassic() error {
	m.Format = m.Block.Format
	engine := m.Format.Engine()

	imap, err := section.ParseImap(m.data, m.Block.PayloadStart, engine)
	if err != nil {
		return err
	}
	m.Imap = &imap
	m.Format.MapVersion = imap.MapVersion
	m.Format.SetArchiveVersion(imap.ArchiveVersion)

	mmap, err := section.ParseMmap(m.data, int64(imap.MapOffset), engine)
	if err != nil {
		if !errors.Is(err, errs.ErrTruncatedStream) {
			return err
		}
		if err := m.warn(err); err != nil {
			return err
		}
	}
	m.Mmap = &mmap

	for i, row := range mmap.Entries {
		e := resource.NewClassicEntry(int32(i), row.Tag, row.Size, row.Offset, row.Flags, row.Attributes, row.NextFree) //nolint: gosec
		if err := m.Container.Add(e); err != nil {
			return err
		}
	}

	return nil
}

func (m *Movie) readAfterburner() error {
	m.Format = m.Block.Format

	info, warnings, err := afterburner.Read(m.data, m.Block, m.cfg.registry, m.Container)
	if err != nil {
		return err
	}
	m.Afterburner = &info
	m.segmentBase = info.SegmentBase

	m.Format.AfterburnerVersion = info.VersionString
	if info.HasVersion {
		m.Format.MapVersion = info.MapVersion
		m.Format.SetArchiveVersion(info.ArchiveVersion)
	}

	for _, w := range warnings {
		if err := m.warn(w); err != nil {
			return err
		}
	}

	return nil
}

// readKeys loads the first KEY* resource into the container's relationship
// graph. A movie without one simply has no links.
func (m *Movie) readKeys() error {
	keys := m.Container.ByTag(format.TagKey.String())
	if len(keys) == 0 {
		return nil
	}
	if len(keys) > 1 {
		err := fmt.Errorf("%w: %d KEY* resources, using id %d", errs.ErrDuplicateResource, len(keys), keys[0].ID)
		if err := m.warn(err); err != nil {
			return err
		}
	}

	body, err := m.Bytes(keys[0].ID)
	if err != nil {
		return m.warn(err)
	}

	table, err := section.ParseKeyTable(body, m.Format.Engine())
	if err != nil {
		werr := errs.NewResourceError(keys[0].ID, keys[0].Tag.String(), err)
		if !errors.Is(err, errs.ErrTruncatedStream) {
			return m.warn(werr)
		}
		if err := m.warn(werr); err != nil {
			return err
		}
	}
	m.Keys = &table

	for _, k := range table.Entries {
		link := resource.KeyLink{ChildID: k.ChildID, ParentID: k.ParentID, Tag: k.Tag}
		if err := m.Container.AddRelationship(link); err != nil {
			if err := m.warn(err); err != nil {
				return err
			}
		}
	}

	return nil
}

// Entry returns the resource entry with the given id.
func (m *Movie) Entry(id int32) (resource.Entry, bool) {
	return m.Container.TryGetEntry(id)
}

// Children returns the ids linked below parent in the KEY* table.
func (m *Movie) Children(parent int32) []int32 {
	return m.Container.ChildrenByParent(parent)
}

// Parent returns the id linked above child in the KEY* table.
func (m *Movie) Parent(child int32) (int32, bool) {
	return m.Container.ParentByChild(child)
}

// Len returns the size of the underlying movie buffer.
func (m *Movie) Len() int {
	return len(m.data)
}

func byteOrderName(bigEndian bool) string {
	if bigEndian {
		return "big"
	}

	return "little"
}
