package main

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"

	"github.com/arloliu/rifx"
)

type movieInfo struct {
	Path               string   `json:"path"`
	Size               int      `json:"size"`
	Signature          string   `json:"signature"`
	BigEndian          bool     `json:"big_endian"`
	Codec              string   `json:"codec"`
	Afterburner        bool     `json:"afterburner"`
	AfterburnerVersion string   `json:"afterburner_version,omitempty"`
	ArchiveVersion     *uint32  `json:"archive_version,omitempty"`
	DirectorVersion    int      `json:"director_version"`
	VersionLabel       string   `json:"version_label"`
	MapVersion         uint32   `json:"map_version"`
	Resources          int      `json:"resources"`
	FreeSlots          int      `json:"free_slots"`
	InlineSegments     int      `json:"inline_segments"`
	Links              int      `json:"links"`
	Warnings           []string `json:"warnings,omitempty"`
}

func describe(path string, m *rifx.Movie) movieInfo {
	info := movieInfo{
		Path:               path,
		Size:               m.Len(),
		Signature:          "XFIR",
		BigEndian:          m.Format.BigEndian,
		Codec:              m.Format.CodecTag.String(),
		Afterburner:        m.Format.IsAfterburner(),
		AfterburnerVersion: m.Format.AfterburnerVersion,
		DirectorVersion:    m.Format.DirectorVersion(),
		VersionLabel:       m.Format.DirectorVersionLabel(),
		MapVersion:         m.Format.MapVersion,
		InlineSegments:     m.Container.InlineCount(),
		Links:              len(m.Container.Links()),
	}
	if m.Format.BigEndian {
		info.Signature = "RIFX"
	}
	if m.Format.HasArchiveVersion() {
		v := m.Format.ArchiveVersion()
		info.ArchiveVersion = &v
	}
	for _, e := range m.Container.Entries() {
		if e.IsFreeChunk() {
			info.FreeSlots++
		} else {
			info.Resources++
		}
	}
	for _, w := range m.Warnings {
		info.Warnings = append(info.Warnings, w.Error())
	}

	return info
}

func infoCmd() *cli.Command {
	return &cli.Command{
		Name:      "info",
		Usage:     "Show header, version and table counts",
		ArgsUsage: "<movie>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			movie, path, err := openMovie(ctx, cmd)
			if err != nil {
				return err
			}

			info := describe(path, movie)
			if jsonOut {
				return printJSON(info)
			}

			w := newTabWriter()
			fmt.Fprintf(w, "File:\t%s (%s)\n", info.Path, humanize.Bytes(uint64(info.Size)))
			fmt.Fprintf(w, "Signature:\t%s (%s-endian)\n", info.Signature, byteOrder(info.BigEndian))
			fmt.Fprintf(w, "Codec:\t%s\n", info.Codec)
			if info.ArchiveVersion != nil {
				fmt.Fprintf(w, "Version:\t%s (marker 0x%X)\n", info.VersionLabel, *info.ArchiveVersion)
			} else {
				fmt.Fprintf(w, "Version:\t%s\n", info.VersionLabel)
			}
			if info.Afterburner {
				fmt.Fprintf(w, "Afterburner:\t%s\n", info.AfterburnerVersion)
				fmt.Fprintf(w, "Inline segments:\t%d\n", info.InlineSegments)
			}
			fmt.Fprintf(w, "Resources:\t%d (%d free)\n", info.Resources, info.FreeSlots)
			fmt.Fprintf(w, "Links:\t%d\n", info.Links)
			for _, warning := range info.Warnings {
				fmt.Fprintf(w, "Warning:\t%s\n", colorWarning(warning))
			}

			return w.Flush()
		},
	}
}

func byteOrder(bigEndian bool) string {
	if bigEndian {
		return "big"
	}

	return "little"
}
