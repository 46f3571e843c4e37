package main

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"

	"github.com/arloliu/rifx"
	"github.com/arloliu/rifx/resource"
)

type entryInfo struct {
	ID               int32  `json:"id"`
	Tag              string `json:"tag"`
	Storage          string `json:"storage"`
	Compression      string `json:"compression"`
	CompressionIndex int32  `json:"compression_index"`
	Size             uint32 `json:"size"`
	Offset           int64  `json:"offset"`
	Inline           bool   `json:"inline,omitempty"`
	Free             bool   `json:"free,omitempty"`
	Unsupported      bool   `json:"unsupported,omitempty"`
}

func describeEntry(e resource.Entry) entryInfo {
	info := entryInfo{
		ID:               e.ID,
		Tag:              e.Tag.String(),
		Storage:          e.StorageKind().String(),
		Compression:      e.Compression().String(),
		CompressionIndex: e.CompressionIndex(),
		Size:             e.Size(),
		Inline:           e.UsesInlineData(),
		Free:             e.IsFreeChunk(),
		Unsupported:      e.Unsupported(),
	}
	if s, ok := e.Classic(); ok {
		info.Offset = int64(s.MapOffset)
	}
	if s, ok := e.Afterburner(); ok {
		info.Offset = int64(s.BodyOffset)
	}

	return info
}

func listCmd() *cli.Command {
	var (
		tag      string
		withFree bool
	)

	return &cli.Command{
		Name:      "list",
		Aliases:   []string{"ls"},
		Usage:     "List resource entries",
		ArgsUsage: "<movie>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "tag", Aliases: []string{"t"}, Usage: "only list resources with this tag", Destination: &tag},
			&cli.BoolFlag{Name: "free", Usage: "include free and junk slots", Destination: &withFree},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			movie, _, err := openMovie(ctx, cmd)
			if err != nil {
				return err
			}

			entries := selectEntries(movie, tag, withFree)
			if jsonOut {
				infos := make([]entryInfo, 0, len(entries))
				for _, e := range entries {
					infos = append(infos, describeEntry(e))
				}

				return printJSON(infos)
			}

			w := newTabWriter()
			fmt.Fprintln(w, "ID\tTAG\tSTORAGE\tCOMPRESSION\tSIZE\tOFFSET")
			for _, e := range entries {
				info := describeEntry(e)
				offset := fmt.Sprintf("0x%X", info.Offset)
				if info.Inline {
					offset = "inline"
				}
				comp := info.Compression
				if info.Unsupported {
					comp = colorWarning(comp)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					colorID(info.ID), colorTag(info.Tag), info.Storage, comp,
					colorSize(humanize.Bytes(uint64(info.Size))), offset)
			}

			return w.Flush()
		},
	}
}

func selectEntries(m *rifx.Movie, tag string, withFree bool) []resource.Entry {
	var out []resource.Entry
	for _, e := range m.Container.Entries() {
		if e.IsFreeChunk() && !withFree {
			continue
		}
		if tag != "" && e.Tag.String() != tag {
			continue
		}
		out = append(out, e)
	}

	return out
}

type linkInfo struct {
	Parent   int32      `json:"parent"`
	Children []childRef `json:"children"`
}

type childRef struct {
	ID  int32  `json:"id"`
	Tag string `json:"tag"`
}

func keysCmd() *cli.Command {
	return &cli.Command{
		Name:      "keys",
		Usage:     "Show the KEY* parent/child graph",
		ArgsUsage: "<movie>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			movie, _, err := openMovie(ctx, cmd)
			if err != nil {
				return err
			}

			tags := make(map[int32]string, len(movie.Container.Links()))
			for _, l := range movie.Container.Links() {
				tags[l.ChildID] = l.Tag.String()
			}

			links := make([]linkInfo, 0)
			for _, parent := range movie.Container.Parents() {
				li := linkInfo{Parent: parent}
				for _, child := range movie.Children(parent) {
					li.Children = append(li.Children, childRef{ID: child, Tag: tags[child]})
				}
				links = append(links, li)
			}

			if jsonOut {
				return printJSON(links)
			}

			for _, li := range links {
				parentTag := ""
				if e, ok := movie.Entry(li.Parent); ok {
					parentTag = " " + colorTag(e.Tag.String())
				}
				fmt.Fprintf(stdout, "%s%s\n", colorID(li.Parent), parentTag)
				for _, c := range li.Children {
					fmt.Fprintf(stdout, "  └─ %s %s\n", colorID(c.ID), colorTag(c.Tag))
				}
			}

			return nil
		},
	}
}
