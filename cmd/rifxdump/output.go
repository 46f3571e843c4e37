package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	json "github.com/goccy/go-json"

	"github.com/arloliu/rifx/compress"
	"github.com/arloliu/rifx/format"
)

var (
	colorID      = color.New(color.FgHiBlue).SprintFunc()
	colorTag     = color.New(color.Bold, color.FgHiMagenta).SprintFunc()
	colorSize    = color.New(color.FgHiCyan).SprintFunc()
	colorWarning = color.New(color.FgYellow).SprintFunc()
	colorFailure = color.New(color.FgRed).SprintFunc()
)

var stdout io.Writer = os.Stdout

func printJSON(v any) error {
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")

	return enc.Encode(v)
}

func newTabWriter() *tabwriter.Writer {
	return tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
}

// compressionTable extends the default table with ids decoded as zlib.
func compressionTable(ids []string) (compress.Table, error) {
	table := compress.DefaultTable()
	for _, s := range ids {
		id, err := compress.ParseMoaIDString(s)
		if err != nil {
			return nil, err
		}
		table = append(table, compress.TableEntry{ID: id, Kind: format.CompressionKindZlib, Name: "zlib (" + id.String() + ")"})
	}

	return table, nil
}

// fileName builds a file-system safe name for a resource payload.
func fileName(id int32, tag format.FourCC) string {
	safe := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		default:
			return '_'
		}
	}, strings.TrimRight(tag.String(), " "))

	return fmt.Sprintf("%d_%s.bin", id, safe)
}
