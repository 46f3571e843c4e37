package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"

	"github.com/arloliu/rifx/format"
	"github.com/arloliu/rifx/snapshot"
)

func snapshotCmd() *cli.Command {
	var (
		outPath     string
		compression string
	)

	return &cli.Command{
		Name:      "snapshot",
		Usage:     "Write a compressed, checksummed snapshot of a movie",
		ArgsUsage: "<movie>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "output",
				Aliases:     []string{"o"},
				Usage:       "snapshot file to write",
				Destination: &outPath,
			},
			&cli.StringFlag{
				Name:        "compression",
				Aliases:     []string{"c"},
				Usage:       "body compression (none, zstd, s2, lz4)",
				Value:       "zstd",
				Sources:     cli.EnvVars("RIFX_SNAPSHOT_COMPRESSION"),
				Destination: &compression,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if outPath == "" {
				return errors.New("missing --output")
			}
			comp, err := format.ParseCompressionType(compression)
			if err != nil {
				return err
			}

			movie, _, err := openMovie(ctx, cmd)
			if err != nil {
				return err
			}

			data, stats, err := snapshot.Encode(movie, snapshot.WithCompression(comp))
			if err != nil {
				return err
			}
			if err := os.WriteFile(outPath, data, 0o644); err != nil { //nolint: gosec
				return err
			}

			if jsonOut {
				return printJSON(map[string]any{
					"file":            outPath,
					"compression":     stats.Algorithm.String(),
					"original_size":   stats.OriginalSize,
					"compressed_size": stats.CompressedSize,
					"ratio":           stats.CompressionRatio(),
				})
			}

			fmt.Fprintf(stdout, "wrote %s: %s -> %s (%s, %.1f%% saved)\n", outPath,
				humanize.Bytes(uint64(stats.OriginalSize)), humanize.Bytes(uint64(stats.CompressedSize)), //nolint: gosec
				stats.Algorithm, stats.SpaceSavings())

			return nil
		},
		Commands: []*cli.Command{
			{
				Name:      "check",
				Usage:     "Verify the checksums of a snapshot file",
				ArgsUsage: "<snapshot>",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					path := cmd.Args().First()
					if path == "" {
						return errors.New("missing snapshot path")
					}
					data, err := os.ReadFile(path)
					if err != nil {
						return err
					}

					snap, err := snapshot.Decode(data)
					if err != nil {
						return err
					}

					if jsonOut {
						return printJSON(map[string]any{
							"file":        path,
							"records":     snap.Len(),
							"links":       len(snap.Links()),
							"compression": snap.Compression.String(),
							"version":     snap.Format().DirectorVersionLabel(),
						})
					}
					fmt.Fprintf(stdout, "%s: %d records, %d links, %s, ok\n",
						path, snap.Len(), len(snap.Links()), snap.Format().DirectorVersionLabel())

					return nil
				},
			},
		},
	}
}
