package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/apex/log"
	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"
)

type extractResult struct {
	ID    int32  `json:"id"`
	Tag   string `json:"tag"`
	File  string `json:"file,omitempty"`
	Size  int    `json:"size"`
	Error string `json:"error,omitempty"`
}

func extractCmd() *cli.Command {
	var (
		outDir string
		tag    string
	)

	return &cli.Command{
		Name:      "extract",
		Aliases:   []string{"x"},
		Usage:     "Write decoded resource payloads to a directory",
		ArgsUsage: "<movie>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "output",
				Aliases:     []string{"o"},
				Usage:       "output directory",
				Value:       ".",
				Sources:     cli.EnvVars("RIFX_OUTPUT"),
				Destination: &outDir,
			},
			&cli.StringFlag{Name: "tag", Aliases: []string{"t"}, Usage: "only extract resources with this tag", Destination: &tag},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			movie, _, err := openMovie(ctx, cmd)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return err
			}

			var (
				results []extractResult
				total   uint64
			)
			for _, e := range selectEntries(movie, tag, false) {
				res := extractResult{ID: e.ID, Tag: e.Tag.String()}

				payload, err := movie.Bytes(e.ID)
				if err != nil {
					log.WithError(err).WithField("id", e.ID).Warn("skipping resource")
					res.Error = err.Error()
					results = append(results, res)

					continue
				}

				res.File = filepath.Join(outDir, fileName(e.ID, e.Tag))
				res.Size = len(payload)
				if err := os.WriteFile(res.File, payload, 0o644); err != nil { //nolint: gosec
					return err
				}
				log.WithFields(log.Fields{"id": e.ID, "file": res.File}).Debug("extracted")
				total += uint64(len(payload))
				results = append(results, res)
			}

			if jsonOut {
				return printJSON(results)
			}

			var failed int
			for _, r := range results {
				if r.Error != "" {
					failed++
					fmt.Fprintf(stdout, "%s %s: %s\n", colorID(r.ID), colorTag(r.Tag), colorFailure(r.Error))
				}
			}
			fmt.Fprintf(stdout, "extracted %d resources (%s) to %s, %d failed\n",
				len(results)-failed, colorSize(humanize.Bytes(total)), outDir, failed)

			return nil
		},
	}
}
