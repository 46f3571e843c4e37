package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

type verifyResult struct {
	Total       int              `json:"total"`
	Decoded     int              `json:"decoded"`
	Unsupported []int32          `json:"unsupported,omitempty"`
	Failures    map[int32]string `json:"failures,omitempty"`
}

func verifyCmd() *cli.Command {
	var workers int

	return &cli.Command{
		Name:      "verify",
		Usage:     "Decode every resource and report failures",
		ArgsUsage: "<movie>",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:        "workers",
				Aliases:     []string{"w"},
				Usage:       "parallel decoders (0 = GOMAXPROCS)",
				Sources:     cli.EnvVars("RIFX_WORKERS"),
				Destination: &workers,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			movie, path, err := openMovie(ctx, cmd)
			if err != nil {
				return err
			}

			report, err := movie.DecodeAll(ctx, workers)
			if err != nil {
				return err
			}

			if jsonOut {
				res := verifyResult{
					Total:       report.Total,
					Decoded:     report.Decoded,
					Unsupported: report.Unsupported,
				}
				if !report.OK() {
					res.Failures = make(map[int32]string, len(report.Failures))
					for id, err := range report.Failures {
						res.Failures[id] = err.Error()
					}
				}
				if err := printJSON(res); err != nil {
					return err
				}
			} else {
				for _, id := range report.FailedIDs() {
					fmt.Fprintf(stdout, "%s %s\n", colorID(id), colorFailure(report.Failures[id]))
				}
				fmt.Fprintf(stdout, "%s: %d of %d resources decoded", path, report.Decoded, report.Total)
				if n := len(report.Unsupported); n > 0 {
					fmt.Fprintf(stdout, ", %s", colorWarning(fmt.Sprintf("%d with unsupported compression", n)))
				}
				fmt.Fprintln(stdout)
			}

			if !report.OK() {
				return cli.Exit(fmt.Sprintf("%d resources failed", len(report.Failures)), 2)
			}

			return nil
		},
	}
}
