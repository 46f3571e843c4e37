package main

import (
	"context"
	"errors"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/arloliu/rifx"
)

var (
	verbose  bool
	jsonOut  bool
	noColor  bool
	strict   bool
	tableIDs []string
)

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:        "verbose",
			Aliases:     []string{"V"},
			Usage:       "log debug output",
			Sources:     cli.EnvVars("RIFX_VERBOSE"),
			Destination: &verbose,
		},
		&cli.BoolFlag{
			Name:        "json",
			Usage:       "print JSON instead of text",
			Sources:     cli.EnvVars("RIFX_JSON"),
			Destination: &jsonOut,
		},
		&cli.BoolFlag{
			Name:        "no-color",
			Usage:       "disable colored output",
			Sources:     cli.EnvVars("RIFX_NO_COLOR"),
			Destination: &noColor,
		},
		&cli.BoolFlag{
			Name:        "strict",
			Usage:       "fail on recoverable table problems",
			Sources:     cli.EnvVars("RIFX_STRICT"),
			Destination: &strict,
		},
		&cli.StringSliceFlag{
			Name:        "compression-id",
			Usage:       "extra compression identifier decoded as zlib (MoaID text form, repeatable)",
			Sources:     cli.EnvVars("RIFX_COMPRESSION_IDS"),
			Destination: &tableIDs,
		},
	}
}

// openMovie parses the movie named by the first argument.
func openMovie(_ context.Context, cmd *cli.Command) (*rifx.Movie, string, error) {
	path := cmd.Args().First()
	if path == "" {
		return nil, "", errors.New("missing movie path")
	}

	opts := []rifx.Option{
		rifx.WithLogger(log.Log),
		rifx.WithStrict(strict),
	}
	if len(tableIDs) > 0 {
		table, err := compressionTable(tableIDs)
		if err != nil {
			return nil, "", err
		}
		opts = append(opts, rifx.WithCompressionTable(table))
	}

	movie, err := rifx.Open(path, opts...)
	if err != nil {
		return nil, "", err
	}

	return movie, path, nil
}
