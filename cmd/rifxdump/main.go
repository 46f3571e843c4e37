package main

import (
	"context"
	"fmt"
	"os"

	"github.com/apex/log"
	clihandler "github.com/apex/log/handlers/cli"
	"github.com/fatih/color"
	"github.com/urfave/cli/v3"
)

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:  "rifxdump",
		Usage: "Inspect and extract Director RIFX/XFIR movies",
		Flags: globalFlags(),
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			log.SetHandler(clihandler.New(os.Stderr))
			if verbose {
				log.SetLevel(log.DebugLevel)
			}
			color.NoColor = color.NoColor || noColor

			return ctx, nil
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return cli.ShowAppHelp(cmd)
		},
		Commands: []*cli.Command{
			infoCmd(),
			listCmd(),
			keysCmd(),
			extractCmd(),
			snapshotCmd(),
			verifyCmd(),
		},
	}
}
