package cmd

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/go-drift/carbon/cmd/carbon/internal/app"
)

func renderCmd() *cli.Command {
	return &cli.Command{
		Name:  "render",
		Usage: "Print one frame of the document",
		Description: `Render the document headless and print the visible rows.

With --measure, print the intrinsic size of every item in points of the
7x13 bitmap face instead.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "measure",
				Usage: "print intrinsic item sizes instead of the frame",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			a := app.New(cfg, nil)
			if cmd.Bool("measure") {
				_, err = fmt.Fprint(cmd.Root().Writer, app.FormatMeasurements(a.Measure()))
				return err
			}
			_, err = fmt.Fprintln(cmd.Root().Writer, a.Frame())
			return err
		},
	}
}
