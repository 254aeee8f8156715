package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"
	"turtle.dev/script"
	"turtle.dev/turtle"
)

func (a *app) newTrailsCmd() *cobra.Command {
	var (
		pf     poseFlags
		binary bool
	)
	cmd := &cobra.Command{
		Use:   "trails SCRIPT",
		Short: "Print the trails recorded by a script",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, trails, err := a.run(args[0], &pf)
			if err != nil {
				return err
			}
			if binary {
				enc, err := script.EncodeTrails(trails)
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(enc)
				return err
			}
			return printTrails(cmd.OutOrStdout(), trails)
		},
	}
	pf.register(cmd)
	cmd.Flags().BoolVar(&binary, "cbor", false, "write the trails in binary CBOR form")
	return cmd
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func printTrails(w io.Writer, trails []turtle.Trail) error {
	for i, t := range trails {
		if _, err := fmt.Fprintf(w, "trail %d: %s %s\n", i, t.Style.Color, num(t.Style.Width)); err != nil {
			return err
		}
		for _, ins := range t.Path {
			var err error
			switch ins := ins.(type) {
			case turtle.MoveTo:
				_, err = fmt.Fprintf(w, "\tmove %s %s\n", num(ins.X), num(ins.Y))
			case turtle.LineTo:
				_, err = fmt.Fprintf(w, "\tline %s %s\n", num(ins.X), num(ins.Y))
			case turtle.Arc:
				_, err = fmt.Fprintf(w, "\tarc %s %s %s %s %s\n", num(ins.CenterX), num(ins.CenterY), num(ins.Radius), num(ins.StartAngle), num(ins.EndAngle))
			}
			if err != nil {
				return err
			}
		}
	}
	return nil
}
