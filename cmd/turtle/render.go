package main

import (
	"bytes"
	"fmt"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"turtle.dev/render"
)

func (a *app) newRenderCmd() *cobra.Command {
	var (
		pf     poseFlags
		output string
		format string
		scale  float64
		margin float64
		head   bool
	)
	cmd := &cobra.Command{
		Use:   "render SCRIPT",
		Short: "Draw the trails of a script to a PNG or SVG file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !(scale > 0) {
				return fmt.Errorf("--scale must be positive, got %v", scale)
			}
			if format == "" {
				format = "png"
				if strings.EqualFold(filepath.Ext(output), ".svg") {
					format = "svg"
				}
			}
			t, trails, err := a.run(args[0], &pf)
			if err != nil {
				return err
			}
			buf := new(bytes.Buffer)
			switch format {
			case "svg":
				if err := render.WriteSVG(buf, trails, margin); err != nil {
					return err
				}
			case "png":
				img, view, err := render.Image(trails, margin, scale)
				if err != nil {
					return err
				}
				if head {
					render.NewRasterizer(img, view).Head(t.Pose(), color.Black)
				}
				if err := png.Encode(buf, img); err != nil {
					return err
				}
			default:
				return fmt.Errorf("unknown format %q, want png or svg", format)
			}
			if err := os.WriteFile(output, buf.Bytes(), 0o644); err != nil {
				return err
			}
			a.log.Info("rendered", "script", args[0], "output", output, "format", format, "trails", len(trails))
			return nil
		},
	}
	pf.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file")
	cmd.Flags().StringVar(&format, "format", "", "output format, png or svg (default from the output file name)")
	cmd.Flags().Float64Var(&scale, "scale", 1, "pixels per unit of PNG output")
	cmd.Flags().Float64Var(&margin, "margin", 10, "space around the drawing, in units")
	cmd.Flags().BoolVar(&head, "head", false, "mark the final turtle pose in PNG output")
	cmd.MarkFlagRequired("output")
	return cmd
}
