package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"turtle.dev/internal/logging"
	"turtle.dev/script"
	"turtle.dev/turtle"
)

// app holds the state shared by the subcommands.
type app struct {
	log *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{log: logging.NewNop()}
	var verbose bool
	root := &cobra.Command{
		Use:   "turtle",
		Short: "Turtle runs turtle scripts and draws their trails",
		Long: `Turtle interprets scripts of turtle commands (go, turn, pendown, pivot, repeat, ...)
written in YAML or in the binary CBOR form, and renders the resulting trails.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			a.log = logging.New(cmd.ErrOrStderr(), level)
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug messages")
	root.AddCommand(
		a.newRenderCmd(),
		a.newTrailsCmd(),
		a.newValidateCmd(),
		a.newEncodeCmd(),
	)
	return root
}

// loadScript reads a script, in binary form if the file name ends
// in .cbor and in YAML otherwise.
func (a *app) loadScript(path string) (script.Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var s script.Script
	if strings.EqualFold(filepath.Ext(path), ".cbor") {
		s, err = script.DecodeScript(data)
	} else {
		s, err = script.ParseYAML(data)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	a.log.Debug("loaded script", "path", path, "commands", len(s))
	return s, nil
}

// poseFlags are the flags that place the turtle before a run.
type poseFlags struct {
	origin  string
	heading string
}

func (p *poseFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&p.origin, "origin", "0,0", "initial turtle position as x,y")
	cmd.Flags().StringVar(&p.heading, "heading", "0", "initial turtle heading (radians, or suffixed by deg, rad or turn)")
}

func (p *poseFlags) pose() (turtle.Pose, error) {
	xs, ys, ok := strings.Cut(p.origin, ",")
	if !ok {
		return turtle.Pose{}, fmt.Errorf("invalid origin %q, want x,y", p.origin)
	}
	x, errx := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	y, erry := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if errx != nil || erry != nil {
		return turtle.Pose{}, fmt.Errorf("invalid origin %q, want x,y", p.origin)
	}
	h, err := script.ParseAngle(p.heading)
	if err != nil {
		return turtle.Pose{}, err
	}
	return turtle.Pose{Heading: h, Position: turtle.Point{X: x, Y: y}}, nil
}

func (a *app) run(path string, pf *poseFlags) (*turtle.Turtle, []turtle.Trail, error) {
	s, err := a.loadScript(path)
	if err != nil {
		return nil, nil, err
	}
	pose, err := pf.pose()
	if err != nil {
		return nil, nil, err
	}
	t := turtle.NewAt(pose)
	trails := t.Run(s...)
	a.log.Debug("ran script", "path", path, "trails", len(trails))
	return t, trails, nil
}
