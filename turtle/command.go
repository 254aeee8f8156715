package turtle

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"turtle.dev/angle"
)

// Command is an element of a turtle script. The set of commands is
// closed; the interpreter matches on the concrete types below.
type Command interface {
	command()
}

// Teleport moves the turtle to a point without turning it.
type Teleport struct {
	To Point
}

// LookTo turns the turtle to face a point.
type LookTo struct {
	At Point
}

// Go advances the turtle along its heading.
type Go struct {
	Distance float64
}

// Turn rotates the heading.
type Turn struct {
	Angle angle.Angle
}

// PenDown starts drawing with a style.
type PenDown struct {
	Style Style
}

type PenUp struct{}

// Save pushes the current pose.
type Save struct{}

// Restore pops the last saved pose. Restoring with nothing saved
// does nothing.
type Restore struct{}

// Pivot sweeps the turtle along a circle of radius Distance, turning
// its heading by Arc. Positive arcs pivot to the left.
type Pivot struct {
	Distance float64
	Arc      angle.Angle
}

// Repeat runs Command Count times.
type Repeat struct {
	Count   int
	Command Command
}

// Group runs its commands in order.
type Group []Command

func (Teleport) command() {}
func (LookTo) command()   {}
func (Go) command()       {}
func (Turn) command()     {}
func (PenDown) command()  {}
func (PenUp) command()    {}
func (Save) command()     {}
func (Restore) command()  {}
func (Pivot) command()    {}
func (Repeat) command()   {}
func (Group) command()    {}

var (
	ErrNilCommand     = errors.New("nil command")
	ErrNegativeRepeat = errors.New("negative repeat count")
	ErrBadWidth       = errors.New("stroke width must be positive")
)

// ValidationError reports a malformed command and where it sits in
// the script tree.
type ValidationError struct {
	// Path lists the indices leading to the command, one per
	// nesting level. Repeat bodies count as index 0.
	Path []int
	Err  error
}

func (e *ValidationError) Error() string {
	idx := make([]string, len(e.Path))
	for i, p := range e.Path {
		idx[i] = fmt.Sprint(p)
	}
	return fmt.Sprintf("command %s: %v", strings.Join(idx, "."), e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Validate checks a script for trees the interpreter cannot express
// meaningfully. Run itself accepts anything.
func Validate(script ...Command) error {
	return validate(nil, script)
}

func validate(path []int, cmds []Command) error {
	for i, c := range cmds {
		p := append(path[:len(path):len(path)], i)
		if err := validateCommand(p, c); err != nil {
			return err
		}
	}
	return nil
}

func validateCommand(path []int, c Command) error {
	switch c := c.(type) {
	case nil:
		return &ValidationError{Path: path, Err: ErrNilCommand}
	case PenDown:
		if !(c.Style.Width > 0) || math.IsInf(c.Style.Width, 0) {
			return &ValidationError{Path: path, Err: fmt.Errorf("%w: %v", ErrBadWidth, c.Style.Width)}
		}
	case Repeat:
		if c.Count < 0 {
			return &ValidationError{Path: path, Err: fmt.Errorf("%w: %d", ErrNegativeRepeat, c.Count)}
		}
		return validateCommand(append(path[:len(path):len(path)], 0), c.Command)
	case Group:
		return validate(path, c)
	}
	return nil
}
