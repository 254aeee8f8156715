// package turtle interprets turtle scripts into trails of path
// instructions grouped by style.
package turtle

import (
	"math"

	"turtle.dev/angle"
)

// Pose is the heading and position of a turtle.
type Pose struct {
	Heading  angle.Angle
	Position Point
}

// Turtle is the interpreter state. A Turtle is owned by a single
// goroutine; concurrent scripts need a Turtle each.
type Turtle struct {
	pose    Pose
	saved   []Pose
	drawing bool
	// journey holds the sealed trails, trail is in progress.
	journey []Trail
	trail   Trail
}

// New returns a turtle at the origin, heading along the x axis.
func New() *Turtle {
	return NewAt(Pose{})
}

// NewAt returns a turtle at pose p.
func NewAt(p Pose) *Turtle {
	t := &Turtle{pose: p}
	t.reset()
	return t
}

// Run executes a script on a new turtle and returns its trails.
func Run(script ...Command) []Trail {
	return New().Run(script...)
}

// Run executes script and returns the sealed trails followed by the
// trail in progress. Each call starts a new recording from the pose
// left by the previous one.
func (t *Turtle) Run(script ...Command) []Trail {
	t.reset()
	t.execAll(script)
	trails := make([]Trail, 0, len(t.journey)+1)
	trails = append(trails, t.journey...)
	trails = append(trails, t.trail)
	t.journey = nil
	t.trail = Trail{Style: DefaultStyle()}
	return trails
}

func (t *Turtle) Pose() Pose {
	return t.pose
}

func (t *Turtle) Heading() angle.Angle {
	return t.pose.Heading
}

func (t *Turtle) Position() Point {
	return t.pose.Position
}

func (t *Turtle) reset() {
	t.saved = t.saved[:0]
	t.drawing = false
	t.journey = nil
	t.trail = Trail{Style: DefaultStyle()}
}

func (t *Turtle) execAll(cmds []Command) {
	for _, c := range cmds {
		t.exec(c)
	}
}

func (t *Turtle) exec(c Command) {
	switch c := c.(type) {
	case Teleport:
		t.pose.Position = c.To
		t.emit(MoveTo{c.To.X, c.To.Y})
	case LookTo:
		p := t.pose.Position
		t.pose.Heading = angle.New(math.Atan2(c.At.Y-p.Y, c.At.X-p.X))
	case Go:
		h := t.pose.Heading
		p := &t.pose.Position
		p.X += h.CosR(c.Distance)
		p.Y += h.SinR(c.Distance)
		t.emit(LineTo{p.X, p.Y})
	case Turn:
		t.pose.Heading = t.pose.Heading.Add(c.Angle)
	case PenDown:
		t.penDown(c.Style)
	case PenUp:
		t.drawing = false
	case Save:
		t.saved = append(t.saved, t.pose)
	case Restore:
		n := len(t.saved)
		if n == 0 {
			return
		}
		t.pose = t.saved[n-1]
		t.saved = t.saved[:n-1]
		p := t.pose.Position
		t.emit(MoveTo{p.X, p.Y})
	case Pivot:
		t.pivot(c.Distance, c.Arc)
	case Repeat:
		for i := 0; i < c.Count; i++ {
			t.exec(c.Command)
		}
	case Group:
		t.execAll(c)
	}
}

// emit appends ins to the trail in progress if the pen is down.
func (t *Turtle) emit(ins ...Instruction) {
	if t.drawing {
		t.trail.Path = append(t.trail.Path, ins...)
	}
}

func (t *Turtle) penDown(s Style) {
	// A trail that was never drawn into is dropped instead of
	// sealed.
	if len(t.trail.Path) > 0 {
		t.journey = append(t.journey, t.trail)
	}
	p := t.pose.Position
	t.trail = Trail{
		Style: s,
		Path:  []Instruction{MoveTo{p.X, p.Y}},
	}
	t.drawing = true
}

func (t *Turtle) pivot(r float64, arc angle.Angle) {
	// The pivot centre lies perpendicular to the heading, on the
	// side the turtle turns towards.
	forward := arc.Value() > 0
	var tangent angle.Angle
	if forward {
		tangent = t.pose.Heading.Subtract(angle.QuarterTurn())
	} else {
		tangent = t.pose.Heading.Add(angle.QuarterTurn())
	}
	end := tangent.Add(arc)
	p := t.pose.Position
	cx := p.X - tangent.CosR(r)
	cy := p.Y - tangent.SinR(r)
	x := cx + end.CosR(r)
	y := cy + end.SinR(r)
	if forward {
		t.emit(Arc{cx, cy, r, tangent.Value(), end.Value()})
	} else {
		// Sweep backwards from the destination and leave the cursor
		// there, since arcs are always stroked in the positive
		// direction.
		t.emit(
			MoveTo{x, y},
			Arc{cx, cy, r, end.Value(), tangent.Value()},
			MoveTo{x, y},
		)
	}
	t.pose.Heading = t.pose.Heading.Add(arc)
	t.pose.Position = Point{x, y}
}
