package turtle

type Point struct {
	X, Y float64
}

// Style describes how a trail is stroked. Color is an opaque
// descriptor passed through to the renderer.
type Style struct {
	Color string
	Width float64
}

// DefaultStyle returns the style of the trail in progress before
// any pen is put down.
func DefaultStyle() Style {
	return Style{Color: "black", Width: 1}
}

// Instruction is a path instruction: MoveTo, LineTo or Arc.
type Instruction interface {
	instruction()
}

// MoveTo positions the cursor without drawing.
type MoveTo struct {
	X, Y float64
}

// LineTo strokes a straight line to (X, Y).
type LineTo struct {
	X, Y float64
}

// Arc strokes the circle around (CenterX, CenterY) from StartAngle
// to EndAngle. The angles are absolute, in radians.
type Arc struct {
	CenterX, CenterY float64
	Radius           float64
	StartAngle       float64
	EndAngle         float64
}

func (MoveTo) instruction() {}
func (LineTo) instruction() {}
func (Arc) instruction()    {}

// Trail is a run of path instructions sharing one style.
type Trail struct {
	Style Style
	Path  []Instruction
}

// Path is the interface to a drawing primitive that can replay
// trails.
type Path interface {
	MoveTo(x, y float64)
	LineTo(x, y float64)
	Arc(cx, cy, r, start, end float64)
}

// Replay executes the trail instructions in order against p.
func (t Trail) Replay(p Path) {
	for _, ins := range t.Path {
		switch ins := ins.(type) {
		case MoveTo:
			p.MoveTo(ins.X, ins.Y)
		case LineTo:
			p.LineTo(ins.X, ins.Y)
		case Arc:
			p.Arc(ins.CenterX, ins.CenterY, ins.Radius, ins.StartAngle, ins.EndAngle)
		}
	}
}
