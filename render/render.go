// package render draws turtle trails: it replays their path
// instructions into rasterizers and vector writers.
package render

import (
	"math"

	"golang.org/x/image/math/f32"
	"turtle.dev/affine"
	"turtle.dev/turtle"
)

// Canvas is a drawing surface for trails.
type Canvas interface {
	turtle.Path
	// SetStyle prepares the canvas for stroking a trail in s.
	SetStyle(s turtle.Style) error
	// Stroke draws the path built since the last call to SetStyle.
	Stroke()
}

// Replay draws trails in order onto c.
func Replay(c Canvas, trails []turtle.Trail) error {
	for _, t := range trails {
		if err := c.SetStyle(t.Style); err != nil {
			return err
		}
		t.Replay(c)
		c.Stroke()
	}
	return nil
}

// Pen is the interface to an output that understands only lines
// and cubic Bézier curves.
type Pen interface {
	Move(p f32.Vec2)
	Line(p f32.Vec2)
	Cube(c1, c2, p f32.Vec2)
}

// Flattener implements [turtle.Path] by transforming instructions
// into Pen operations. Arcs follow the 2D canvas convention: they are
// swept in the direction of increasing angle, and an arc continues
// an existing sub-path with a line to its start.
type Flattener struct {
	pen  Pen
	view f32.Aff3
	// open reports whether there is a current point.
	open bool
}

func NewFlattener(pen Pen, view f32.Aff3) *Flattener {
	return &Flattener{pen: pen, view: view}
}

func (f *Flattener) MoveTo(x, y float64) {
	f.pen.Move(affine.Transform(f.view, affine.Vec(x, y)))
	f.open = true
}

func (f *Flattener) LineTo(x, y float64) {
	p := affine.Transform(f.view, affine.Vec(x, y))
	if !f.open {
		f.pen.Move(p)
		f.open = true
	}
	f.pen.Line(p)
}

func (f *Flattener) Arc(cx, cy, r, start, end float64) {
	sweep := Sweep(start, end)
	x0, y0 := cx+r*math.Cos(start), cy+r*math.Sin(start)
	f.LineTo(x0, y0)
	if sweep == 0 {
		return
	}
	n := int(math.Ceil(sweep / (math.Pi / 2)))
	step := sweep / float64(n)
	// Control point distance for a circular arc of angle step.
	k := 4.0 / 3 * math.Tan(step/4) * r
	a0 := start
	for i := 0; i < n; i++ {
		a1 := a0 + step
		sin0, cos0 := math.Sincos(a0)
		sin1, cos1 := math.Sincos(a1)
		c1 := affine.Vec(cx+r*cos0-k*sin0, cy+r*sin0+k*cos0)
		c2 := affine.Vec(cx+r*cos1+k*sin1, cy+r*sin1-k*cos1)
		p := affine.Vec(cx+r*cos1, cy+r*sin1)
		f.pen.Cube(
			affine.Transform(f.view, c1),
			affine.Transform(f.view, c2),
			affine.Transform(f.view, p),
		)
		a0 = a1
	}
}

// Sweep returns the angle swept by an arc from start to end in the
// direction of increasing angle, in [0, 2π]. A difference of 2π or
// more is a full circle.
func Sweep(start, end float64) float64 {
	d := end - start
	if d >= 2*math.Pi {
		return 2 * math.Pi
	}
	d = math.Mod(d, 2*math.Pi)
	if d < 0 {
		d += 2 * math.Pi
	}
	return d
}

// Rect is an axis aligned rectangle in trail space.
type Rect struct {
	Min, Max turtle.Point
}

func (r Rect) Empty() bool {
	return !(r.Min.X <= r.Max.X && r.Min.Y <= r.Max.Y)
}

func (r Rect) Dx() float64 { return r.Max.X - r.Min.X }
func (r Rect) Dy() float64 { return r.Max.Y - r.Min.Y }

type boundsPen struct {
	r Rect
}

func (b *boundsPen) add(p f32.Vec2) {
	x, y := float64(p[0]), float64(p[1])
	b.r.Min.X = math.Min(b.r.Min.X, x)
	b.r.Min.Y = math.Min(b.r.Min.Y, y)
	b.r.Max.X = math.Max(b.r.Max.X, x)
	b.r.Max.Y = math.Max(b.r.Max.Y, y)
}

func (b *boundsPen) Move(p f32.Vec2) { b.add(p) }
func (b *boundsPen) Line(p f32.Vec2) { b.add(p) }

func (b *boundsPen) Cube(c1, c2, p f32.Vec2) {
	panic("cubic curves must be flattened")
}

// Bounds returns a rectangle covering every point the trails visit,
// accurate to a fraction of a unit for arcs. Bounds returns the zero
// Rect for trails without instructions.
func Bounds(trails []turtle.Trail) Rect {
	inf := math.Inf(1)
	b := &boundsPen{r: Rect{
		Min: turtle.Point{X: inf, Y: inf},
		Max: turtle.Point{X: -inf, Y: -inf},
	}}
	pen := &Lines{Pen: b}
	for _, t := range trails {
		t.Replay(NewFlattener(pen, affine.Identity()))
	}
	if b.r.Empty() {
		return Rect{}
	}
	return b.r
}

// Fit returns the image size and view transform that place r inside
// an image with margin units of space around it, scaled by scale.
func Fit(r Rect, margin, scale float64) (width, height int, view f32.Aff3) {
	width = int(math.Ceil((r.Dx() + 2*margin) * scale))
	height = int(math.Ceil((r.Dy() + 2*margin) * scale))
	view = affine.Mul(
		affine.Scaling(affine.Vec(scale, scale)),
		affine.Offsetting(affine.Vec(margin-r.Min.X, margin-r.Min.Y)),
	)
	return width, height, view
}
