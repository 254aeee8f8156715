package render

import (
	"image"
	"math"

	"golang.org/x/image/math/f32"
	"turtle.dev/turtle"
)

// Lines is a Pen that approximates cubic Bézier curves by lines
// within a fraction of a unit, and passes everything on to Pen.
type Lines struct {
	Pen Pen
	p   f32.Vec2
}

func (l *Lines) Move(p f32.Vec2) {
	l.p = p
	l.Pen.Move(p)
}

func (l *Lines) Line(p f32.Vec2) {
	l.p = p
	l.Pen.Line(p)
}

func (l *Lines) Cube(c1, c2, p f32.Vec2) {
	approxCubeBezier(l.Pen.Line, l.p, c1, c2, p)
	l.p = p
}

// Program is the interface to an output that moves and draws on an
// integer grid, such as a plotter.
type Program interface {
	Move(p image.Point)
	Line(p image.Point)
}

type programPen struct {
	prog Program
}

func roundCoord(p f32.Vec2) image.Point {
	return image.Point{
		X: int(math.Round(float64(p[0]))),
		Y: int(math.Round(float64(p[1]))),
	}
}

func (p programPen) Move(to f32.Vec2) { p.prog.Move(roundCoord(to)) }
func (p programPen) Line(to f32.Vec2) { p.prog.Line(roundCoord(to)) }

func (p programPen) Cube(c1, c2, to f32.Vec2) {
	panic("cubic curves must be flattened")
}

// Plot replays trails into prog, mapped through view and flattened
// to lines. Styles are ignored.
func Plot(prog Program, view f32.Aff3, trails []turtle.Trail) {
	pen := &Lines{Pen: programPen{prog}}
	for _, t := range trails {
		t.Replay(NewFlattener(pen, view))
	}
}

// approxCubeBezier uses de Casteljau subdivision to approximate a cubic Bézier
// curve by lines.
func approxCubeBezier(line func(to f32.Vec2), p0, p1, p2, p3 f32.Vec2) {
	if isFlat(p0, p1, p2, p3) {
		line(p3)
	} else {
		l0, l1, l2, l3 := subdivideCubeBezier(0, .5, p0, p1, p2, p3)
		approxCubeBezier(line, l0, l1, l2, l3)
		r0, r1, r2, r3 := subdivideCubeBezier(.5, 1, p0, p1, p2, p3)
		approxCubeBezier(line, r0, r1, r2, r3)
	}
}

func subdivideCubeBezier(t0, t1 float32, p0, p1, p2, p3 f32.Vec2) (s0, s1, s2, s3 f32.Vec2) {
	u0 := 1 - t0
	u1 := 1 - t1
	s0[0] = u0*u0*u0*p0[0] + (t0*u0*u0+u0*t0*u0+u0*u0*t0)*p1[0] + (t0*t0*u0+u0*t0*t0+t0*u0*t0)*p2[0] + t0*t0*t0*p3[0]
	s0[1] = u0*u0*u0*p0[1] + (t0*u0*u0+u0*t0*u0+u0*u0*t0)*p1[1] + (t0*t0*u0+u0*t0*t0+t0*u0*t0)*p2[1] + t0*t0*t0*p3[1]
	s1[0] = u0*u0*u1*p0[0] + (t0*u0*u1+u0*t0*u1+u0*u0*t1)*p1[0] + (t0*t0*u1+u0*t0*t1+t0*u0*t1)*p2[0] + t0*t0*t1*p3[0]
	s1[1] = u0*u0*u1*p0[1] + (t0*u0*u1+u0*t0*u1+u0*u0*t1)*p1[1] + (t0*t0*u1+u0*t0*t1+t0*u0*t1)*p2[1] + t0*t0*t1*p3[1]
	s2[0] = u0*u1*u1*p0[0] + (t0*u1*u1+u0*t1*u1+u0*u1*t1)*p1[0] + (t0*t1*u1+u0*t1*t1+t0*u1*t1)*p2[0] + t0*t1*t1*p3[0]
	s2[1] = u0*u1*u1*p0[1] + (t0*u1*u1+u0*t1*u1+u0*u1*t1)*p1[1] + (t0*t1*u1+u0*t1*t1+t0*u1*t1)*p2[1] + t0*t1*t1*p3[1]
	s3[0] = u1*u1*u1*p0[0] + (t1*u1*u1+u1*t1*u1+u1*u1*t1)*p1[0] + (t1*t1*u1+u1*t1*t1+t1*u1*t1)*p2[0] + t1*t1*t1*p3[0]
	s3[1] = u1*u1*u1*p0[1] + (t1*u1*u1+u1*t1*u1+u1*u1*t1)*p1[1] + (t1*t1*u1+u1*t1*t1+t1*u1*t1)*p2[1] + t1*t1*t1*p3[1]
	return
}

// isFlat reports whether the curve is within a fifth of a unit of
// the line between its end points.
func isFlat(p0, p1, p2, p3 f32.Vec2) bool {
	const tolerance = .2
	ux := 3.0*p1[0] - 2.0*p0[0] - p3[0]
	uy := 3.0*p1[1] - 2.0*p0[1] - p3[1]
	vx := 3.0*p2[0] - 2.0*p3[0] - p0[0]
	vy := 3.0*p2[1] - 2.0*p3[1] - p0[1]
	ux *= ux
	uy *= uy
	vx *= vx
	vy *= vy
	if ux < vx {
		ux = vx
	}
	if uy < vy {
		uy = vy
	}
	return ux+uy <= 16*tolerance*tolerance
}
