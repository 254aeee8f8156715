package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/f32"
	"golang.org/x/image/math/fixed"
	"turtle.dev/affine"
	"turtle.dev/turtle"
)

// adderPen feeds a rasterx path, starting sub-paths lazily so a
// Move followed by another Move leaves no dot behind.
type adderPen struct {
	a       rasterx.Adder
	p       f32.Vec2
	started bool
	origin  f32.Vec2
}

func fixedP(p f32.Vec2) fixed.Point26_6 {
	return rasterx.ToFixedP(float64(p[0]), float64(p[1]))
}

func (r *adderPen) start() {
	if !r.started {
		r.a.Start(fixedP(r.p))
		r.started = true
	}
}

func (r *adderPen) Line(p f32.Vec2) {
	p = affine.Sub(p, r.origin)
	r.start()
	r.a.Line(fixedP(p))
	r.p = p
}

func (r *adderPen) Cube(c1, c2, p f32.Vec2) {
	c1, c2, p = affine.Sub(c1, r.origin), affine.Sub(c2, r.origin), affine.Sub(p, r.origin)
	r.start()
	r.a.CubeBezier(fixedP(c1), fixedP(c2), fixedP(p))
	r.p = p
}

func (r *adderPen) Move(p f32.Vec2) {
	r.stop(false)
	r.p = affine.Sub(p, r.origin)
}

func (r *adderPen) stop(closed bool) {
	if r.started {
		r.a.Stop(closed)
		r.started = false
	}
}

// Rasterizer is a [Canvas] that strokes trails onto an image.
type Rasterizer struct {
	img     draw.Image
	view    f32.Aff3
	scanner *rasterx.ScannerGV
	dasher  *rasterx.Dasher
	pen     *adderPen
	path    *Flattener
}

// NewRasterizer returns a rasterizer drawing into img, mapping trail
// coordinates to image coordinates with view. Stroke widths are
// scaled along with the coordinates.
func NewRasterizer(img draw.Image, view f32.Aff3) *Rasterizer {
	b := img.Bounds()
	r := &Rasterizer{
		img:     img,
		view:    view,
		scanner: rasterx.NewScannerGV(b.Dx(), b.Dy(), img, b),
	}
	r.pen = &adderPen{origin: affine.Vec(float64(b.Min.X), float64(b.Min.Y))}
	r.path = NewFlattener(r.pen, view)
	return r
}

func (r *Rasterizer) SetStyle(s turtle.Style) error {
	c, err := ParseColor(s.Color)
	if err != nil {
		return err
	}
	r.setStroke(s.Width, c)
	return nil
}

func (r *Rasterizer) setStroke(width float64, c color.Color) {
	b := r.img.Bounds()
	r.dasher = rasterx.NewDasher(b.Dx(), b.Dy(), r.scanner)
	w := float32(width) * affine.Scalar(r.view)
	r.dasher.SetStroke(fixed.Int26_6(w*64), 0, rasterx.RoundCap, rasterx.RoundCap, rasterx.RoundGap, rasterx.ArcClip, nil, 0)
	r.dasher.SetColor(c)
	r.pen.a = r.dasher
	r.pen.started = false
	r.path.open = false
}

func (r *Rasterizer) MoveTo(x, y float64) { r.path.MoveTo(x, y) }
func (r *Rasterizer) LineTo(x, y float64) { r.path.LineTo(x, y) }

func (r *Rasterizer) Arc(cx, cy, radius, start, end float64) {
	r.path.Arc(cx, cy, radius, start, end)
}

func (r *Rasterizer) Stroke() {
	if r.dasher == nil {
		return
	}
	r.pen.stop(false)
	r.dasher.Draw()
	r.dasher.Clear()
}

// Head marks pose p with a dot and a short tick along its heading.
func (r *Rasterizer) Head(p turtle.Pose, c color.Color) {
	const (
		radius = 3
		tick   = 6
	)
	b := r.img.Bounds()
	pos := p.Position

	filler := rasterx.NewFiller(b.Dx(), b.Dy(), r.scanner)
	filler.SetColor(c)
	r.pen.a = filler
	r.pen.started = false
	dot := NewFlattener(r.pen, r.view)
	dot.Arc(pos.X, pos.Y, radius, 0, 2*math.Pi)
	r.pen.stop(true)
	filler.Draw()
	filler.Clear()

	dir := affine.Transform(affine.Rotating(float32(p.Heading.Value())), f32.Vec2{1, 0})
	end := affine.Add(affine.Vec(pos.X, pos.Y), affine.Scale(dir, tick))
	r.setStroke(1, c)
	r.MoveTo(pos.X, pos.Y)
	r.LineTo(float64(end[0]), float64(end[1]))
	r.Stroke()
}

// Image renders trails into a new image sized to fit them, with
// margin units of blank space around the drawing.
func Image(trails []turtle.Trail, margin, scale float64) (*image.NRGBA, f32.Aff3, error) {
	w, h, view := Fit(Bounds(trails), margin, scale)
	img := image.NewNRGBA(image.Rect(0, 0, max(w, 1), max(h, 1)))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)
	if err := Replay(NewRasterizer(img, view), trails); err != nil {
		return nil, view, err
	}
	return img, view, nil
}
