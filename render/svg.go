package render

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"

	"turtle.dev/turtle"
)

// svgPath writes trail instructions as SVG path data.
type svgPath struct {
	out  *bufio.Writer
	open bool
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func (s *svgPath) MoveTo(x, y float64) {
	fmt.Fprintf(s.out, " M %s %s", num(x), num(y))
	s.open = true
}

func (s *svgPath) LineTo(x, y float64) {
	if !s.open {
		s.MoveTo(x, y)
	}
	fmt.Fprintf(s.out, " L %s %s", num(x), num(y))
}

func (s *svgPath) Arc(cx, cy, r, start, end float64) {
	sweep := Sweep(start, end)
	s.LineTo(cx+r*math.Cos(start), cy+r*math.Sin(start))
	if sweep == 0 {
		return
	}
	// An SVG arc cannot describe a full circle; split it in halves.
	if sweep == 2*math.Pi {
		s.arcTo(cx, cy, r, start+math.Pi, false)
		s.arcTo(cx, cy, r, start, false)
		return
	}
	s.arcTo(cx, cy, r, start+sweep, sweep > math.Pi)
}

func (s *svgPath) arcTo(cx, cy, r, end float64, large bool) {
	flag := 0
	if large {
		flag = 1
	}
	x, y := cx+r*math.Cos(end), cy+r*math.Sin(end)
	fmt.Fprintf(s.out, " A %s %s 0 %d 1 %s %s", num(r), num(r), flag, num(x), num(y))
}

// WriteSVG writes trails as an SVG document with margin units of
// space around the drawing. Trails without instructions are skipped.
func WriteSVG(w io.Writer, trails []turtle.Trail, margin float64) error {
	out := bufio.NewWriter(w)
	b := Bounds(trails)
	width, height := b.Dx()+2*margin, b.Dy()+2*margin
	fmt.Fprintf(out, "<svg xmlns=\"http://www.w3.org/2000/svg\" viewBox=\"%s %s %s %s\" width=\"%s\" height=\"%s\">\n",
		num(b.Min.X-margin), num(b.Min.Y-margin), num(width), num(height), num(width), num(height))
	for _, t := range trails {
		if len(t.Path) == 0 {
			continue
		}
		c, err := ParseColor(t.Style.Color)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, `<path fill="none" stroke="#%02x%02x%02x" stroke-width="%s" stroke-linecap="round" stroke-linejoin="round"`,
			c.R, c.G, c.B, num(t.Style.Width))
		if c.A != 0xff {
			fmt.Fprintf(out, ` stroke-opacity="%s"`, num(float64(c.A)/0xff))
		}
		fmt.Fprint(out, ` d="`)
		t.Replay(&svgPath{out: out})
		fmt.Fprintln(out, `" />`)
	}
	fmt.Fprintln(out, "</svg>")
	return out.Flush()
}
