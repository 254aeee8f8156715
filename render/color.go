package render

import (
	"encoding/hex"
	"fmt"
	"image/color"
	"strings"

	"golang.org/x/image/colornames"
)

// ParseColor resolves a style color: an SVG color name such as
// "red" or "cornflowerblue", or a hex triplet in the form #rgb,
// #rrggbb or #rrggbbaa.
func ParseColor(s string) (color.NRGBA, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if c, ok := colornames.Map[name]; ok {
		return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}, nil
	}
	hexs, ok := strings.CutPrefix(name, "#")
	if !ok {
		return color.NRGBA{}, fmt.Errorf("unknown color %q", s)
	}
	if len(hexs) == 3 {
		hexs = string([]byte{hexs[0], hexs[0], hexs[1], hexs[1], hexs[2], hexs[2]})
	}
	if len(hexs) == 6 {
		hexs += "ff"
	}
	b, err := hex.DecodeString(hexs)
	if err != nil || len(b) != 4 {
		return color.NRGBA{}, fmt.Errorf("invalid color %q", s)
	}
	return color.NRGBA{R: b[0], G: b[1], B: b[2], A: b[3]}, nil
}
