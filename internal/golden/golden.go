// package golden compares turtle recordings against golden files.
package golden

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"turtle.dev/render"
	"turtle.dev/script"
	"turtle.dev/turtle"
)

// Compare checks trails against the golden file at path. If update
// is set, the golden file is replaced instead. If dumpDir is not
// empty, the trails are drawn to an SVG file there, along with the
// golden trails on mismatch.
func Compare(path string, update bool, dumpDir string, trails []turtle.Trail) error {
	bpath := filepath.Base(path)
	if dumpDir != "" {
		fpath := filepath.Join(dumpDir, bpath+".svg")
		if err := dumpSVG(fpath, trails); err != nil {
			return err
		}
	}
	if update {
		buf := new(bytes.Buffer)
		if err := writeTrails(buf, trails); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		return os.WriteFile(path, buf.Bytes(), 0o640)
	}
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	r, err := gzip.NewReader(f)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	golden, err := script.DecodeTrails(b)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	mismatches, total := 0, 0
	for i := range min(len(trails), len(golden)) {
		t1, t2 := trails[i], golden[i]
		if t1.Style != t2.Style || len(t1.Path) != len(t2.Path) {
			mismatches++
			total++
			continue
		}
		for j := range t1.Path {
			total++
			if !instructionsCloseEnough(t1.Path[j], t2.Path[j]) {
				mismatches++
			}
		}
	}
	if mismatches > 0 || len(trails) != len(golden) {
		if dumpDir != "" {
			fpath := filepath.Join(dumpDir, bpath+".orig.svg")
			if err := dumpSVG(fpath, golden); err != nil {
				return err
			}
		}
		return fmt.Errorf("%s: trail counts %d, %d, with %d/%d instruction mismatches", path, len(trails), len(golden), mismatches, total)
	}
	return nil
}

func instructionsCloseEnough(i1, i2 turtle.Instruction) bool {
	switch i1 := i1.(type) {
	case turtle.MoveTo:
		i2, ok := i2.(turtle.MoveTo)
		return ok && closeEnough(i1.X, i2.X, i1.Y, i2.Y)
	case turtle.LineTo:
		i2, ok := i2.(turtle.LineTo)
		return ok && closeEnough(i1.X, i2.X, i1.Y, i2.Y)
	case turtle.Arc:
		i2, ok := i2.(turtle.Arc)
		return ok && closeEnough(
			i1.CenterX, i2.CenterX, i1.CenterY, i2.CenterY, i1.Radius, i2.Radius,
			i1.StartAngle, i2.StartAngle, i1.EndAngle, i2.EndAngle,
		)
	}
	return false
}

// closeEnough reports whether each pair of values are within
// tolerance of each other.
func closeEnough(pairs ...float64) bool {
	const epsilon = 1e-9
	for i := 0; i < len(pairs); i += 2 {
		if !(math.Abs(pairs[i]-pairs[i+1]) <= epsilon) {
			return false
		}
	}
	return true
}

func dumpSVG(f string, trails []turtle.Trail) error {
	buf := new(bytes.Buffer)
	if err := render.WriteSVG(buf, trails, 10); err != nil {
		return err
	}
	return os.WriteFile(f, buf.Bytes(), 0o640)
}

// writeTrails writes trails to w as gzip compressed CBOR.
func writeTrails(w io.Writer, trails []turtle.Trail) error {
	enc, err := script.EncodeTrails(trails)
	if err != nil {
		return err
	}
	zw, err := gzip.NewWriterLevel(w, gzip.BestCompression)
	if err != nil {
		return err
	}
	if _, err := zw.Write(enc); err != nil {
		return err
	}
	return zw.Close()
}
