package golden

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"turtle.dev/angle"
	"turtle.dev/turtle"
)

func recording(arc float64) []turtle.Trail {
	return turtle.Run(
		turtle.PenDown{Style: turtle.Style{Color: "teal", Width: 3}},
		turtle.Repeat{Count: 6, Command: turtle.Group{
			turtle.Go{Distance: 15},
			turtle.Pivot{Distance: 5, Arc: angle.New(arc)},
		}},
		turtle.PenDown{Style: turtle.Style{Color: "orange", Width: 1}},
		turtle.Pivot{Distance: 8, Arc: angle.New(-arc)},
	)
}

func TestCompare(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pivots.golden")

	require.NoError(t, Compare(path, true, "", recording(1)))
	assert.NoError(t, Compare(path, false, "", recording(1)))

	err := Compare(path, false, dir, recording(1.1))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mismatches")
	for _, f := range []string{"pivots.golden.svg", "pivots.golden.orig.svg"} {
		_, err := os.Stat(filepath.Join(dir, f))
		assert.NoError(t, err, f)
	}

	assert.Error(t, Compare(path, false, "", recording(1)[:1]))
}

func TestCompareMissing(t *testing.T) {
	err := Compare(filepath.Join(t.TempDir(), "missing.golden"), false, "", turtle.Run())
	assert.ErrorIs(t, err, os.ErrNotExist)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestWriteTrailsError(t *testing.T) {
	err := writeTrails(failingWriter{}, recording(1))
	assert.EqualError(t, err, "disk full")
}
