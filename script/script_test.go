package script

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
	"turtle.dev/angle"
	"turtle.dev/turtle"
)

const flowerYAML = `
- teleport: [250, 150]
- pendown: {color: red, width: 2}
- repeat:
    count: 12
    do:
      - go: 20
      - turn: 60deg
      - repeat:
          count: 9
          do:
            - go: 20
            - turn: 30deg
- penup
- pendown: {color: "#00f"}
- pivot: {distance: 50, arc: -0.25turn}
- save
- lookto: {x: 0, y: 0}
- go: 5
- restore
- group:
    - turn: 1.5
    - go: -3
`

func flower() Script {
	return Script{
		turtle.Teleport{To: turtle.Point{X: 250, Y: 150}},
		turtle.PenDown{Style: turtle.Style{Color: "red", Width: 2}},
		turtle.Repeat{Count: 12, Command: turtle.Group{
			turtle.Go{Distance: 20},
			turtle.Turn{Angle: angle.Degrees(60)},
			turtle.Repeat{Count: 9, Command: turtle.Group{
				turtle.Go{Distance: 20},
				turtle.Turn{Angle: angle.Degrees(30)},
			}},
		}},
		turtle.PenUp{},
		turtle.PenDown{Style: turtle.Style{Color: "#00f", Width: 1}},
		turtle.Pivot{Distance: 50, Arc: angle.New(-0.25 * 2 * math.Pi)},
		turtle.Save{},
		turtle.LookTo{At: turtle.Point{}},
		turtle.Go{Distance: 5},
		turtle.Restore{},
		turtle.Group{
			turtle.Turn{Angle: angle.New(1.5)},
			turtle.Go{Distance: -3},
		},
	}
}

func TestParseYAML(t *testing.T) {
	s, err := ParseYAML([]byte(flowerYAML))
	require.NoError(t, err)
	assert.Equal(t, flower(), s)
	assert.Equal(t, turtle.Run(flower()...), turtle.Run(s...))
}

func TestParseYAMLEmpty(t *testing.T) {
	s, err := ParseYAML([]byte("[]"))
	require.NoError(t, err)
	assert.Empty(t, s)
	s, err = ParseYAML(nil)
	require.NoError(t, err)
	assert.Empty(t, s)
}

func TestParseYAMLSingleCommandRepeat(t *testing.T) {
	s, err := ParseYAML([]byte("- repeat: {count: 3, do: {go: 1}}\n- repeat: {count: 2, do: [save]}\n- pendown:\n"))
	require.NoError(t, err)
	assert.Equal(t, Script{
		turtle.Repeat{Count: 3, Command: turtle.Go{Distance: 1}},
		turtle.Repeat{Count: 2, Command: turtle.Save{}},
		turtle.PenDown{Style: turtle.DefaultStyle()},
	}, s)
}

func TestParseYAMLErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		msg  string
	}{
		{"not a list", "go: 1", "line 1: expected a list of commands"},
		{"unknown word", "- jump", `line 1: unknown command "jump"`},
		{"unknown key", "- go: 1\n- fly: 2", `line 2: unknown command "fly"`},
		{"two keys", "- {go: 1, turn: 2}", "exactly one key"},
		{"bad number", "- go: far", `expected a number, got "far"`},
		{"bad angle", "- turn: 90grad", `invalid angle "90grad"`},
		{"bad point", "- teleport: [1, 2, 3]", "expected a point"},
		{"missing field", "- pivot: {distance: 1}", `missing field "arc"`},
		{"extra field", "- pivot: {distance: 1, arc: 1, speed: 2}", `unknown field "speed"`},
		{"style field", "- pendown: {colour: red}", `unknown style field "colour"`},
		{"fractional count", "- repeat: {count: 1.5, do: [save]}", "invalid repeat count"},
		{"negative count", "- repeat: {count: -1, do: [save]}", "negative repeat count"},
		{"zero width", "- pendown: {width: 0}", "stroke width must be positive"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := ParseYAML([]byte(test.src))
			require.Error(t, err)
			assert.Contains(t, err.Error(), test.msg)
		})
	}
}

func TestParseYAMLNegativeRepeatIs(t *testing.T) {
	_, err := ParseYAML([]byte("- group:\n  - repeat: {count: -4, do: [penup]}"))
	require.ErrorIs(t, err, turtle.ErrNegativeRepeat)
}

func TestParseAngle(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"1", 1},
		{"180deg", math.Pi},
		{" 2 rad", 2},
		{"0.5turn", math.Pi},
		{"-90deg", -math.Pi / 2},
		{"30deg", math.Pi / 6},
	}
	for _, test := range tests {
		a, err := ParseAngle(test.in)
		require.NoError(t, err, test.in)
		assert.InDelta(t, test.want, a.Value(), 1e-12, test.in)
	}
}

func TestYAMLRoundTrip(t *testing.T) {
	enc, err := yaml.Marshal(flower())
	require.NoError(t, err)
	s, err := ParseYAML(enc)
	require.NoError(t, err)
	assert.Equal(t, turtle.Run(flower()...), turtle.Run(s...))
}

func TestYAMLUnsupported(t *testing.T) {
	_, err := yaml.Marshal(Script{turtle.Repeat{Count: 1}})
	assert.Error(t, err)
}

func TestCBORScriptRoundTrip(t *testing.T) {
	enc, err := EncodeScript(flower())
	require.NoError(t, err)
	s, err := DecodeScript(enc)
	require.NoError(t, err)
	assert.Equal(t, flower(), s)

	again, err := EncodeScript(s)
	require.NoError(t, err)
	assert.Equal(t, enc, again, "encoding is not deterministic")
}

func TestCBORScriptRejects(t *testing.T) {
	enc, err := EncodeScript(Script{turtle.Repeat{Count: -2, Command: turtle.Save{}}})
	require.NoError(t, err)
	_, err = DecodeScript(enc)
	require.ErrorIs(t, err, turtle.ErrNegativeRepeat)

	bad, err := encMode.Marshal([]wireCommand{{Op: opGo}})
	require.NoError(t, err)
	_, err = DecodeScript(bad)
	assert.ErrorContains(t, err, "arguments")

	bad, err = encMode.Marshal([]wireCommand{{Op: opRepeat, Count: 2}})
	require.NoError(t, err)
	_, err = DecodeScript(bad)
	assert.ErrorContains(t, err, "ends inside")

	bad, err = encMode.Marshal([]wireCommand{{Op: opGroup, Size: 3}, {Op: opSave}})
	require.NoError(t, err)
	_, err = DecodeScript(bad)
	assert.ErrorContains(t, err, "group of 3 commands")

	bad, err = encMode.Marshal([]wireCommand{{Op: 99}})
	require.NoError(t, err)
	_, err = DecodeScript(bad)
	assert.ErrorContains(t, err, "unknown command")

	bad, err = encMode.Marshal([]map[int]any{{1: opSave, 9: "extra"}})
	require.NoError(t, err)
	_, err = DecodeScript(bad)
	assert.Error(t, err)

	_, err = DecodeScript([]byte{0xff})
	assert.Error(t, err)
}

func TestCBORTrailsRoundTrip(t *testing.T) {
	trails := turtle.Run(flower()...)
	enc, err := EncodeTrails(trails)
	require.NoError(t, err)
	got, err := DecodeTrails(enc)
	require.NoError(t, err)
	assert.Equal(t, trails, got)

	empty := turtle.Run()
	enc, err = EncodeTrails(empty)
	require.NoError(t, err)
	got, err = DecodeTrails(enc)
	require.NoError(t, err)
	assert.Equal(t, empty, got)
}

func TestCBORScriptDeepNesting(t *testing.T) {
	var c turtle.Command = turtle.Go{Distance: 1}
	for i := range 1000 {
		if i%2 == 0 {
			c = turtle.Repeat{Count: 1, Command: c}
		} else {
			c = turtle.Group{turtle.PenUp{}, c}
		}
	}
	s := Script{turtle.PenDown{Style: turtle.DefaultStyle()}, c}
	enc, err := EncodeScript(s)
	require.NoError(t, err)
	got, err := DecodeScript(enc)
	require.NoError(t, err)
	assert.Equal(t, s, got)
}

func TestCBORTrailsLarge(t *testing.T) {
	trails := turtle.Run(
		turtle.PenDown{Style: turtle.DefaultStyle()},
		turtle.Repeat{Count: 200000, Command: turtle.Go{Distance: 1}},
	)
	require.Len(t, trails[0].Path, 200001)
	enc, err := EncodeTrails(trails)
	require.NoError(t, err)
	got, err := DecodeTrails(enc)
	require.NoError(t, err)
	assert.Equal(t, trails, got)
}
