// package script decodes and encodes turtle scripts and recordings.
//
// Scripts are written in YAML as a list of commands. A command is a
// bare word for commands without arguments, or a mapping with a
// single key:
//
//	- pendown: {color: red, width: 2}
//	- repeat:
//	    count: 4
//	    do:
//	      - go: 10
//	      - turn: 90deg
//	- penup
//
// Angles are radians unless suffixed by deg, rad or turn.
package script

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
	"turtle.dev/angle"
	"turtle.dev/turtle"
)

// Script is a list of commands that decodes from and encodes to YAML.
type Script []turtle.Command

// ParseYAML decodes and validates a YAML script.
func ParseYAML(data []byte) (Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("script: %w", err)
	}
	if err := turtle.Validate(s...); err != nil {
		return nil, fmt.Errorf("script: %w", err)
	}
	return s, nil
}

// MarshalYAML encodes the script. Commands must be of the types
// defined by package turtle.
func (s Script) MarshalYAML() (any, error) {
	return encodeList(s)
}

func (s *Script) UnmarshalYAML(n *yaml.Node) error {
	cmds, err := decodeList(n)
	if err != nil {
		return err
	}
	*s = cmds
	return nil
}

type decodeError struct {
	line int
	msg  string
}

func (e *decodeError) Error() string {
	return fmt.Sprintf("line %d: %s", e.line, e.msg)
}

func errorf(n *yaml.Node, format string, args ...any) error {
	return &decodeError{line: n.Line, msg: fmt.Sprintf(format, args...)}
}

func decodeList(n *yaml.Node) ([]turtle.Command, error) {
	if n.Kind == yaml.DocumentNode && len(n.Content) == 1 {
		n = n.Content[0]
	}
	if n.Kind != yaml.SequenceNode {
		return nil, errorf(n, "expected a list of commands")
	}
	cmds := make([]turtle.Command, 0, len(n.Content))
	for _, c := range n.Content {
		cmd, err := decodeCommand(c)
		if err != nil {
			return nil, err
		}
		cmds = append(cmds, cmd)
	}
	return cmds, nil
}

func decodeCommand(n *yaml.Node) (turtle.Command, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		switch strings.ToLower(n.Value) {
		case "penup":
			return turtle.PenUp{}, nil
		case "pendown":
			return turtle.PenDown{Style: turtle.DefaultStyle()}, nil
		case "save":
			return turtle.Save{}, nil
		case "restore":
			return turtle.Restore{}, nil
		}
		return nil, errorf(n, "unknown command %q", n.Value)
	case yaml.MappingNode:
		if len(n.Content) != 2 {
			return nil, errorf(n, "a command has exactly one key, got %d", len(n.Content)/2)
		}
	default:
		return nil, errorf(n, "expected a command")
	}
	key, val := n.Content[0], n.Content[1]
	switch name := strings.ToLower(key.Value); name {
	case "teleport", "lookto":
		p, err := decodePoint(val)
		if err != nil {
			return nil, err
		}
		if name == "lookto" {
			return turtle.LookTo{At: p}, nil
		}
		return turtle.Teleport{To: p}, nil
	case "go":
		d, err := decodeFloat(val)
		if err != nil {
			return nil, err
		}
		return turtle.Go{Distance: d}, nil
	case "turn":
		a, err := decodeAngle(val)
		if err != nil {
			return nil, err
		}
		return turtle.Turn{Angle: a}, nil
	case "pendown":
		return decodePenDown(val)
	case "pivot":
		var p struct {
			Distance yaml.Node `yaml:"distance"`
			Arc      yaml.Node `yaml:"arc"`
		}
		if err := decodeFields(val, &p, "distance", "arc"); err != nil {
			return nil, err
		}
		d, err := decodeFloat(&p.Distance)
		if err != nil {
			return nil, err
		}
		a, err := decodeAngle(&p.Arc)
		if err != nil {
			return nil, err
		}
		return turtle.Pivot{Distance: d, Arc: a}, nil
	case "repeat":
		var r struct {
			Count yaml.Node `yaml:"count"`
			Do    yaml.Node `yaml:"do"`
		}
		if err := decodeFields(val, &r, "count", "do"); err != nil {
			return nil, err
		}
		var count int
		if err := r.Count.Decode(&count); err != nil {
			return nil, errorf(&r.Count, "invalid repeat count %q", r.Count.Value)
		}
		body, err := decodeBody(&r.Do)
		if err != nil {
			return nil, err
		}
		return turtle.Repeat{Count: count, Command: body}, nil
	case "group":
		cmds, err := decodeList(val)
		if err != nil {
			return nil, err
		}
		return turtle.Group(cmds), nil
	}
	return nil, errorf(key, "unknown command %q", key.Value)
}

// decodeBody decodes a repeat body: a single command, or a list that
// becomes a group unless it holds exactly one command.
func decodeBody(n *yaml.Node) (turtle.Command, error) {
	if n.Kind != yaml.SequenceNode {
		return decodeCommand(n)
	}
	cmds, err := decodeList(n)
	if err != nil {
		return nil, err
	}
	if len(cmds) == 1 {
		return cmds[0], nil
	}
	return turtle.Group(cmds), nil
}

// decodeFields decodes a mapping into v after checking that it has
// exactly the keys listed.
func decodeFields(n *yaml.Node, v any, keys ...string) error {
	if n.Kind != yaml.MappingNode {
		return errorf(n, "expected a mapping with %s", strings.Join(keys, ", "))
	}
	seen := make(map[string]bool)
	for i := 0; i < len(n.Content); i += 2 {
		k := n.Content[i]
		found := false
		for _, want := range keys {
			if k.Value == want {
				found = true
			}
		}
		if !found {
			return errorf(k, "unknown field %q", k.Value)
		}
		seen[k.Value] = true
	}
	for _, k := range keys {
		if !seen[k] {
			return errorf(n, "missing field %q", k)
		}
	}
	return n.Decode(v)
}

func decodePenDown(n *yaml.Node) (turtle.Command, error) {
	s := turtle.DefaultStyle()
	if n.Kind == yaml.ScalarNode && n.Tag == "!!null" {
		return turtle.PenDown{Style: s}, nil
	}
	if n.Kind != yaml.MappingNode {
		return nil, errorf(n, "expected a style mapping")
	}
	var style struct {
		Color *string  `yaml:"color"`
		Width *float64 `yaml:"width"`
	}
	for i := 0; i < len(n.Content); i += 2 {
		if k := n.Content[i]; k.Value != "color" && k.Value != "width" {
			return nil, errorf(k, "unknown style field %q", k.Value)
		}
	}
	if err := n.Decode(&style); err != nil {
		return nil, errorf(n, "invalid style: %v", err)
	}
	if style.Color != nil {
		s.Color = *style.Color
	}
	if style.Width != nil {
		s.Width = *style.Width
	}
	return turtle.PenDown{Style: s}, nil
}

func decodeFloat(n *yaml.Node) (float64, error) {
	var f float64
	if err := n.Decode(&f); err != nil {
		return 0, errorf(n, "expected a number, got %q", n.Value)
	}
	return f, nil
}

func decodePoint(n *yaml.Node) (turtle.Point, error) {
	switch n.Kind {
	case yaml.SequenceNode:
		var xy []float64
		if err := n.Decode(&xy); err != nil || len(xy) != 2 {
			return turtle.Point{}, errorf(n, "expected a point [x, y]")
		}
		return turtle.Point{X: xy[0], Y: xy[1]}, nil
	case yaml.MappingNode:
		var p struct {
			X, Y float64
		}
		if err := decodeFields(n, &p, "x", "y"); err != nil {
			return turtle.Point{}, err
		}
		return turtle.Point{X: p.X, Y: p.Y}, nil
	}
	return turtle.Point{}, errorf(n, "expected a point [x, y]")
}

func decodeAngle(n *yaml.Node) (angle.Angle, error) {
	if n.Kind != yaml.ScalarNode {
		return angle.Angle{}, errorf(n, "expected an angle")
	}
	a, err := ParseAngle(n.Value)
	if err != nil {
		return angle.Angle{}, errorf(n, "%v", err)
	}
	return a, nil
}

// ParseAngle parses an angle in radians, or in the unit given by a
// deg, rad or turn suffix.
func ParseAngle(s string) (angle.Angle, error) {
	v := strings.TrimSpace(s)
	unit := angle.New
	for _, u := range []struct {
		suffix string
		unit   func(float64) angle.Angle
	}{
		{"deg", angle.Degrees},
		{"rad", angle.New},
		{"turn", func(f float64) angle.Angle { return angle.New(f * 2 * math.Pi) }},
	} {
		if num, ok := strings.CutSuffix(v, u.suffix); ok {
			v, unit = strings.TrimSpace(num), u.unit
			break
		}
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return angle.Angle{}, fmt.Errorf("invalid angle %q", s)
	}
	return unit(f), nil
}

func encodeList(cmds []turtle.Command) ([]any, error) {
	l := make([]any, 0, len(cmds))
	for _, c := range cmds {
		v, err := encodeCommand(c)
		if err != nil {
			return nil, err
		}
		l = append(l, v)
	}
	return l, nil
}

func encodeCommand(c turtle.Command) (any, error) {
	switch c := c.(type) {
	case turtle.Teleport:
		return map[string]any{"teleport": []float64{c.To.X, c.To.Y}}, nil
	case turtle.LookTo:
		return map[string]any{"lookto": []float64{c.At.X, c.At.Y}}, nil
	case turtle.Go:
		return map[string]any{"go": c.Distance}, nil
	case turtle.Turn:
		return map[string]any{"turn": c.Angle.Value()}, nil
	case turtle.PenDown:
		return map[string]any{"pendown": map[string]any{
			"color": c.Style.Color,
			"width": c.Style.Width,
		}}, nil
	case turtle.PenUp:
		return "penup", nil
	case turtle.Save:
		return "save", nil
	case turtle.Restore:
		return "restore", nil
	case turtle.Pivot:
		return map[string]any{"pivot": map[string]any{
			"distance": c.Distance,
			"arc":      c.Arc.Value(),
		}}, nil
	case turtle.Repeat:
		body := []turtle.Command{c.Command}
		if g, ok := c.Command.(turtle.Group); ok {
			body = g
		}
		do, err := encodeList(body)
		if err != nil {
			return nil, err
		}
		return map[string]any{"repeat": map[string]any{
			"count": c.Count,
			"do":    do,
		}}, nil
	case turtle.Group:
		l, err := encodeList(c)
		if err != nil {
			return nil, err
		}
		return map[string]any{"group": l}, nil
	}
	return nil, fmt.Errorf("script: unsupported command %T", c)
}
