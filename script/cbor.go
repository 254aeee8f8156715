package script

import (
	"fmt"
	"math"

	"github.com/fxamacker/cbor/v2"
	"turtle.dev/angle"
	"turtle.dev/turtle"
)

// Command operation codes of the binary format.
const (
	opTeleport = iota + 1
	opLookTo
	opGo
	opTurn
	opPenDown
	opPenUp
	opSave
	opRestore
	opPivot
	opRepeat
	opGroup
)

// Path instruction codes of the binary format.
const (
	insMoveTo = iota + 1
	insLineTo
	insArc
)

// wireCommand is one command of a script in preorder. A repeat is followed
// by its body; a group is followed by Size commands.
type wireCommand struct {
	Op    uint8     `cbor:"1,keyasint"`
	Args  []float64 `cbor:"2,keyasint,omitempty"`
	Color string    `cbor:"3,keyasint,omitempty"`
	Count int       `cbor:"4,keyasint,omitempty"`
	Size  int       `cbor:"5,keyasint,omitempty"`
}

type wireTrail struct {
	_     struct{} `cbor:",toarray"`
	Color string
	Width float64
	Path  []wireInstruction
}

type wireInstruction struct {
	_    struct{} `cbor:",toarray"`
	Op   uint8
	Args []float64
}

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	em, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	encMode = em
	dm, err := cbor.DecOptions{
		ExtraReturnErrors: cbor.ExtraDecErrorUnknownField,
		MaxArrayElements:  math.MaxInt32,
		MaxMapPairs:       math.MaxInt32,
	}.DecMode()
	if err != nil {
		panic(err)
	}
	decMode = dm
}

// EncodeScript encodes a script in its binary form. Commands are stored as
// a flat list, so the encoding nests equally deep for any script.
func EncodeScript(s Script) ([]byte, error) {
	var w []wireCommand
	for _, c := range s {
		var err error
		if w, err = appendWire(w, c); err != nil {
			return nil, err
		}
	}
	return encMode.Marshal(w)
}

// DecodeScript decodes and validates a binary script.
func DecodeScript(enc []byte) (Script, error) {
	var w []wireCommand
	if err := decMode.Unmarshal(enc, &w); err != nil {
		return nil, fmt.Errorf("script: %w", err)
	}
	d := &wireDecoder{w: w}
	var s Script
	for d.pos < len(w) {
		c, err := d.next()
		if err != nil {
			return nil, err
		}
		s = append(s, c)
	}
	if err := turtle.Validate(s...); err != nil {
		return nil, fmt.Errorf("script: %w", err)
	}
	return s, nil
}

func appendWire(w []wireCommand, c turtle.Command) ([]wireCommand, error) {
	switch c := c.(type) {
	case turtle.Teleport:
		return append(w, wireCommand{Op: opTeleport, Args: []float64{c.To.X, c.To.Y}}), nil
	case turtle.LookTo:
		return append(w, wireCommand{Op: opLookTo, Args: []float64{c.At.X, c.At.Y}}), nil
	case turtle.Go:
		return append(w, wireCommand{Op: opGo, Args: []float64{c.Distance}}), nil
	case turtle.Turn:
		return append(w, wireCommand{Op: opTurn, Args: []float64{c.Angle.Value()}}), nil
	case turtle.PenDown:
		return append(w, wireCommand{Op: opPenDown, Args: []float64{c.Style.Width}, Color: c.Style.Color}), nil
	case turtle.PenUp:
		return append(w, wireCommand{Op: opPenUp}), nil
	case turtle.Save:
		return append(w, wireCommand{Op: opSave}), nil
	case turtle.Restore:
		return append(w, wireCommand{Op: opRestore}), nil
	case turtle.Pivot:
		return append(w, wireCommand{Op: opPivot, Args: []float64{c.Distance, c.Arc.Value()}}), nil
	case turtle.Repeat:
		return appendWire(append(w, wireCommand{Op: opRepeat, Count: c.Count}), c.Command)
	case turtle.Group:
		w = append(w, wireCommand{Op: opGroup, Size: len(c)})
		for _, sub := range c {
			var err error
			if w, err = appendWire(w, sub); err != nil {
				return nil, err
			}
		}
		return w, nil
	}
	return nil, fmt.Errorf("script: unsupported command %T", c)
}

type wireDecoder struct {
	w   []wireCommand
	pos int
}

func (d *wireDecoder) next() (turtle.Command, error) {
	if d.pos == len(d.w) {
		return nil, fmt.Errorf("script: command list ends inside a repeat or group")
	}
	w := d.w[d.pos]
	d.pos++
	nargs := map[uint8]int{
		opTeleport: 2, opLookTo: 2, opGo: 1, opTurn: 1, opPenDown: 1, opPivot: 2,
	}[w.Op]
	if len(w.Args) != nargs {
		return nil, fmt.Errorf("script: command %d: got %d arguments, want %d", w.Op, len(w.Args), nargs)
	}
	a := w.Args
	switch w.Op {
	case opTeleport:
		return turtle.Teleport{To: turtle.Point{X: a[0], Y: a[1]}}, nil
	case opLookTo:
		return turtle.LookTo{At: turtle.Point{X: a[0], Y: a[1]}}, nil
	case opGo:
		return turtle.Go{Distance: a[0]}, nil
	case opTurn:
		return turtle.Turn{Angle: angle.New(a[0])}, nil
	case opPenDown:
		return turtle.PenDown{Style: turtle.Style{Color: w.Color, Width: a[0]}}, nil
	case opPenUp:
		return turtle.PenUp{}, nil
	case opSave:
		return turtle.Save{}, nil
	case opRestore:
		return turtle.Restore{}, nil
	case opPivot:
		return turtle.Pivot{Distance: a[0], Arc: angle.New(a[1])}, nil
	case opRepeat:
		body, err := d.next()
		if err != nil {
			return nil, err
		}
		return turtle.Repeat{Count: w.Count, Command: body}, nil
	case opGroup:
		if w.Size < 0 || w.Size > len(d.w)-d.pos {
			return nil, fmt.Errorf("script: group of %d commands, %d left", w.Size, len(d.w)-d.pos)
		}
		g := make(turtle.Group, 0, w.Size)
		for range w.Size {
			c, err := d.next()
			if err != nil {
				return nil, err
			}
			g = append(g, c)
		}
		return g, nil
	}
	return nil, fmt.Errorf("script: unknown command %d", w.Op)
}

// EncodeTrails encodes a recording in binary form. The encoding is
// deterministic and preserves coordinates exactly.
func EncodeTrails(trails []turtle.Trail) ([]byte, error) {
	w := make([]wireTrail, len(trails))
	for i, t := range trails {
		wt := wireTrail{Color: t.Style.Color, Width: t.Style.Width}
		for _, ins := range t.Path {
			var wi wireInstruction
			switch ins := ins.(type) {
			case turtle.MoveTo:
				wi = wireInstruction{Op: insMoveTo, Args: []float64{ins.X, ins.Y}}
			case turtle.LineTo:
				wi = wireInstruction{Op: insLineTo, Args: []float64{ins.X, ins.Y}}
			case turtle.Arc:
				wi = wireInstruction{Op: insArc, Args: []float64{ins.CenterX, ins.CenterY, ins.Radius, ins.StartAngle, ins.EndAngle}}
			default:
				return nil, fmt.Errorf("script: unsupported instruction %T", ins)
			}
			wt.Path = append(wt.Path, wi)
		}
		w[i] = wt
	}
	return encMode.Marshal(w)
}

// DecodeTrails decodes a recording encoded by EncodeTrails.
func DecodeTrails(enc []byte) ([]turtle.Trail, error) {
	var w []wireTrail
	if err := decMode.Unmarshal(enc, &w); err != nil {
		return nil, fmt.Errorf("script: %w", err)
	}
	trails := make([]turtle.Trail, len(w))
	for i, wt := range w {
		t := turtle.Trail{Style: turtle.Style{Color: wt.Color, Width: wt.Width}}
		for _, wi := range wt.Path {
			a := wi.Args
			want := 2
			if wi.Op == insArc {
				want = 5
			}
			if len(a) != want {
				return nil, fmt.Errorf("script: trail %d: instruction %d: got %d arguments, want %d", i, wi.Op, len(a), want)
			}
			switch wi.Op {
			case insMoveTo:
				t.Path = append(t.Path, turtle.MoveTo{X: a[0], Y: a[1]})
			case insLineTo:
				t.Path = append(t.Path, turtle.LineTo{X: a[0], Y: a[1]})
			case insArc:
				t.Path = append(t.Path, turtle.Arc{CenterX: a[0], CenterY: a[1], Radius: a[2], StartAngle: a[3], EndAngle: a[4]})
			default:
				return nil, fmt.Errorf("script: trail %d: unknown instruction %d", i, wi.Op)
			}
		}
		trails[i] = t
	}
	return trails, nil
}
