package angle

import (
	"math"
	"testing"
)

func congruent(a, b float64) bool {
	const tol = 1e-9
	d := math.Mod(a-b, twoPi)
	return math.Abs(d) < tol || math.Abs(math.Abs(d)-twoPi) < tol
}

func TestNewKeepsInRange(t *testing.T) {
	values := []float64{0, 1, -1, math.Pi, -math.Pi, twoPi, -twoPi, math.Nextafter(twoPi, 0)}
	for _, v := range values {
		if got := New(v).Value(); got != v {
			t.Errorf("New(%v) = %v, want unchanged", v, got)
		}
	}
}

func TestNewNormalizes(t *testing.T) {
	values := []float64{7, -7, 3 * math.Pi, -5 * math.Pi, 1000.5, -1e6, math.Nextafter(twoPi, 10)}
	for _, v := range values {
		got := New(v).Value()
		if !(got > -twoPi && got < twoPi) {
			t.Errorf("New(%v) = %v, outside (-2π, 2π)", v, got)
		}
		if !congruent(got, v) {
			t.Errorf("New(%v) = %v, not congruent mod 2π", v, got)
		}
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name string
		a    Angle
		want float64
	}{
		{"zero", Zero(), 0},
		{"quarter", QuarterTurn(), math.Pi / 2},
		{"half", HalfTurn(), math.Pi},
		{"turn", Turn(), twoPi},
		{"degrees", Degrees(90), math.Pi / 2},
	}
	for _, test := range tests {
		if got := test.a.Value(); got != test.want {
			t.Errorf("%s: got %v, want %v", test.name, got, test.want)
		}
	}
	if d := Degrees(45).Degrees(); math.Abs(d-45) > 1e-12 {
		t.Errorf("Degrees round trip: got %v", d)
	}
}

func TestComposition(t *testing.T) {
	a, b := New(5), New(4)
	if got := a.Add(b).Value(); !congruent(got, 9) || math.Abs(got) >= twoPi {
		t.Errorf("5+4 = %v", got)
	}
	if got := a.Subtract(b).Value(); got != 1 {
		t.Errorf("5-4 = %v", got)
	}
	if got := a.Negate().Value(); got != -5 {
		t.Errorf("-5 = %v", got)
	}
	if got := Turn().Add(Turn()).Value(); got != 0 {
		t.Errorf("2π+2π = %v", got)
	}
}

func TestTrig(t *testing.T) {
	a := New(math.Pi / 3)
	if got := a.CosR(10); math.Abs(got-5) > 1e-12 {
		t.Errorf("CosR = %v", got)
	}
	if got := a.SinR(2); math.Abs(got-math.Sqrt(3)) > 1e-12 {
		t.Errorf("SinR = %v", got)
	}
	if got := Zero().Cos(); got != 1 {
		t.Errorf("cos 0 = %v", got)
	}
}

func FuzzAddClosure(f *testing.F) {
	f.Add(1.0, 2.0)
	f.Add(6.0, 6.0)
	f.Add(-100.0, 3.5)
	f.Fuzz(func(t *testing.T, x, y float64) {
		if math.IsNaN(x) || math.IsInf(x, 0) || math.IsNaN(y) || math.IsInf(y, 0) {
			return
		}
		if math.Abs(x) > 1e6 || math.Abs(y) > 1e6 {
			return
		}
		a, b := New(x), New(y)
		got := a.Add(b).Value()
		if math.Abs(got) > twoPi {
			t.Fatalf("%v+%v = %v, out of range", x, y, got)
		}
		if !congruent(got, a.Value()+b.Value()) {
			t.Fatalf("%v+%v = %v, not congruent", x, y, got)
		}
	})
}
