// package affine implements the transforms from trail space to
// image space on the golang.org/x/image/math/f32 data types.
package affine

import (
	"math"

	"golang.org/x/image/math/f32"
)

func mul(A, B f32.Aff3) (r f32.Aff3) {
	r[0] = A[0]*B[0] + A[1]*B[3]
	r[1] = A[0]*B[1] + A[1]*B[4]
	r[2] = A[0]*B[2] + A[1]*B[5] + A[2]
	r[3] = A[3]*B[0] + A[4]*B[3]
	r[4] = A[3]*B[1] + A[4]*B[4]
	r[5] = A[3]*B[2] + A[4]*B[5] + A[5]
	return r
}

// Vec returns the vector (x, y).
func Vec(x, y float64) f32.Vec2 {
	return f32.Vec2{float32(x), float32(y)}
}

func Scale(p f32.Vec2, s float32) f32.Vec2 {
	return f32.Vec2{p[0] * s, p[1] * s}
}

func Add(p ...f32.Vec2) f32.Vec2 {
	r := p[0]
	for i := 1; i < len(p); i++ {
		r = f32.Vec2{r[0] + p[i][0], r[1] + p[i][1]}
	}
	return r
}

func Sub(p ...f32.Vec2) f32.Vec2 {
	r := p[0]
	for i := 1; i < len(p); i++ {
		r = f32.Vec2{r[0] - p[i][0], r[1] - p[i][1]}
	}
	return r
}

func Length(p f32.Vec2) float32 {
	return float32(math.Hypot(float64(p[0]), float64(p[1])))
}

// Identity is the transform that leaves points unchanged.
func Identity() f32.Aff3 {
	return f32.Aff3{
		1, 0, 0,
		0, 1, 0,
	}
}

// Mul composes transforms, the last one applied first.
func Mul(M ...f32.Aff3) (r f32.Aff3) {
	r = M[0]
	for i := 1; i < len(M); i++ {
		r = mul(r, M[i])
	}
	return r
}

func Offsetting(p f32.Vec2) f32.Aff3 {
	return f32.Aff3{
		1, 0, p[0],
		0, 1, p[1],
	}
}

func Scaling(s f32.Vec2) f32.Aff3 {
	return f32.Aff3{
		s[0], 0, 0,
		0, s[1], 0,
	}
}

func Rotating(radians float32) f32.Aff3 {
	sin, cos := math.Sincos(float64(radians))
	s, c := float32(sin), float32(cos)
	return f32.Aff3{
		c, -s, 0,
		s, c, 0,
	}
}

func Transform(m f32.Aff3, p f32.Vec2) f32.Vec2 {
	return f32.Vec2{
		p[0]*m[0] + p[1]*m[1] + m[2],
		p[0]*m[3] + p[1]*m[4] + m[5],
	}
}

// Scalar returns the factor m scales lengths by, assuming m is a
// similarity transform.
func Scalar(m f32.Aff3) float32 {
	return Length(f32.Vec2{m[0], m[3]})
}
