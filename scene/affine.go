// Package scene holds the retained drawing state built from a decoded
// display list: transforms, colors, paths and an append-only command
// list consumed by a vector rasterizer.
package scene

// Affine is a 2D affine transform stored in the display-list element
// order [a, b, c, d, e, f], mapping
//
//	x' = a*x + c*y + e
//	y' = b*x + d*y + f
//
// so (e, f) is the translation.
type Affine struct {
	A, B, C, D, E, F float32
}

// Identity returns the identity transform.
func Identity() Affine {
	return Affine{A: 1, D: 1}
}

// FromElements builds an Affine from wire-order elements.
func FromElements(m [6]float32) Affine {
	return Affine{A: m[0], B: m[1], C: m[2], D: m[3], E: m[4], F: m[5]}
}

// Elements returns the transform in wire order.
func (t Affine) Elements() [6]float32 {
	return [6]float32{t.A, t.B, t.C, t.D, t.E, t.F}
}

// Translate returns a pure translation.
func Translate(x, y float32) Affine {
	return Affine{A: 1, D: 1, E: x, F: y}
}

// Scale returns a pure scale about the origin.
func Scale(sx, sy float32) Affine {
	return Affine{A: sx, D: sy}
}

// Apply transforms the point (x, y).
func (t Affine) Apply(x, y float32) (float32, float32) {
	return t.A*x + t.C*y + t.E, t.B*x + t.D*y + t.F
}

// Mul returns the transform equivalent to applying o first, then t.
func (t Affine) Mul(o Affine) Affine {
	return Affine{
		A: t.A*o.A + t.C*o.B,
		B: t.B*o.A + t.D*o.B,
		C: t.A*o.C + t.C*o.D,
		D: t.B*o.C + t.D*o.D,
		E: t.A*o.E + t.C*o.F + t.E,
		F: t.B*o.E + t.D*o.F + t.F,
	}
}

// IsIdentity reports whether t is exactly the identity.
func (t Affine) IsIdentity() bool {
	return t == Identity()
}
