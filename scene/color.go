package scene

// Color is a straight-alpha RGBA color with float32 components.
// Components are not clamped on construction; WithOpacity clamps the
// final alpha into [0, 1].
type Color struct {
	R, G, B, A float32
}

// RGBA builds a Color from a decoded [r, g, b, a] quad.
func RGBA(c [4]float32) Color {
	return Color{R: c[0], G: c[1], B: c[2], A: c[3]}
}

// WithOpacity returns the color with its alpha multiplied by opacity
// and clamped to [0, 1]. NaN alpha clamps to 0.
func (c Color) WithOpacity(opacity float32) Color {
	a := c.A * opacity
	switch {
	case a > 1:
		a = 1
	case a < 0 || a != a: // negative or NaN
		a = 0
	}
	c.A = a
	return c
}
