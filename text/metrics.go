package text

import "math"

// Metrics holds the vertical metrics and fallback advance resolved for
// one text record, all in device-independent pixels.
type Metrics struct {
	// Size is the effective font size. Non-finite or non-positive
	// requested sizes resolve to 16.
	Size float32

	// Ascent is the distance from the baseline to the top (positive).
	Ascent float32

	// Descent is the distance from the baseline to the bottom,
	// negative as the font reports it.
	Descent float32

	// Leading is the recommended extra gap between lines.
	Leading float32

	// LineHeight is the baseline-to-baseline advance.
	LineHeight float32

	// FallbackWidth sizes tabs and glyphs whose advance cannot be
	// resolved.
	FallbackWidth float32
}

// Resolve computes metrics for one record. Each metric that the face
// cannot supply, or that comes back non-finite, is substituted
// independently: ascent 0.8*size, descent -0.2*size, leading 0. The
// line height is the requested one when positive and finite, else the
// face's natural height, else 1.2*size.
func Resolve(src *Source, fontSize, lineHeight float32) Metrics {
	size := fontSize
	if !isFinite(size) || size <= 0 {
		size = 16
	}
	m := Metrics{Size: size}

	ascent, descent, gap, ok := src.Extents(size)
	if !ok || !isFinite(ascent) {
		ascent = 0.8 * size
	}
	if !ok || !isFinite(descent) {
		descent = -0.2 * size
	}
	if !ok || !isFinite(gap) {
		gap = 0
	}
	m.Ascent, m.Descent, m.Leading = ascent, descent, gap

	if adv, ok := src.SpaceAdvance(size); ok && isFinite(adv) && adv > 0 {
		m.FallbackWidth = adv
	} else {
		m.FallbackWidth = 0.5 * size
	}

	natural := ascent - descent + gap
	switch {
	case isFinite(lineHeight) && lineHeight > 0:
		m.LineHeight = lineHeight
	case isFinite(natural) && natural > 0:
		m.LineHeight = natural
	default:
		m.LineHeight = 1.2 * size
	}
	return m
}

func isFinite(v float32) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
