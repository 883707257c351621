package text

import "strings"

// Align selects horizontal alignment within the wrap width.
type Align uint8

const (
	AlignStart  Align = 0
	AlignCenter Align = 1
	AlignEnd    Align = 2
)

// AlignFrom maps a display-list alignment byte; unknown values fall
// back to AlignStart.
func AlignFrom(b byte) Align {
	if b > 2 {
		return AlignStart
	}
	return Align(b)
}

// tabStops is the tab advance in fallback widths.
const tabStops = 4

// Glyph is a positioned glyph; X, Y are the baseline origin relative
// to the text block's anchor.
type Glyph struct {
	ID   uint32
	X, Y float32
}

// Line is one laid-out visual line.
type Line struct {
	Glyphs []Glyph
	// Width is the measured advance width; alignment offsets are
	// already folded into the glyph positions.
	Width float32
	// Baseline is the line's baseline y, relative to the anchor.
	Baseline float32
}

// Layout is the result of shaping one text record.
type Layout struct {
	Lines    []Line
	Resolved Metrics
}

// Shaper lays out text against a single source face.
type Shaper struct {
	src *Source
}

// NewShaper returns a shaper over src.
func NewShaper(src *Source) *Shaper {
	return &Shaper{src: src}
}

// Layout breaks content into visual lines and positions every glyph.
//
// Hard breaks: content splits on '\n'; every raw line yields at least
// one visual line, so "a\n\nb" produces three. Wrapping applies only
// when maxWidth is finite and positive: each raw line splits on
// whitespace runs and words are packed greedily with single-space
// joins; a word wider than maxWidth gets its own overflowing line.
//
// The first baseline sits at ascent; successive baselines advance by
// the resolved line height. Alignment offsets each line within
// maxWidth when wrapping, else within its own width (so start, center
// and end coincide on unconstrained lines).
func (sh *Shaper) Layout(content string, fontSize, lineHeight, maxWidth float32, align Align) Layout {
	m := Resolve(sh.src, fontSize, lineHeight)
	out := Layout{Resolved: m}

	wrap := isFinite(maxWidth) && maxWidth > 0
	var lines []string
	for _, raw := range strings.Split(content, "\n") {
		if !wrap {
			lines = append(lines, raw)
			continue
		}
		words := strings.Fields(raw)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		spaceW := sh.measure(" ", m)
		cur := words[0]
		curW := sh.measure(cur, m)
		for _, word := range words[1:] {
			w := sh.measure(word, m)
			if curW+spaceW+w <= maxWidth {
				cur += " " + word
				curW += spaceW + w
			} else {
				lines = append(lines, cur)
				cur, curW = word, w
			}
		}
		lines = append(lines, cur)
	}

	for i, line := range lines {
		baseline := m.Ascent + float32(i)*m.LineHeight
		glyphs, width := sh.emit(line, baseline, m)

		boxWidth := width
		if wrap {
			boxWidth = maxWidth
		}
		var offset float32
		switch align {
		case AlignCenter:
			offset = (boxWidth - width) / 2
		case AlignEnd:
			offset = boxWidth - width
		}
		if offset != 0 {
			for j := range glyphs {
				glyphs[j].X += offset
			}
		}
		out.Lines = append(out.Lines, Line{Glyphs: glyphs, Width: width, Baseline: baseline})
	}
	return out
}

// advanceOf resolves one rune to a glyph and its advance. Tabs advance
// without a glyph; unresolvable runes map to .notdef at the fallback
// width.
func (sh *Shaper) advanceOf(r rune, m Metrics) (gid uint32, adv float32, drawn bool) {
	if r == '\t' {
		return 0, tabStops * m.FallbackWidth, false
	}
	gid, ok := sh.src.GlyphFor(r)
	if !ok {
		return 0, m.FallbackWidth, true
	}
	adv, ok = sh.src.Advance(gid, m.Size)
	if !ok || !isFinite(adv) {
		adv = m.FallbackWidth
	}
	return gid, adv, true
}

func (sh *Shaper) measure(s string, m Metrics) float32 {
	var w float32
	for _, r := range s {
		_, adv, _ := sh.advanceOf(r, m)
		w += adv
	}
	return w
}

func (sh *Shaper) emit(s string, baseline float32, m Metrics) ([]Glyph, float32) {
	var glyphs []Glyph
	var x float32
	for _, r := range s {
		gid, adv, drawn := sh.advanceOf(r, m)
		if drawn {
			glyphs = append(glyphs, Glyph{ID: gid, X: x, Y: baseline})
		}
		x += adv
	}
	return glyphs, x
}
