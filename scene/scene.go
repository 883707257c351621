package scene

// FillRule selects how overlapping subpaths combine.
type FillRule uint8

const (
	NonZero FillRule = 0
	EvenOdd FillRule = 1
)

// FillRuleFrom maps a display-list fill-rule byte; unknown values fall
// back to NonZero.
func FillRuleFrom(b byte) FillRule {
	if b == 1 {
		return EvenOdd
	}
	return NonZero
}

// Glyph is a positioned glyph in local text space; X, Y are the glyph
// origin on the baseline.
type Glyph struct {
	ID   uint32
	X, Y float32
}

// Command is one retained drawing operation. Concrete types are Fill,
// Stroke and GlyphRun.
type Command interface {
	isCommand()
}

// Fill fills a path.
type Fill struct {
	Transform Affine
	Rule      FillRule
	Color     Color
	Path      *Path
}

// Stroke strokes a path with a centered stroke of the given width.
type Stroke struct {
	Transform Affine
	Width     float32
	Color     Color
	Path      *Path
}

// GlyphRun paints a run of glyphs from the default face at the given
// pixel size.
type GlyphRun struct {
	Transform Affine
	Color     Color
	Size      float32
	Glyphs    []Glyph
}

func (Fill) isCommand()     {}
func (Stroke) isCommand()   {}
func (GlyphRun) isCommand() {}

// Scene is the retained command list one Apply builds and Render
// consumes. It is not safe for concurrent use.
type Scene struct {
	commands []Command
	version  uint64
}

// Reset empties the scene, keeping its backing storage.
func (s *Scene) Reset() {
	clear(s.commands)
	s.commands = s.commands[:0]
	s.version++
}

// Len returns the number of retained commands.
func (s *Scene) Len() int { return len(s.commands) }

// Version increments on Reset and on every append; consumers use it to
// invalidate derived state.
func (s *Scene) Version() uint64 { return s.version }

// Commands returns the retained command list. The slice is owned by
// the scene and valid until the next Reset.
func (s *Scene) Commands() []Command { return s.commands }

// FillPath appends a fill command. Empty paths are dropped.
func (s *Scene) FillPath(t Affine, rule FillRule, c Color, p *Path) {
	if p == nil || p.IsEmpty() {
		return
	}
	s.commands = append(s.commands, Fill{Transform: t, Rule: rule, Color: c, Path: p})
	s.version++
}

// StrokePath appends a stroke command. Empty paths and non-positive
// widths are dropped.
func (s *Scene) StrokePath(t Affine, width float32, c Color, p *Path) {
	if p == nil || p.IsEmpty() || !(width > 0) {
		return
	}
	s.commands = append(s.commands, Stroke{Transform: t, Width: width, Color: c, Path: p})
	s.version++
}

// AppendGlyphRun appends a glyph run. Empty runs are dropped.
func (s *Scene) AppendGlyphRun(t Affine, c Color, size float32, glyphs []Glyph) {
	if len(glyphs) == 0 {
		return
	}
	s.commands = append(s.commands, GlyphRun{Transform: t, Color: c, Size: size, Glyphs: glyphs})
	s.version++
}
