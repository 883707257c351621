// Package text resolves font metrics and lays out display-list text:
// hard line breaks, greedy word wrap and start/center/end alignment
// over a single embedded face.
package text

import (
	"bytes"
	"errors"
	"fmt"
	"sync"

	"github.com/go-fonts/latin-modern/lmroman10regular"
	"github.com/go-text/typesetting/font"
	"golang.org/x/image/math/fixed"
)

// ErrEmptyFontData is returned when a Source is built from no bytes.
var ErrEmptyFontData = errors.New("text: empty font data")

// Source is a parsed font face. It is heavyweight and should be shared;
// one Source serves every size. Source is safe for concurrent use.
type Source struct {
	face *font.Face
	upem float32

	mu       sync.RWMutex
	advances map[font.GID]fixed.Int26_6 // in 26.6 font units
}

// NewSource parses TTF/OTF/TTC data and wraps the first face.
func NewSource(data []byte) (*Source, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}
	faces, err := font.ParseTTC(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("text: parsing font: %w", err)
	}
	if len(faces) == 0 {
		return nil, errors.New("text: font file contains no faces")
	}
	face := faces[0]
	upem := float32(face.Upem())
	if upem <= 0 {
		upem = 1000
	}
	return &Source{
		face:     face,
		upem:     upem,
		advances: make(map[font.GID]fixed.Int26_6),
	}, nil
}

var (
	defaultOnce sync.Once
	defaultSrc  *Source
	defaultErr  error
)

// Default returns the embedded Latin Modern Roman face, parsed once.
func Default() (*Source, error) {
	defaultOnce.Do(func() {
		defaultSrc, defaultErr = NewSource(lmroman10regular.TTF)
	})
	return defaultSrc, defaultErr
}

// GlyphFor maps a rune to its glyph ID. Missing runes report ok=false;
// callers render glyph 0 (.notdef) in that case.
func (s *Source) GlyphFor(r rune) (uint32, bool) {
	gid, ok := s.face.NominalGlyph(r)
	if !ok {
		return 0, false
	}
	return uint32(gid), true
}

// Advance returns the horizontal advance of a glyph scaled to the
// given pixel size. Raw advances are cached in 26.6 font units.
// ok=false when the face reports a non-finite advance.
func (s *Source) Advance(gid uint32, size float32) (float32, bool) {
	g := font.GID(gid)
	s.mu.RLock()
	a, cached := s.advances[g]
	s.mu.RUnlock()
	if !cached {
		raw := s.face.HorizontalAdvance(g)
		if raw != raw || raw > 1e9 || raw < -1e9 { // NaN or absurd
			return 0, false
		}
		a = fixed.Int26_6(raw * 64)
		s.mu.Lock()
		s.advances[g] = a
		s.mu.Unlock()
	}
	return float32(a) / 64 * size / s.upem, true
}

// Extents returns the face's horizontal-layout extents scaled to size:
// ascent above the baseline (positive), descent below it (negative, as
// fonts report it) and the recommended extra line gap.
func (s *Source) Extents(size float32) (ascent, descent, gap float32, ok bool) {
	ext, ok := s.face.FontHExtents()
	if !ok {
		return 0, 0, 0, false
	}
	k := size / s.upem
	return ext.Ascender * k, ext.Descender * k, ext.LineGap * k, true
}

// SpaceAdvance returns the advance of U+0020 at size. It stands in for
// the average glyph advance when sizing missing glyphs and tabs.
func (s *Source) SpaceAdvance(size float32) (float32, bool) {
	gid, ok := s.GlyphFor(' ')
	if !ok {
		return 0, false
	}
	return s.Advance(gid, size)
}
