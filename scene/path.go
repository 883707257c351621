package scene

import "math"

// Verb is one path-building operation. Coordinate counts per verb:
// MoveTo 2, LineTo 2, QuadTo 4, CubicTo 6, Close 0.
type Verb uint8

const (
	VerbMoveTo Verb = iota
	VerbLineTo
	VerbQuadTo
	VerbCubicTo
	VerbClose
)

// Rect is an axis-aligned bounding box.
type Rect struct {
	MinX, MinY, MaxX, MaxY float32
}

// Path is a flattened sequence of verbs with interleaved coordinates,
// the form a GPU rasterizer consumes directly.
type Path struct {
	verbs  []Verb
	coords []float32

	startX, startY float32
	curX, curY     float32
}

// Reset empties the path, keeping its backing storage.
func (p *Path) Reset() {
	p.verbs = p.verbs[:0]
	p.coords = p.coords[:0]
	p.startX, p.startY = 0, 0
	p.curX, p.curY = 0, 0
}

// IsEmpty reports whether the path has no verbs.
func (p *Path) IsEmpty() bool { return len(p.verbs) == 0 }

// Verbs returns the verb sequence. The slice is owned by the path.
func (p *Path) Verbs() []Verb { return p.verbs }

// Coords returns the coordinate sequence. The slice is owned by the path.
func (p *Path) Coords() []float32 { return p.coords }

// Current returns the current point.
func (p *Path) Current() (float32, float32) { return p.curX, p.curY }

// Start returns the starting point of the current subpath.
func (p *Path) Start() (float32, float32) { return p.startX, p.startY }

// MoveTo starts a new subpath at (x, y).
func (p *Path) MoveTo(x, y float32) {
	p.verbs = append(p.verbs, VerbMoveTo)
	p.coords = append(p.coords, x, y)
	p.startX, p.startY = x, y
	p.curX, p.curY = x, y
}

// LineTo adds a straight segment to (x, y).
func (p *Path) LineTo(x, y float32) {
	p.verbs = append(p.verbs, VerbLineTo)
	p.coords = append(p.coords, x, y)
	p.curX, p.curY = x, y
}

// QuadTo adds a quadratic Bezier through control (cx, cy) to (x, y).
func (p *Path) QuadTo(cx, cy, x, y float32) {
	p.verbs = append(p.verbs, VerbQuadTo)
	p.coords = append(p.coords, cx, cy, x, y)
	p.curX, p.curY = x, y
}

// CubicTo adds a cubic Bezier with controls (c1x, c1y), (c2x, c2y)
// ending at (x, y).
func (p *Path) CubicTo(c1x, c1y, c2x, c2y, x, y float32) {
	p.verbs = append(p.verbs, VerbCubicTo)
	p.coords = append(p.coords, c1x, c1y, c2x, c2y, x, y)
	p.curX, p.curY = x, y
}

// Close closes the current subpath back to its starting point.
func (p *Path) Close() {
	p.verbs = append(p.verbs, VerbClose)
	p.curX, p.curY = p.startX, p.startY
}

// Bounds returns the control-point bounding box. Control points of
// curves are included, so the box is conservative. An empty path
// returns the zero Rect.
func (p *Path) Bounds() Rect {
	if len(p.coords) == 0 {
		return Rect{}
	}
	r := Rect{
		MinX: float32(math.Inf(1)), MinY: float32(math.Inf(1)),
		MaxX: float32(math.Inf(-1)), MaxY: float32(math.Inf(-1)),
	}
	for i := 0; i+1 < len(p.coords); i += 2 {
		x, y := p.coords[i], p.coords[i+1]
		r.MinX = min(r.MinX, x)
		r.MinY = min(r.MinY, y)
		r.MaxX = max(r.MaxX, x)
		r.MaxY = max(r.MaxY, y)
	}
	return r
}

// kappa is the cubic Bezier approximation constant for a quarter arc.
const kappa = 0.5522847498307936

// RoundedRect returns a clockwise rounded rectangle path. The radius is
// clamped to [0, min(w, h)/2]; non-finite or non-positive radii produce
// sharp corners. Zero or negative extents yield an empty path.
func RoundedRect(x, y, w, h, radius float32) *Path {
	p := &Path{}
	if !(w > 0) || !(h > 0) {
		return p
	}
	r := radius
	if !(r > 0) { // catches negatives and NaN
		r = 0
	}
	if half := min(w, h) / 2; r > half {
		r = half
	}
	x1, y1 := x+w, y+h
	if r == 0 {
		p.MoveTo(x, y)
		p.LineTo(x1, y)
		p.LineTo(x1, y1)
		p.LineTo(x, y1)
		p.Close()
		return p
	}
	k := r * kappa
	p.MoveTo(x+r, y)
	p.LineTo(x1-r, y)
	p.CubicTo(x1-r+k, y, x1, y+r-k, x1, y+r)
	p.LineTo(x1, y1-r)
	p.CubicTo(x1, y1-r+k, x1-r+k, y1, x1-r, y1)
	p.LineTo(x+r, y1)
	p.CubicTo(x+r-k, y1, x, y1-r+k, x, y1-r)
	p.LineTo(x, y+r)
	p.CubicTo(x, y+r-k, x+r-k, y, x+r, y)
	p.Close()
	return p
}
