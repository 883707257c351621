package scene

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

// ErrInvalidPath reports an SVG path string that does not conform to
// the path grammar. Records carrying such a path are dropped whole.
var ErrInvalidPath = errors.New("scene: invalid svg path")

// ParseSVGPath parses an SVG path data string into a Path. The full
// grammar is accepted: M/L/H/V/C/S/Q/T/A/Z in absolute and relative
// forms, implicit command repetition, and whitespace or comma
// separation. Elliptical arcs are approximated with cubic Beziers.
func ParseSVGPath(data string) (*Path, error) {
	pp := &svgParser{data: data, path: &Path{}}
	if err := pp.run(); err != nil {
		return nil, err
	}
	return pp.path, nil
}

type svgParser struct {
	data string
	pos  int
	path *Path

	cmd byte // current command letter

	// Reflection state for S and T.
	lastCubicCtlX, lastCubicCtlY float32
	lastQuadCtlX, lastQuadCtlY   float32
	lastCmd                      byte

	started bool // a moveto has been seen
}

func (p *svgParser) run() error {
	p.skipWsp()
	if p.pos >= len(p.data) {
		return fmt.Errorf("%w: empty path data", ErrInvalidPath)
	}
	for p.pos < len(p.data) {
		c := p.data[p.pos]
		if isCommand(c) {
			p.cmd = c
			p.pos++
		} else if p.cmd == 0 {
			return fmt.Errorf("%w: expected command at byte %d", ErrInvalidPath, p.pos)
		} else {
			// Implicit repetition: a number where a command could be.
			switch p.cmd {
			case 'M':
				p.cmd = 'L'
			case 'm':
				p.cmd = 'l'
			case 'Z', 'z':
				return fmt.Errorf("%w: coordinates after close at byte %d", ErrInvalidPath, p.pos)
			}
		}
		if !p.started && p.cmd != 'M' && p.cmd != 'm' {
			return fmt.Errorf("%w: path must start with a moveto", ErrInvalidPath)
		}
		if err := p.segment(); err != nil {
			return err
		}
		p.lastCmd = p.cmd
		p.skipWsp()
	}
	return nil
}

func (p *svgParser) segment() error {
	cx, cy := p.path.Current()
	rel := p.cmd >= 'a' // lowercase is relative
	switch p.cmd {
	case 'M', 'm':
		x, y, err := p.coordPair()
		if err != nil {
			return err
		}
		if rel && p.started {
			x, y = cx+x, cy+y
		}
		p.path.MoveTo(x, y)
		p.started = true

	case 'L', 'l':
		x, y, err := p.coordPair()
		if err != nil {
			return err
		}
		if rel {
			x, y = cx+x, cy+y
		}
		p.path.LineTo(x, y)

	case 'H', 'h':
		x, err := p.number()
		if err != nil {
			return err
		}
		if rel {
			x += cx
		}
		p.path.LineTo(x, cy)

	case 'V', 'v':
		y, err := p.number()
		if err != nil {
			return err
		}
		if rel {
			y += cy
		}
		p.path.LineTo(cx, y)

	case 'C', 'c':
		c1x, c1y, err := p.coordPair()
		if err != nil {
			return err
		}
		c2x, c2y, err := p.coordPair()
		if err != nil {
			return err
		}
		x, y, err := p.coordPair()
		if err != nil {
			return err
		}
		if rel {
			c1x, c1y = cx+c1x, cy+c1y
			c2x, c2y = cx+c2x, cy+c2y
			x, y = cx+x, cy+y
		}
		p.path.CubicTo(c1x, c1y, c2x, c2y, x, y)
		p.lastCubicCtlX, p.lastCubicCtlY = c2x, c2y

	case 'S', 's':
		c2x, c2y, err := p.coordPair()
		if err != nil {
			return err
		}
		x, y, err := p.coordPair()
		if err != nil {
			return err
		}
		if rel {
			c2x, c2y = cx+c2x, cy+c2y
			x, y = cx+x, cy+y
		}
		c1x, c1y := cx, cy
		if p.lastCmd == 'C' || p.lastCmd == 'c' || p.lastCmd == 'S' || p.lastCmd == 's' {
			c1x, c1y = 2*cx-p.lastCubicCtlX, 2*cy-p.lastCubicCtlY
		}
		p.path.CubicTo(c1x, c1y, c2x, c2y, x, y)
		p.lastCubicCtlX, p.lastCubicCtlY = c2x, c2y

	case 'Q', 'q':
		qx, qy, err := p.coordPair()
		if err != nil {
			return err
		}
		x, y, err := p.coordPair()
		if err != nil {
			return err
		}
		if rel {
			qx, qy = cx+qx, cy+qy
			x, y = cx+x, cy+y
		}
		p.path.QuadTo(qx, qy, x, y)
		p.lastQuadCtlX, p.lastQuadCtlY = qx, qy

	case 'T', 't':
		x, y, err := p.coordPair()
		if err != nil {
			return err
		}
		if rel {
			x, y = cx+x, cy+y
		}
		qx, qy := cx, cy
		if p.lastCmd == 'Q' || p.lastCmd == 'q' || p.lastCmd == 'T' || p.lastCmd == 't' {
			qx, qy = 2*cx-p.lastQuadCtlX, 2*cy-p.lastQuadCtlY
		}
		p.path.QuadTo(qx, qy, x, y)
		p.lastQuadCtlX, p.lastQuadCtlY = qx, qy

	case 'A', 'a':
		rx, ry, err := p.coordPair()
		if err != nil {
			return err
		}
		rot, err := p.number()
		if err != nil {
			return err
		}
		large, err := p.flag()
		if err != nil {
			return err
		}
		sweep, err := p.flag()
		if err != nil {
			return err
		}
		x, y, err := p.coordPair()
		if err != nil {
			return err
		}
		if rel {
			x, y = cx+x, cy+y
		}
		p.arcTo(cx, cy, rx, ry, rot, large, sweep, x, y)

	case 'Z', 'z':
		p.path.Close()

	default:
		return fmt.Errorf("%w: unknown command %q", ErrInvalidPath, p.cmd)
	}
	return nil
}

// arcTo converts an endpoint-parameterized elliptical arc into cubic
// segments of at most a quarter turn each, per the SVG implementation
// notes (F.6).
func (p *svgParser) arcTo(x0, y0, rx, ry, rotDeg float32, large, sweep bool, x, y float32) {
	if x0 == x && y0 == y {
		return
	}
	rx, ry = abs32(rx), abs32(ry)
	if rx == 0 || ry == 0 {
		p.path.LineTo(x, y)
		return
	}
	phi := float64(rotDeg) * math.Pi / 180
	cosPhi, sinPhi := math.Cos(phi), math.Sin(phi)

	dx2 := float64(x0-x) / 2
	dy2 := float64(y0-y) / 2
	x1p := cosPhi*dx2 + sinPhi*dy2
	y1p := -sinPhi*dx2 + cosPhi*dy2

	frx, fry := float64(rx), float64(ry)
	// Scale radii up if they cannot span the endpoints.
	lambda := x1p*x1p/(frx*frx) + y1p*y1p/(fry*fry)
	if lambda > 1 {
		s := math.Sqrt(lambda)
		frx *= s
		fry *= s
	}

	num := frx*frx*fry*fry - frx*frx*y1p*y1p - fry*fry*x1p*x1p
	den := frx*frx*y1p*y1p + fry*fry*x1p*x1p
	var coef float64
	if den != 0 && num > 0 {
		coef = math.Sqrt(num / den)
	}
	if large == sweep {
		coef = -coef
	}
	cxp := coef * frx * y1p / fry
	cyp := -coef * fry * x1p / frx

	ccx := cosPhi*cxp - sinPhi*cyp + float64(x0+x)/2
	ccy := sinPhi*cxp + cosPhi*cyp + float64(y0+y)/2

	theta1 := math.Atan2((y1p-cyp)/fry, (x1p-cxp)/frx)
	dtheta := math.Atan2((-y1p-cyp)/fry, (-x1p-cxp)/frx) - theta1
	if sweep && dtheta < 0 {
		dtheta += 2 * math.Pi
	} else if !sweep && dtheta > 0 {
		dtheta -= 2 * math.Pi
	}

	segs := int(math.Ceil(abs64(dtheta) / (math.Pi / 2)))
	if segs < 1 {
		segs = 1
	}
	delta := dtheta / float64(segs)
	t := 4.0 / 3.0 * math.Tan(delta/4)

	theta := theta1
	for range segs {
		cos1, sin1 := math.Cos(theta), math.Sin(theta)
		cos2, sin2 := math.Cos(theta+delta), math.Sin(theta+delta)

		// Point and derivative on the unrotated ellipse.
		ex1, ey1 := frx*cos1, fry*sin1
		ex2, ey2 := frx*cos2, fry*sin2
		dx1, dy1 := -frx*sin1, fry*cos1
		dxe, dye := -frx*sin2, fry*cos2

		c1x := ex1 + t*dx1
		c1y := ey1 + t*dy1
		c2x := ex2 - t*dxe
		c2y := ey2 - t*dye

		p.path.CubicTo(
			mapPt(c1x, c1y, cosPhi, sinPhi, ccx, ccy),
			mapPtY(c1x, c1y, cosPhi, sinPhi, ccx, ccy),
			mapPt(c2x, c2y, cosPhi, sinPhi, ccx, ccy),
			mapPtY(c2x, c2y, cosPhi, sinPhi, ccx, ccy),
			mapPt(ex2, ey2, cosPhi, sinPhi, ccx, ccy),
			mapPtY(ex2, ey2, cosPhi, sinPhi, ccx, ccy),
		)
		theta += delta
	}
	// Land exactly on the endpoint despite rounding.
	n := len(p.path.coords)
	p.path.coords[n-2], p.path.coords[n-1] = x, y
	p.path.curX, p.path.curY = x, y
}

func mapPt(ex, ey, cosPhi, sinPhi, cx, cy float64) float32 {
	return float32(cosPhi*ex - sinPhi*ey + cx)
}

func mapPtY(ex, ey, cosPhi, sinPhi, cx, cy float64) float32 {
	return float32(sinPhi*ex + cosPhi*ey + cy)
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func abs64(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func isCommand(c byte) bool {
	switch c {
	case 'M', 'm', 'L', 'l', 'H', 'h', 'V', 'v',
		'C', 'c', 'S', 's', 'Q', 'q', 'T', 't', 'A', 'a', 'Z', 'z':
		return true
	}
	return false
}

func isWsp(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

func (p *svgParser) skipWsp() {
	for p.pos < len(p.data) && isWsp(p.data[p.pos]) {
		p.pos++
	}
}

// skipSep skips whitespace with at most one comma.
func (p *svgParser) skipSep() {
	p.skipWsp()
	if p.pos < len(p.data) && p.data[p.pos] == ',' {
		p.pos++
		p.skipWsp()
	}
}

// number scans one float: sign, digits, optional fraction and exponent.
func (p *svgParser) number() (float32, error) {
	p.skipSep()
	start := p.pos
	i := p.pos
	n := len(p.data)
	if i < n && (p.data[i] == '+' || p.data[i] == '-') {
		i++
	}
	digits := 0
	for i < n && p.data[i] >= '0' && p.data[i] <= '9' {
		i++
		digits++
	}
	if i < n && p.data[i] == '.' {
		i++
		for i < n && p.data[i] >= '0' && p.data[i] <= '9' {
			i++
			digits++
		}
	}
	if digits == 0 {
		return 0, fmt.Errorf("%w: expected number at byte %d", ErrInvalidPath, start)
	}
	if i < n && (p.data[i] == 'e' || p.data[i] == 'E') {
		j := i + 1
		if j < n && (p.data[j] == '+' || p.data[j] == '-') {
			j++
		}
		expDigits := 0
		for j < n && p.data[j] >= '0' && p.data[j] <= '9' {
			j++
			expDigits++
		}
		if expDigits > 0 {
			i = j
		}
	}
	v, err := strconv.ParseFloat(p.data[start:i], 32)
	if err != nil {
		return 0, fmt.Errorf("%w: bad number %q at byte %d", ErrInvalidPath, p.data[start:i], start)
	}
	p.pos = i
	return float32(v), nil
}

// flag scans an arc flag, a bare '0' or '1'.
func (p *svgParser) flag() (bool, error) {
	p.skipSep()
	if p.pos >= len(p.data) {
		return false, fmt.Errorf("%w: expected arc flag at end of data", ErrInvalidPath)
	}
	switch p.data[p.pos] {
	case '0':
		p.pos++
		return false, nil
	case '1':
		p.pos++
		return true, nil
	}
	return false, fmt.Errorf("%w: expected arc flag at byte %d", ErrInvalidPath, p.pos)
}

func (p *svgParser) coordPair() (float32, float32, error) {
	x, err := p.number()
	if err != nil {
		return 0, 0, err
	}
	y, err := p.number()
	if err != nil {
		return 0, 0, err
	}
	return x, y, nil
}
