package scene

import (
	"errors"
	"math"
	"testing"
)

func verbString(vs []Verb) string {
	out := make([]byte, len(vs))
	for i, v := range vs {
		out[i] = "MLQCZ"[v]
	}
	return string(out)
}

func TestParseBasicShapes(t *testing.T) {
	tests := []struct {
		name  string
		data  string
		verbs string
	}{
		{"triangle", "M0 0 L10 0 L5 8 Z", "MLLZ"},
		{"implicit lineto", "M0 0 10 0 5 8 Z", "MLLZ"},
		{"relative", "m1 1 l2 0 l0 2 z", "MLLZ"},
		{"horizontal vertical", "M0 0 H10 V10 H0 Z", "MLLLZ"},
		{"cubic", "M0 0 C1 1 2 1 3 0", "MC"},
		{"smooth cubic", "M0 0 C1 1 2 1 3 0 S5 -1 6 0", "MCC"},
		{"quadratic", "M0 0 Q5 5 10 0", "MQ"},
		{"smooth quadratic", "M0 0 Q5 5 10 0 T20 0", "MQQ"},
		{"comma separated", "M0,0 L10,0 L10,10", "MLL"},
		{"multiple subpaths", "M0 0 L1 0 Z M5 5 L6 5 Z", "MLZMLZ"},
		{"exponent", "M1e1 1E1 L2e-1 0", "ML"},
		{"negative compact", "M0 0L-1-2", "ML"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := ParseSVGPath(tt.data)
			if err != nil {
				t.Fatalf("ParseSVGPath(%q): %v", tt.data, err)
			}
			if got := verbString(p.Verbs()); got != tt.verbs {
				t.Errorf("verbs = %s, want %s", got, tt.verbs)
			}
		})
	}
}

func TestParseCoordinates(t *testing.T) {
	p, err := ParseSVGPath("M1 2 l3 4 h5 v6")
	if err != nil {
		t.Fatal(err)
	}
	want := []float32{1, 2, 4, 6, 9, 6, 9, 12}
	got := p.Coords()
	if len(got) != len(want) {
		t.Fatalf("coords = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("coords = %v, want %v", got, want)
		}
	}
}

func TestParseSmoothReflection(t *testing.T) {
	// S after C reflects the previous control point across the current
	// point; S after anything else starts from the current point.
	p, err := ParseSVGPath("M0 0 C0 10 10 10 10 0 S20 -10 20 0")
	if err != nil {
		t.Fatal(err)
	}
	c := p.Coords()
	// Second cubic starts at index 8: c1 must be (10, -10), the
	// reflection of (10, 10) about (10, 0).
	if c[8] != 10 || c[9] != -10 {
		t.Errorf("reflected control = (%g, %g), want (10, -10)", c[8], c[9])
	}

	p, err = ParseSVGPath("M0 0 L5 0 S10 10 20 0")
	if err != nil {
		t.Fatal(err)
	}
	c = p.Coords()
	// No preceding cubic: first control equals the current point (5, 0).
	if c[4] != 5 || c[5] != 0 {
		t.Errorf("control after line = (%g, %g), want (5, 0)", c[4], c[5])
	}
}

func TestParseArc(t *testing.T) {
	p, err := ParseSVGPath("M0 0 A10 10 0 0 1 20 0")
	if err != nil {
		t.Fatal(err)
	}
	for _, v := range p.Verbs()[1:] {
		if v != VerbCubicTo {
			t.Fatalf("arc produced verb %d, want only cubics", v)
		}
	}
	// The approximation must land exactly on the endpoint.
	x, y := p.Current()
	if x != 20 || y != 0 {
		t.Errorf("arc endpoint = (%g, %g), want (20, 0)", x, y)
	}
	// Half circle of radius 10: two quarter-turn segments.
	if n := len(p.Verbs()) - 1; n != 2 {
		t.Errorf("segments = %d, want 2", n)
	}
}

func TestParseArcCompactFlags(t *testing.T) {
	// Flags may run together with the following coordinates.
	p, err := ParseSVGPath("M0 0 a10 10 0 0110 10")
	if err != nil {
		t.Fatal(err)
	}
	x, y := p.Current()
	if x != 10 || y != 10 {
		t.Errorf("endpoint = (%g, %g), want (10, 10)", x, y)
	}
}

func TestParseArcDegenerate(t *testing.T) {
	// Zero radius falls back to a line.
	p, err := ParseSVGPath("M0 0 A0 10 0 0 1 20 0")
	if err != nil {
		t.Fatal(err)
	}
	if got := verbString(p.Verbs()); got != "ML" {
		t.Errorf("verbs = %s, want ML", got)
	}
	// Coincident endpoints are a no-op.
	p, err = ParseSVGPath("M5 5 A10 10 0 0 1 5 5")
	if err != nil {
		t.Fatal(err)
	}
	if got := verbString(p.Verbs()); got != "M" {
		t.Errorf("verbs = %s, want M", got)
	}
}

func TestParseArcRadiusScaling(t *testing.T) {
	// Radii too small to span the endpoints are scaled up; the curve
	// still reaches the endpoint.
	p, err := ParseSVGPath("M0 0 A1 1 0 0 1 20 0")
	if err != nil {
		t.Fatal(err)
	}
	x, y := p.Current()
	if x != 20 || y != 0 {
		t.Errorf("endpoint = (%g, %g), want (20, 0)", x, y)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty", ""},
		{"blank", "   "},
		{"no leading moveto", "L10 10"},
		{"garbage", "hello"},
		{"truncated pair", "M10"},
		{"truncated cubic", "M0 0 C1 1 2 2"},
		{"bad arc flag", "M0 0 A10 10 0 2 1 20 0"},
		{"number overflow", "M0 0 L1e39 0"},
		{"coords after close", "M0 0 L1 1 Z 5 5"},
		{"lone sign", "M0 0 L+ 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSVGPath(tt.data)
			if !errors.Is(err, ErrInvalidPath) {
				t.Fatalf("ParseSVGPath(%q) err = %v, want ErrInvalidPath", tt.data, err)
			}
		})
	}
}

func TestParseArcEndpointAccuracy(t *testing.T) {
	// Quarter arc with rotation: endpoint must be exact, interior
	// points close to the true circle.
	p, err := ParseSVGPath("M10 0 A10 10 0 0 1 0 10")
	if err != nil {
		t.Fatal(err)
	}
	x, y := p.Current()
	if x != 0 || y != 10 {
		t.Fatalf("endpoint = (%g, %g)", x, y)
	}
	// Control points sit slightly outside the circle; anything past
	// ~1.15r means the center or sweep came out wrong.
	c := p.Coords()
	for i := 2; i+1 < len(c); i += 2 {
		r := math.Hypot(float64(c[i]), float64(c[i+1]))
		if r < 9.99 || r > 11.5 {
			t.Errorf("control (%g, %g) is %.3f from center, want ~10..11.4", c[i], c[i+1], r)
		}
	}
}
