package wire

import "fmt"

// Record is one decoded display-list record. The concrete types are
// BeginFrame, Rect, Path, Text and EndFrame.
type Record interface {
	op() Op
}

// BeginFrame resets the frame state: the surface is resized to
// round(logical * DPR) device pixels per axis and cleared to Color.
type BeginFrame struct {
	LogicalWidth  float32
	LogicalHeight float32
	DPR           float32
	Color         [4]float32
}

// Rect fills an axis-aligned, optionally rounded rectangle under an
// affine transform.
type Rect struct {
	Opacity   float32
	Transform [6]float32
	X, Y      float32
	W, H      float32
	Radius    float32
	Color     [4]float32
}

// Path draws an SVG path with an optional fill and an optional stroke.
// Data holds the raw SVG path string, unparsed.
type Path struct {
	Opacity     float32
	Transform   [6]float32
	FillRule    byte
	HasFill     bool
	Fill        [4]float32
	HasStroke   bool
	StrokeWidth float32
	Stroke      [4]float32
	Data        string
}

// Text draws a block of text anchored at (X, Y) in local space.
type Text struct {
	Opacity    float32
	Transform  [6]float32
	X, Y       float32
	FontSize   float32
	LineHeight float32
	MaxWidth   float32
	Align      byte
	Color      [4]float32
	Content    string
}

// EndFrame commits the frame. Any bytes after it are ignored.
type EndFrame struct{}

func (BeginFrame) op() Op { return OpBeginFrame }
func (Rect) op() Op       { return OpRect }
func (Path) op() Op       { return OpPath }
func (Text) op() Op       { return OpText }
func (EndFrame) op() Op   { return OpEndFrame }

// Decoder pulls records off a display-list buffer one at a time.
//
//	dec := wire.NewDecoder(buf)
//	for {
//		rec, err := dec.Next()
//		if err != nil || rec == nil {
//			return err
//		}
//		// apply rec
//	}
//
// Next returns (nil, nil) at end of stream. Running out of bytes
// between records is a valid end: a stream without EndFrame still
// commits everything decoded so far.
type Decoder struct {
	r    *Reader
	done bool
}

// NewDecoder wraps buf without copying it.
func NewDecoder(buf []byte) *Decoder {
	return &Decoder{r: NewReader(buf)}
}

// Offset returns the number of bytes consumed so far.
func (d *Decoder) Offset() int { return d.r.Offset() }

// Next decodes the next record. After an EndFrame record, and after the
// buffer is exhausted, it returns (nil, nil) forever.
func (d *Decoder) Next() (Record, error) {
	if d.done || d.r.Remaining() == 0 {
		d.done = true
		return nil, nil
	}
	at := d.r.Offset()
	op, err := d.r.U8()
	if err != nil {
		return nil, err
	}
	switch Op(op) {
	case OpBeginFrame:
		return d.beginFrame()
	case OpRect:
		return d.rect()
	case OpPath:
		return d.path()
	case OpText:
		return d.text()
	case OpEndFrame:
		d.done = true
		return EndFrame{}, nil
	default:
		return nil, fmt.Errorf("%w: unknown opcode 0x%02X at offset %d", ErrMalformedStream, op, at)
	}
}

func (d *Decoder) beginFrame() (Record, error) {
	var (
		rec BeginFrame
		err error
	)
	if rec.LogicalWidth, err = d.r.F32(); err != nil {
		return nil, err
	}
	if rec.LogicalHeight, err = d.r.F32(); err != nil {
		return nil, err
	}
	if rec.DPR, err = d.r.F32(); err != nil {
		return nil, err
	}
	if rec.Color, err = d.r.RGBA(); err != nil {
		return nil, err
	}
	return rec, nil
}

func (d *Decoder) rect() (Record, error) {
	var (
		rec Rect
		err error
	)
	if rec.Opacity, err = d.r.F32(); err != nil {
		return nil, err
	}
	if rec.Transform, err = d.r.Mat3(); err != nil {
		return nil, err
	}
	if rec.X, err = d.r.F32(); err != nil {
		return nil, err
	}
	if rec.Y, err = d.r.F32(); err != nil {
		return nil, err
	}
	if rec.W, err = d.r.F32(); err != nil {
		return nil, err
	}
	if rec.H, err = d.r.F32(); err != nil {
		return nil, err
	}
	if rec.Radius, err = d.r.F32(); err != nil {
		return nil, err
	}
	if rec.Color, err = d.r.RGBA(); err != nil {
		return nil, err
	}
	return rec, nil
}

func (d *Decoder) path() (Record, error) {
	var (
		rec Path
		err error
	)
	if rec.Opacity, err = d.r.F32(); err != nil {
		return nil, err
	}
	if rec.Transform, err = d.r.Mat3(); err != nil {
		return nil, err
	}
	if rec.FillRule, err = d.r.U8(); err != nil {
		return nil, err
	}
	hasFill, err := d.r.U8()
	if err != nil {
		return nil, err
	}
	rec.HasFill = hasFill != 0
	if rec.HasFill {
		if rec.Fill, err = d.r.RGBA(); err != nil {
			return nil, err
		}
	}
	hasStroke, err := d.r.U8()
	if err != nil {
		return nil, err
	}
	rec.HasStroke = hasStroke != 0
	if rec.HasStroke {
		if rec.StrokeWidth, err = d.r.F32(); err != nil {
			return nil, err
		}
		if rec.Stroke, err = d.r.RGBA(); err != nil {
			return nil, err
		}
	}
	if rec.Data, err = d.r.String(); err != nil {
		return nil, err
	}
	return rec, nil
}

func (d *Decoder) text() (Record, error) {
	var (
		rec Text
		err error
	)
	if rec.Opacity, err = d.r.F32(); err != nil {
		return nil, err
	}
	if rec.Transform, err = d.r.Mat3(); err != nil {
		return nil, err
	}
	if rec.X, err = d.r.F32(); err != nil {
		return nil, err
	}
	if rec.Y, err = d.r.F32(); err != nil {
		return nil, err
	}
	if rec.FontSize, err = d.r.F32(); err != nil {
		return nil, err
	}
	if rec.LineHeight, err = d.r.F32(); err != nil {
		return nil, err
	}
	if rec.MaxWidth, err = d.r.F32(); err != nil {
		return nil, err
	}
	if rec.Align, err = d.r.U8(); err != nil {
		return nil, err
	}
	if rec.Color, err = d.r.RGBA(); err != nil {
		return nil, err
	}
	if rec.Content, err = d.r.String(); err != nil {
		return nil, err
	}
	return rec, nil
}
