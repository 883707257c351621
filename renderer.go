package displaylist

import (
	"errors"
	"fmt"
	"math"

	"github.com/gogpu/displaylist/gpu"
	"github.com/gogpu/displaylist/scene"
	"github.com/gogpu/displaylist/text"
	"github.com/gogpu/displaylist/wire"
)

// Renderer replays binary display lists into a retained scene and
// renders it in two stages: a vector rasterizer fills an offscreen
// storage texture, then a full-screen composite pass blits it onto the
// swap chain. Renderer is not safe for concurrent use.
type Renderer struct {
	backend gpu.Backend
	targets *gpu.Targets

	sc        scene.Scene
	baseColor scene.Color

	shaper     *text.Shaper
	rasterizer Rasterizer

	closed bool
}

// New creates a renderer over an initialized backend. It fails with an
// error wrapping gpu.ErrUnsupported when the device offers no
// storage-capable color format, and when the default font cannot be
// parsed.
func New(backend gpu.Backend, opts ...Option) (*Renderer, error) {
	if backend == nil {
		return nil, errors.New("displaylist: backend must not be nil")
	}
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	targets, err := gpu.NewTargets(backend.Device(), backend.Surface(), cfg.label)
	if err != nil {
		return nil, fmt.Errorf("displaylist: initializing render targets: %w", err)
	}

	font := cfg.font
	if font == nil {
		font, err = text.Default()
		if err != nil {
			targets.Release()
			return nil, fmt.Errorf("displaylist: loading default font: %w", err)
		}
	}

	rasterizer := cfg.rasterizer
	if rasterizer == nil {
		rasterizer = RegisteredRasterizer()
	}

	return &Renderer{
		backend:    backend,
		targets:    targets,
		baseColor:  scene.Color{A: 1},
		shaper:     text.NewShaper(font),
		rasterizer: rasterizer,
	}, nil
}

// Scene returns the retained scene built by the last Apply. It is
// valid until the next Apply.
func (r *Renderer) Scene() *scene.Scene { return &r.sc }

// Resize reconfigures the surface to w x h device pixels. Zero
// dimensions and no-change calls are ignored.
func (r *Renderer) Resize(w, h uint32) error {
	if r.closed {
		return ErrClosed
	}
	if err := r.targets.Resize(w, h); err != nil {
		return fmt.Errorf("%w: %v", ErrGpuTransient, err)
	}
	return nil
}

// Apply decodes one display list and rebuilds the scene from it. The
// scene is reset first, so Apply is idempotent: replaying the same
// bytes yields the same scene. On a malformed stream it stops at the
// offending record and returns an error wrapping
// wire.ErrMalformedStream; records before it stay applied.
func (r *Renderer) Apply(data []byte) error {
	if r.closed {
		return ErrClosed
	}
	r.sc.Reset()
	r.baseColor = scene.Color{A: 1}

	dec := wire.NewDecoder(data)
	for {
		rec, err := dec.Next()
		if err != nil {
			return err
		}
		if rec == nil {
			return nil
		}
		switch rec := rec.(type) {
		case wire.BeginFrame:
			if err := r.applyBeginFrame(rec); err != nil {
				return err
			}
		case wire.Rect:
			r.applyRect(rec)
		case wire.Path:
			r.applyPath(rec)
		case wire.Text:
			r.applyText(rec)
		case wire.EndFrame:
			return nil
		}
	}
}

func (r *Renderer) applyBeginFrame(rec wire.BeginFrame) error {
	w := deviceDim(rec.LogicalWidth, rec.DPR)
	h := deviceDim(rec.LogicalHeight, rec.DPR)
	if err := r.targets.Resize(w, h); err != nil {
		return fmt.Errorf("%w: %v", ErrGpuTransient, err)
	}
	r.baseColor = scene.RGBA(rec.Color)
	return nil
}

func (r *Renderer) applyRect(rec wire.Rect) {
	path := scene.RoundedRect(rec.X, rec.Y, rec.W, rec.H, rec.Radius)
	r.sc.FillPath(
		scene.FromElements(rec.Transform),
		scene.NonZero,
		scene.RGBA(rec.Color).WithOpacity(rec.Opacity),
		path,
	)
}

// applyPath drops the whole record when the path string does not
// parse; a bad path must not abort the rest of the display list.
func (r *Renderer) applyPath(rec wire.Path) {
	path, err := scene.ParseSVGPath(rec.Data)
	if err != nil {
		Logger().Debug("dropping path record", "error", err)
		return
	}
	transform := scene.FromElements(rec.Transform)
	if rec.HasFill {
		r.sc.FillPath(
			transform,
			scene.FillRuleFrom(rec.FillRule),
			scene.RGBA(rec.Fill).WithOpacity(rec.Opacity),
			path,
		)
	}
	if rec.HasStroke {
		r.sc.StrokePath(
			transform,
			rec.StrokeWidth,
			scene.RGBA(rec.Stroke).WithOpacity(rec.Opacity),
			path,
		)
	}
}

func (r *Renderer) applyText(rec wire.Text) {
	if rec.Content == "" {
		return
	}
	layout := r.shaper.Layout(
		rec.Content,
		rec.FontSize, rec.LineHeight, rec.MaxWidth,
		text.AlignFrom(rec.Align),
	)
	var glyphs []scene.Glyph
	for _, line := range layout.Lines {
		for _, g := range line.Glyphs {
			glyphs = append(glyphs, scene.Glyph{
				ID: g.ID,
				X:  rec.X + g.X,
				Y:  rec.Y + g.Y,
			})
		}
	}
	r.sc.AppendGlyphRun(
		scene.FromElements(rec.Transform),
		scene.RGBA(rec.Color).WithOpacity(rec.Opacity),
		layout.Resolved.Size,
		glyphs,
	)
}

// Render draws the retained scene: acquire the swap-chain texture,
// rasterize the scene into the offscreen target, composite it and
// present. The acquired texture is always presented or released before
// returning.
//
// A lost or outdated surface is reconfigured and retried once; a
// second failure returns ErrGpuAcquire. An acquire timeout skips the
// frame and returns nil. Out of memory returns ErrGpuFatal.
func (r *Renderer) Render() error {
	if r.closed {
		return ErrClosed
	}
	if !r.targets.Configured() {
		return fmt.Errorf("%w: surface not configured; apply a frame or resize first", ErrGpuTransient)
	}

	surface := r.backend.Surface()
	tex, err := surface.Acquire()
	if err != nil {
		switch {
		case errors.Is(err, gpu.ErrAcquireTimeout):
			Logger().Debug("acquire timed out; skipping frame")
			return nil
		case errors.Is(err, gpu.ErrOutOfMemory):
			return fmt.Errorf("%w: %v", ErrGpuFatal, err)
		case errors.Is(err, gpu.ErrSurfaceLost), errors.Is(err, gpu.ErrSurfaceOutdated):
			Logger().Warn("surface lost or outdated; reconfiguring", "error", err)
			if cerr := r.targets.Reconfigure(); cerr != nil {
				return fmt.Errorf("%w: %v", ErrGpuAcquire, cerr)
			}
			tex, err = surface.Acquire()
			if err != nil {
				return fmt.Errorf("%w: %v", ErrGpuAcquire, err)
			}
		default:
			return fmt.Errorf("%w: %v", ErrGpuTransient, err)
		}
	}
	view := tex.View()
	drop := func() {
		view.Release()
		tex.Release()
	}

	offscreen, err := r.targets.EnsureOffscreen()
	if err != nil {
		drop()
		return fmt.Errorf("%w: %v", ErrGpuTransient, err)
	}
	pipeline, err := r.targets.EnsurePipeline()
	if err != nil {
		drop()
		return fmt.Errorf("%w: %v", ErrGpuTransient, err)
	}
	group, err := r.targets.EnsureBindGroup()
	if err != nil {
		drop()
		return fmt.Errorf("%w: %v", ErrGpuTransient, err)
	}

	if r.rasterizer == nil {
		drop()
		return fmt.Errorf("%w: %w", ErrRenderFailed, ErrNoRasterizer)
	}
	cfg := r.targets.Config()
	err = r.rasterizer.Render(r.backend.Device(), offscreen, &r.sc, RasterizeParams{
		BaseColor: r.baseColor,
		Width:     cfg.Width,
		Height:    cfg.Height,
	})
	if err != nil {
		drop()
		return fmt.Errorf("%w: %v", ErrRenderFailed, err)
	}

	if err := r.backend.Device().Composite(view, pipeline, group); err != nil {
		drop()
		return fmt.Errorf("%w: %v", ErrGpuTransient, err)
	}
	surface.Present()
	drop()
	return nil
}

// Close releases all GPU resources including the backend. Further
// calls on the renderer return ErrClosed.
func (r *Renderer) Close() {
	if r.closed {
		return
	}
	r.closed = true
	r.targets.Release()
	r.backend.Release()
}

// deviceDim converts a logical dimension to device pixels:
// round(logical * dpr), clamped to [1, MaxUint32].
func deviceDim(logical, dpr float32) uint32 {
	v := float64(logical) * float64(dpr)
	if math.IsNaN(v) || v < 1 {
		return 1
	}
	v = math.Round(v)
	if v > math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(v)
}
