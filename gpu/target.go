package gpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
)

// Targets owns the GPU objects that outlive a single frame: the
// surface configuration, the offscreen storage texture the rasterizer
// writes, the linear sampler, the composite pipeline and its bind
// group. Derived objects are created lazily and invalidated by resize
// and format changes. Targets is not safe for concurrent use.
type Targets struct {
	dev     Device
	surface Surface
	label   string

	cfg        Config
	configured bool

	storageFormat gputypes.TextureFormat

	offscreen     Texture
	offscreenView TextureView
	offscreenW    uint32
	offscreenH    uint32

	sampler  Sampler
	pipeline RenderPipeline
	// pipelineFormat is the swap-chain format the pipeline was built
	// for; a format change on reconfigure forces a rebuild.
	pipelineFormat gputypes.TextureFormat
	group          BindGroup

	generation uint64
}

// NewTargets selects the storage and surface formats and validates the
// composite shader. It fails with ErrUnsupported when the device has
// no storage-capable color format. The surface itself is configured on
// the first Resize.
func NewTargets(dev Device, surface Surface, label string) (*Targets, error) {
	storage, err := SelectStorageFormat(dev)
	if err != nil {
		return nil, err
	}
	if err := ValidateCompositeShader(); err != nil {
		return nil, err
	}
	caps := surface.Capabilities()
	t := &Targets{
		dev:           dev,
		surface:       surface,
		label:         label,
		storageFormat: storage,
		cfg: Config{
			Format: SelectSurfaceFormat(caps),
			Mode:   SelectPresentMode(caps),
			Alpha:  SelectAlphaMode(caps),
		},
	}
	Logger().Info("render targets initialized",
		"surface_format", t.cfg.Format,
		"storage_format", storage,
		"present_mode", t.cfg.Mode,
		"alpha_mode", t.cfg.Alpha)
	return t, nil
}

// Config returns the current surface configuration.
func (t *Targets) Config() Config { return t.cfg }

// StorageFormat returns the offscreen texture format.
func (t *Targets) StorageFormat() gputypes.TextureFormat { return t.storageFormat }

// Generation increments whenever the offscreen target is recreated.
func (t *Targets) Generation() uint64 { return t.generation }

// Configured reports whether the surface has been configured at least
// once; rendering before that has nowhere to go.
func (t *Targets) Configured() bool { return t.configured }

// Resize reconfigures the surface to w x h device pixels and
// invalidates the offscreen target and bind group. Zero dimensions and
// no-change calls are ignored.
func (t *Targets) Resize(w, h uint32) error {
	if w == 0 || h == 0 {
		return nil
	}
	if t.configured && w == t.cfg.Width && h == t.cfg.Height {
		return nil
	}
	t.cfg.Width, t.cfg.Height = w, h
	if err := t.surface.Configure(&t.cfg); err != nil {
		return fmt.Errorf("gpu: configuring surface: %w", err)
	}
	t.configured = true
	t.dropOffscreen()
	t.dropGroup()
	Logger().Debug("surface resized", "width", w, "height", h)
	return nil
}

// Reconfigure re-applies the current configuration after a lost or
// outdated surface, re-reading capabilities in case the preferred
// format changed. A format change invalidates the composite pipeline
// via the format check in EnsurePipeline.
func (t *Targets) Reconfigure() error {
	if !t.configured {
		return nil
	}
	caps := t.surface.Capabilities()
	if f := SelectSurfaceFormat(caps); f != t.cfg.Format {
		Logger().Info("surface format changed", "from", t.cfg.Format, "to", f)
		t.cfg.Format = f
	}
	if err := t.surface.Configure(&t.cfg); err != nil {
		return fmt.Errorf("gpu: reconfiguring surface: %w", err)
	}
	return nil
}

// EnsureOffscreen returns the offscreen storage texture view matching
// the current surface size, creating it on first use and after resize.
func (t *Targets) EnsureOffscreen() (TextureView, error) {
	if t.offscreenView != nil && t.offscreenW == t.cfg.Width && t.offscreenH == t.cfg.Height {
		return t.offscreenView, nil
	}
	t.dropOffscreen()
	t.dropGroup()
	// The rasterizer may clear via a render pass or read the frame
	// back, so the target carries attachment and copy-source usage on
	// top of the storage and sampled bindings.
	tex, err := t.dev.CreateTexture(&TextureDescriptor{
		Label:  t.label + " offscreen",
		Width:  t.cfg.Width,
		Height: t.cfg.Height,
		Format: t.storageFormat,
		Usage:  UsageStorageBinding | UsageTextureBinding | UsageRenderAttachment | UsageCopySrc,
	})
	if err != nil {
		return nil, fmt.Errorf("gpu: creating offscreen target: %w", err)
	}
	t.offscreen = tex
	t.offscreenView = tex.View()
	t.offscreenW, t.offscreenH = t.cfg.Width, t.cfg.Height
	t.generation++
	Logger().Debug("offscreen target created",
		"width", t.cfg.Width, "height", t.cfg.Height, "generation", t.generation)
	return t.offscreenView, nil
}

// EnsurePipeline returns the composite pipeline for the current
// swap-chain format, rebuilding it only when the format changed.
func (t *Targets) EnsurePipeline() (RenderPipeline, error) {
	if t.pipeline != nil && t.pipelineFormat == t.cfg.Format {
		return t.pipeline, nil
	}
	if t.pipeline != nil {
		t.pipeline.Release()
		t.pipeline = nil
		t.dropGroup()
	}
	p, err := t.dev.CreateCompositePipeline(t.label+" composite", CompositeShaderSource(), t.cfg.Format)
	if err != nil {
		return nil, fmt.Errorf("gpu: creating composite pipeline: %w", err)
	}
	t.pipeline = p
	t.pipelineFormat = t.cfg.Format
	Logger().Debug("composite pipeline built", "format", t.cfg.Format)
	return p, nil
}

// EnsureBindGroup returns the composite bind group, rebuilding it after
// the offscreen view or pipeline was invalidated.
func (t *Targets) EnsureBindGroup() (BindGroup, error) {
	if t.group != nil {
		return t.group, nil
	}
	view, err := t.EnsureOffscreen()
	if err != nil {
		return nil, err
	}
	pipeline, err := t.EnsurePipeline()
	if err != nil {
		return nil, err
	}
	if t.sampler == nil {
		s, err := t.dev.CreateLinearSampler(t.label + " sampler")
		if err != nil {
			return nil, fmt.Errorf("gpu: creating sampler: %w", err)
		}
		t.sampler = s
	}
	g, err := t.dev.CreateCompositeBindGroup(t.label+" composite bindings", pipeline, t.sampler, view)
	if err != nil {
		return nil, fmt.Errorf("gpu: creating composite bind group: %w", err)
	}
	t.group = g
	return g, nil
}

func (t *Targets) dropOffscreen() {
	if t.offscreenView != nil {
		t.offscreenView.Release()
		t.offscreenView = nil
	}
	if t.offscreen != nil {
		t.offscreen.Release()
		t.offscreen = nil
	}
	t.offscreenW, t.offscreenH = 0, 0
}

func (t *Targets) dropGroup() {
	if t.group != nil {
		t.group.Release()
		t.group = nil
	}
}

// Release frees every owned GPU object.
func (t *Targets) Release() {
	t.dropGroup()
	t.dropOffscreen()
	if t.pipeline != nil {
		t.pipeline.Release()
		t.pipeline = nil
	}
	if t.sampler != nil {
		t.sampler.Release()
		t.sampler = nil
	}
}
