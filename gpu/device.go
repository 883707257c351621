// Package gpu abstracts the WebGPU objects the renderer needs behind
// small interfaces, keeping format and lifetime policy testable without
// a live adapter. The concrete implementation lives in backend/webgpu.
package gpu

import (
	"errors"

	"github.com/gogpu/gputypes"
)

// Sentinel errors surfaced by Surface.Acquire. The frame driver maps
// them onto its recovery policy: lost and outdated surfaces are
// reconfigured and retried once, timeouts skip the frame, out of
// memory is fatal.
var (
	ErrSurfaceLost     = errors.New("gpu: surface lost")
	ErrSurfaceOutdated = errors.New("gpu: surface outdated")
	ErrAcquireTimeout  = errors.New("gpu: surface acquire timed out")
	ErrOutOfMemory     = errors.New("gpu: out of memory")
)

// ErrUnsupported is returned at init when the device offers no color
// format usable as a storage texture.
var ErrUnsupported = errors.New("gpu: no storage-capable color format")

// TextureUsage is a bitmask of texture usages.
type TextureUsage uint32

const (
	UsageCopySrc TextureUsage = 1 << iota
	UsageCopyDst
	UsageTextureBinding
	UsageStorageBinding
	UsageRenderAttachment
)

// PresentMode selects swap-chain presentation timing.
type PresentMode uint8

const (
	PresentModeFifo PresentMode = iota
	PresentModeFifoRelaxed
	PresentModeImmediate
	PresentModeMailbox
)

// AlphaMode selects how the surface composites with what is behind it.
type AlphaMode uint8

const (
	AlphaModeAuto AlphaMode = iota
	AlphaModeOpaque
	AlphaModePremultiplied
	AlphaModePostmultiplied
)

// Capabilities is what the surface reports for the chosen adapter.
// Slices are ordered by the platform's preference.
type Capabilities struct {
	Formats      []gputypes.TextureFormat
	PresentModes []PresentMode
	AlphaModes   []AlphaMode
}

// TextureDescriptor describes a 2D texture allocation.
type TextureDescriptor struct {
	Label         string
	Width, Height uint32
	Format        gputypes.TextureFormat
	Usage         TextureUsage
}

// Texture is a GPU texture; View creates (and the texture owns) a full
// view of it.
type Texture interface {
	View() TextureView
	Release()
}

// TextureView is a sampleable or attachable view of a texture.
type TextureView interface {
	Release()
}

// Sampler is an immutable sampler object.
type Sampler interface {
	Release()
}

// RenderPipeline is a compiled render pipeline.
type RenderPipeline interface {
	Release()
}

// BindGroup binds resources to a pipeline's group 0.
type BindGroup interface {
	Release()
}

// Device creates resources and records the composite pass.
type Device interface {
	// SupportsStorage reports whether format can back a write-only
	// storage texture binding.
	SupportsStorage(format gputypes.TextureFormat) bool

	CreateTexture(desc *TextureDescriptor) (Texture, error)

	// CreateLinearSampler returns a clamp-to-edge sampler with linear
	// min/mag filtering.
	CreateLinearSampler(label string) (Sampler, error)

	// CreateCompositePipeline compiles the full-screen composite
	// pipeline targeting the given swap-chain format, with standard
	// alpha blending.
	CreateCompositePipeline(label, wgsl string, target gputypes.TextureFormat) (RenderPipeline, error)

	// CreateCompositeBindGroup binds {0: sampler, 1: source view} for
	// the composite pipeline.
	CreateCompositeBindGroup(label string, pipeline RenderPipeline, sampler Sampler, src TextureView) (BindGroup, error)

	// Composite records and submits one render pass over dst: load
	// existing contents, draw a three-vertex full-screen triangle.
	Composite(dst TextureView, pipeline RenderPipeline, group BindGroup) error
}

// Surface is the presentable swap chain.
type Surface interface {
	Capabilities() Capabilities
	Configure(cfg *Config) error
	// Acquire returns the next swap-chain texture, or one of the
	// sentinel acquire errors.
	Acquire() (Texture, error)
	Present()
}

// Backend bundles a device with the surface it presents to.
type Backend interface {
	Device() Device
	Surface() Surface
	Release()
}
