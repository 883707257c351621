package gpu

import (
	"errors"

	"github.com/gogpu/gputypes"
)

// fakeDevice records resource creation and lets tests choose which
// formats count as storage-capable.
type fakeDevice struct {
	storage map[gputypes.TextureFormat]bool

	textures   []*fakeTexture
	pipelines  []*fakePipeline
	groups     []*fakeBindGroup
	samplers   int
	composites int

	failTexture error
}

func (d *fakeDevice) SupportsStorage(f gputypes.TextureFormat) bool {
	return d.storage[f]
}

func (d *fakeDevice) CreateTexture(desc *TextureDescriptor) (Texture, error) {
	if d.failTexture != nil {
		return nil, d.failTexture
	}
	t := &fakeTexture{desc: *desc}
	d.textures = append(d.textures, t)
	return t, nil
}

func (d *fakeDevice) CreateLinearSampler(string) (Sampler, error) {
	d.samplers++
	return &fakeSampler{}, nil
}

func (d *fakeDevice) CreateCompositePipeline(_, _ string, target gputypes.TextureFormat) (RenderPipeline, error) {
	p := &fakePipeline{format: target}
	d.pipelines = append(d.pipelines, p)
	return p, nil
}

func (d *fakeDevice) CreateCompositeBindGroup(_ string, _ RenderPipeline, _ Sampler, _ TextureView) (BindGroup, error) {
	g := &fakeBindGroup{}
	d.groups = append(d.groups, g)
	return g, nil
}

func (d *fakeDevice) Composite(TextureView, RenderPipeline, BindGroup) error {
	d.composites++
	return nil
}

type fakeTexture struct {
	desc     TextureDescriptor
	released bool
}

func (t *fakeTexture) View() TextureView { return &fakeView{} }
func (t *fakeTexture) Release()          { t.released = true }

type fakeView struct{ released bool }

func (v *fakeView) Release() { v.released = true }

type fakeSampler struct{ released bool }

func (s *fakeSampler) Release() { s.released = true }

type fakePipeline struct {
	format   gputypes.TextureFormat
	released bool
}

func (p *fakePipeline) Release() { p.released = true }

type fakeBindGroup struct{ released bool }

func (g *fakeBindGroup) Release() { g.released = true }

// fakeSurface serves capabilities and counts configurations.
type fakeSurface struct {
	caps       Capabilities
	configs    []Config
	failConfig error

	acquireErrs []error // consumed in order; nil means success
	presented   int
}

func (s *fakeSurface) Capabilities() Capabilities { return s.caps }

func (s *fakeSurface) Configure(cfg *Config) error {
	if s.failConfig != nil {
		return s.failConfig
	}
	s.configs = append(s.configs, *cfg)
	return nil
}

func (s *fakeSurface) Acquire() (Texture, error) {
	var err error
	if len(s.acquireErrs) > 0 {
		err = s.acquireErrs[0]
		s.acquireErrs = s.acquireErrs[1:]
	}
	if err != nil {
		return nil, err
	}
	return &fakeTexture{}, nil
}

func (s *fakeSurface) Present() { s.presented++ }

var errBoom = errors.New("boom")

func storageAll() map[gputypes.TextureFormat]bool {
	return map[gputypes.TextureFormat]bool{
		gputypes.TextureFormatRGBA8Unorm:     true,
		gputypes.TextureFormatRGBA8UnormSrgb: true,
		gputypes.TextureFormatBGRA8Unorm:     true,
		gputypes.TextureFormatBGRA8UnormSrgb: true,
	}
}
