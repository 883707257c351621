package gpu

import (
	"errors"
	"testing"

	"github.com/gogpu/gputypes"
)

func newTestTargets(t *testing.T) (*Targets, *fakeDevice, *fakeSurface) {
	t.Helper()
	dev := &fakeDevice{storage: storageAll()}
	surf := &fakeSurface{caps: Capabilities{
		Formats:      []gputypes.TextureFormat{gputypes.TextureFormatBGRA8Unorm},
		PresentModes: []PresentMode{PresentModeFifo},
		AlphaModes:   []AlphaMode{AlphaModePremultiplied},
	}}
	tg, err := NewTargets(dev, surf, "test")
	if err != nil {
		t.Fatalf("NewTargets: %v", err)
	}
	return tg, dev, surf
}

func TestNewTargetsSelection(t *testing.T) {
	tg, _, _ := newTestTargets(t)
	cfg := tg.Config()
	if cfg.Format != gputypes.TextureFormatBGRA8Unorm {
		t.Errorf("surface format = %v", cfg.Format)
	}
	if tg.StorageFormat() != gputypes.TextureFormatRGBA8Unorm {
		t.Errorf("storage format = %v", tg.StorageFormat())
	}
	if tg.Configured() {
		t.Error("must not be configured before first Resize")
	}
}

func TestNewTargetsUnsupported(t *testing.T) {
	_, err := NewTargets(&fakeDevice{}, &fakeSurface{}, "test")
	if !errors.Is(err, ErrUnsupported) {
		t.Fatalf("err = %v, want ErrUnsupported", err)
	}
}

func TestResizeNoOp(t *testing.T) {
	tg, _, surf := newTestTargets(t)
	if err := tg.Resize(0, 100); err != nil {
		t.Fatal(err)
	}
	if err := tg.Resize(100, 0); err != nil {
		t.Fatal(err)
	}
	if len(surf.configs) != 0 {
		t.Fatalf("zero-dimension resize configured the surface %d times", len(surf.configs))
	}

	if err := tg.Resize(640, 480); err != nil {
		t.Fatal(err)
	}
	if err := tg.Resize(640, 480); err != nil {
		t.Fatal(err)
	}
	if len(surf.configs) != 1 {
		t.Fatalf("unchanged resize reconfigured: %d configurations", len(surf.configs))
	}
	if !tg.Configured() {
		t.Error("must be configured after a real resize")
	}
}

func TestResizeInvalidatesOffscreenAndBindGroup(t *testing.T) {
	tg, dev, _ := newTestTargets(t)
	if err := tg.Resize(100, 100); err != nil {
		t.Fatal(err)
	}
	if _, err := tg.EnsureBindGroup(); err != nil {
		t.Fatal(err)
	}
	gen := tg.Generation()
	firstTex := dev.textures[0]
	firstGroup := dev.groups[0]

	if err := tg.Resize(200, 150); err != nil {
		t.Fatal(err)
	}
	if !firstTex.released {
		t.Error("resize must release the old offscreen texture")
	}
	if !firstGroup.released {
		t.Error("resize must release the old bind group")
	}

	if _, err := tg.EnsureBindGroup(); err != nil {
		t.Fatal(err)
	}
	if tg.Generation() != gen+1 {
		t.Errorf("generation = %d, want %d", tg.Generation(), gen+1)
	}
	last := dev.textures[len(dev.textures)-1]
	if last.desc.Width != 200 || last.desc.Height != 150 {
		t.Errorf("new offscreen is %dx%d", last.desc.Width, last.desc.Height)
	}
	want := UsageStorageBinding | UsageTextureBinding | UsageRenderAttachment | UsageCopySrc
	if last.desc.Usage&want != want {
		t.Errorf("offscreen usage = %v, want storage|texture|attachment|copy-src", last.desc.Usage)
	}
}

func TestEnsureOffscreenUsage(t *testing.T) {
	tg, dev, _ := newTestTargets(t)
	if err := tg.Resize(100, 100); err != nil {
		t.Fatal(err)
	}
	if _, err := tg.EnsureOffscreen(); err != nil {
		t.Fatal(err)
	}
	// Rasterizers clear via render passes and read frames back, so the
	// target needs attachment and copy-source usage alongside the
	// storage and sampled bindings.
	got := dev.textures[0].desc.Usage
	want := UsageStorageBinding | UsageTextureBinding | UsageRenderAttachment | UsageCopySrc
	if got != want {
		t.Errorf("offscreen usage = %v, want %v", got, want)
	}
}

func TestEnsureOffscreenStableAcrossFrames(t *testing.T) {
	tg, dev, _ := newTestTargets(t)
	if err := tg.Resize(100, 100); err != nil {
		t.Fatal(err)
	}
	v1, err := tg.EnsureOffscreen()
	if err != nil {
		t.Fatal(err)
	}
	v2, err := tg.EnsureOffscreen()
	if err != nil {
		t.Fatal(err)
	}
	if v1 != v2 {
		t.Error("unchanged size must reuse the offscreen view")
	}
	if len(dev.textures) != 1 {
		t.Errorf("created %d textures, want 1", len(dev.textures))
	}
}

func TestEnsurePipelineRebuildOnFormatChangeOnly(t *testing.T) {
	tg, dev, surf := newTestTargets(t)
	if err := tg.Resize(100, 100); err != nil {
		t.Fatal(err)
	}
	p1, err := tg.EnsurePipeline()
	if err != nil {
		t.Fatal(err)
	}
	p2, err := tg.EnsurePipeline()
	if err != nil {
		t.Fatal(err)
	}
	if p1 != p2 {
		t.Error("stable format must reuse the pipeline")
	}

	// Same format on reconfigure: still no rebuild.
	if err := tg.Reconfigure(); err != nil {
		t.Fatal(err)
	}
	p3, err := tg.EnsurePipeline()
	if err != nil {
		t.Fatal(err)
	}
	if p3 != p1 {
		t.Error("reconfigure without format change must not rebuild")
	}

	// Format change: rebuild and drop the old pipeline.
	surf.caps.Formats = []gputypes.TextureFormat{gputypes.TextureFormatRGBA8Unorm}
	if err := tg.Reconfigure(); err != nil {
		t.Fatal(err)
	}
	p4, err := tg.EnsurePipeline()
	if err != nil {
		t.Fatal(err)
	}
	if p4 == p1 {
		t.Error("format change must rebuild the pipeline")
	}
	if !dev.pipelines[0].released {
		t.Error("old pipeline must be released")
	}
	if dev.pipelines[1].format != gputypes.TextureFormatRGBA8Unorm {
		t.Errorf("new pipeline format = %v", dev.pipelines[1].format)
	}
}

func TestEnsureBindGroupReusesSampler(t *testing.T) {
	tg, dev, _ := newTestTargets(t)
	if err := tg.Resize(64, 64); err != nil {
		t.Fatal(err)
	}
	if _, err := tg.EnsureBindGroup(); err != nil {
		t.Fatal(err)
	}
	if err := tg.Resize(65, 64); err != nil {
		t.Fatal(err)
	}
	if _, err := tg.EnsureBindGroup(); err != nil {
		t.Fatal(err)
	}
	if dev.samplers != 1 {
		t.Errorf("created %d samplers, want 1", dev.samplers)
	}
	if len(dev.groups) != 2 {
		t.Errorf("created %d bind groups, want 2", len(dev.groups))
	}
}

func TestEnsureOffscreenPropagatesCreateError(t *testing.T) {
	tg, dev, _ := newTestTargets(t)
	if err := tg.Resize(10, 10); err != nil {
		t.Fatal(err)
	}
	dev.failTexture = errBoom
	if _, err := tg.EnsureOffscreen(); !errors.Is(err, errBoom) {
		t.Fatalf("err = %v, want wrapped errBoom", err)
	}
}

func TestReleaseIdempotent(t *testing.T) {
	tg, _, _ := newTestTargets(t)
	if err := tg.Resize(10, 10); err != nil {
		t.Fatal(err)
	}
	if _, err := tg.EnsureBindGroup(); err != nil {
		t.Fatal(err)
	}
	tg.Release()
	tg.Release()
}
