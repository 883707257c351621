package webgpu

import (
	"errors"
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/displaylist/gpu"
)

func TestClassifyAcquire(t *testing.T) {
	tests := []struct {
		msg  string
		want error
	}{
		{"failed to acquire current texture: Timeout", gpu.ErrAcquireTimeout},
		{"failed to acquire current texture: Outdated", gpu.ErrSurfaceOutdated},
		{"failed to acquire current texture: Lost", gpu.ErrSurfaceLost},
		{"failed to acquire current texture: OutOfMemory", gpu.ErrOutOfMemory},
		{"device error: out of memory", gpu.ErrOutOfMemory},
	}
	for _, tt := range tests {
		got := classifyAcquire(errors.New(tt.msg))
		if !errors.Is(got, tt.want) {
			t.Errorf("classifyAcquire(%q) = %v, want %v", tt.msg, got, tt.want)
		}
	}

	// Unrecognized failures pass through unchanged so the frame driver
	// treats them as transient.
	plain := errors.New("something else")
	if got := classifyAcquire(plain); got != plain {
		t.Errorf("unknown error must pass through, got %v", got)
	}
}

func TestFormatRoundTrip(t *testing.T) {
	formats := []gputypes.TextureFormat{
		gputypes.TextureFormatRGBA8Unorm,
		gputypes.TextureFormatRGBA8UnormSrgb,
		gputypes.TextureFormatBGRA8Unorm,
		gputypes.TextureFormatBGRA8UnormSrgb,
	}
	for _, f := range formats {
		if got := fromWGPUFormat(toWGPUFormat(f)); got != f {
			t.Errorf("round trip of %v = %v", f, got)
		}
	}
	if got := toWGPUFormat(gputypes.TextureFormatR8Unorm); got != 0 {
		// Unmapped formats collapse to Undefined (zero).
		t.Errorf("unmapped format = %v, want undefined", got)
	}
}

func TestModeRoundTrips(t *testing.T) {
	for _, m := range []gpu.PresentMode{
		gpu.PresentModeFifo, gpu.PresentModeFifoRelaxed,
		gpu.PresentModeImmediate, gpu.PresentModeMailbox,
	} {
		if got := fromWGPUPresentMode(toWGPUPresentMode(m)); got != m {
			t.Errorf("present mode round trip of %v = %v", m, got)
		}
	}
	for _, m := range []gpu.AlphaMode{
		gpu.AlphaModeOpaque, gpu.AlphaModePremultiplied, gpu.AlphaModePostmultiplied,
	} {
		if got := fromWGPUAlphaMode(toWGPUAlphaMode(m)); got != m {
			t.Errorf("alpha mode round trip of %v = %v", m, got)
		}
	}
}

func TestStorageSupportPolicy(t *testing.T) {
	d := &deviceImpl{}
	if !d.SupportsStorage(gputypes.TextureFormatRGBA8Unorm) {
		t.Error("rgba8unorm storage is guaranteed by core WebGPU")
	}
	for _, f := range []gputypes.TextureFormat{
		gputypes.TextureFormatRGBA8UnormSrgb,
		gputypes.TextureFormatBGRA8Unorm,
		gputypes.TextureFormatBGRA8UnormSrgb,
	} {
		if d.SupportsStorage(f) {
			t.Errorf("%v must not be reported storage-capable without features", f)
		}
	}
}
