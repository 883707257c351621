package gpu

import "github.com/gogpu/gputypes"

// storageCandidates are the offscreen target formats, in preference
// order. The rasterizer writes the offscreen image through a storage
// binding, so the chosen format must support that usage.
var storageCandidates = [...]gputypes.TextureFormat{
	gputypes.TextureFormatRGBA8Unorm,
	gputypes.TextureFormatRGBA8UnormSrgb,
	gputypes.TextureFormatBGRA8Unorm,
	gputypes.TextureFormatBGRA8UnormSrgb,
}

// SelectStorageFormat picks the offscreen texture format: the first
// candidate the device can use as a storage texture. ErrUnsupported
// when none qualifies; the renderer cannot start on such a device.
func SelectStorageFormat(dev Device) (gputypes.TextureFormat, error) {
	for _, f := range storageCandidates {
		if dev.SupportsStorage(f) {
			return f, nil
		}
	}
	return gputypes.TextureFormatUndefined, ErrUnsupported
}

// SelectSurfaceFormat picks the swap-chain format: the first one the
// surface reports, else BGRA8Unorm.
func SelectSurfaceFormat(caps Capabilities) gputypes.TextureFormat {
	if len(caps.Formats) > 0 {
		return caps.Formats[0]
	}
	return gputypes.TextureFormatBGRA8Unorm
}

// SelectPresentMode prefers FIFO (always available per WebGPU, but the
// report may omit it), else the first reported mode.
func SelectPresentMode(caps Capabilities) PresentMode {
	for _, m := range caps.PresentModes {
		if m == PresentModeFifo {
			return m
		}
	}
	if len(caps.PresentModes) > 0 {
		return caps.PresentModes[0]
	}
	return PresentModeFifo
}

// SelectAlphaMode prefers premultiplied, then opaque, then the first
// reported mode, else auto.
func SelectAlphaMode(caps Capabilities) AlphaMode {
	for _, m := range caps.AlphaModes {
		if m == AlphaModePremultiplied {
			return m
		}
	}
	for _, m := range caps.AlphaModes {
		if m == AlphaModeOpaque {
			return m
		}
	}
	if len(caps.AlphaModes) > 0 {
		return caps.AlphaModes[0]
	}
	return AlphaModeAuto
}
