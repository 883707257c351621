package webgpu

import (
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/displaylist/gpu"
)

// Only the 8-bit color formats the renderer can select are mapped;
// everything else collapses to Undefined and is filtered out of the
// reported capabilities.

func toWGPUFormat(f gputypes.TextureFormat) wgpu.TextureFormat {
	switch f {
	case gputypes.TextureFormatRGBA8Unorm:
		return wgpu.TextureFormatRGBA8Unorm
	case gputypes.TextureFormatRGBA8UnormSrgb:
		return wgpu.TextureFormatRGBA8UnormSrgb
	case gputypes.TextureFormatBGRA8Unorm:
		return wgpu.TextureFormatBGRA8Unorm
	case gputypes.TextureFormatBGRA8UnormSrgb:
		return wgpu.TextureFormatBGRA8UnormSrgb
	}
	return wgpu.TextureFormatUndefined
}

func fromWGPUFormat(f wgpu.TextureFormat) gputypes.TextureFormat {
	switch f {
	case wgpu.TextureFormatRGBA8Unorm:
		return gputypes.TextureFormatRGBA8Unorm
	case wgpu.TextureFormatRGBA8UnormSrgb:
		return gputypes.TextureFormatRGBA8UnormSrgb
	case wgpu.TextureFormatBGRA8Unorm:
		return gputypes.TextureFormatBGRA8Unorm
	case wgpu.TextureFormatBGRA8UnormSrgb:
		return gputypes.TextureFormatBGRA8UnormSrgb
	}
	return gputypes.TextureFormatUndefined
}

func toWGPUUsage(u gpu.TextureUsage) wgpu.TextureUsage {
	var out wgpu.TextureUsage
	if u&gpu.UsageCopySrc != 0 {
		out |= wgpu.TextureUsageCopySrc
	}
	if u&gpu.UsageCopyDst != 0 {
		out |= wgpu.TextureUsageCopyDst
	}
	if u&gpu.UsageTextureBinding != 0 {
		out |= wgpu.TextureUsageTextureBinding
	}
	if u&gpu.UsageStorageBinding != 0 {
		out |= wgpu.TextureUsageStorageBinding
	}
	if u&gpu.UsageRenderAttachment != 0 {
		out |= wgpu.TextureUsageRenderAttachment
	}
	return out
}

func toWGPUPresentMode(m gpu.PresentMode) wgpu.PresentMode {
	switch m {
	case gpu.PresentModeFifoRelaxed:
		return wgpu.PresentModeFifoRelaxed
	case gpu.PresentModeImmediate:
		return wgpu.PresentModeImmediate
	case gpu.PresentModeMailbox:
		return wgpu.PresentModeMailbox
	}
	return wgpu.PresentModeFifo
}

func fromWGPUPresentMode(m wgpu.PresentMode) gpu.PresentMode {
	switch m {
	case wgpu.PresentModeFifoRelaxed:
		return gpu.PresentModeFifoRelaxed
	case wgpu.PresentModeImmediate:
		return gpu.PresentModeImmediate
	case wgpu.PresentModeMailbox:
		return gpu.PresentModeMailbox
	}
	return gpu.PresentModeFifo
}

func toWGPUAlphaMode(m gpu.AlphaMode) wgpu.CompositeAlphaMode {
	switch m {
	case gpu.AlphaModeOpaque:
		return wgpu.CompositeAlphaModeOpaque
	case gpu.AlphaModePremultiplied:
		return wgpu.CompositeAlphaModePremultiplied
	case gpu.AlphaModePostmultiplied:
		return wgpu.CompositeAlphaModeUnpremultiplied
	}
	return wgpu.CompositeAlphaModeAuto
}

func fromWGPUAlphaMode(m wgpu.CompositeAlphaMode) gpu.AlphaMode {
	switch m {
	case wgpu.CompositeAlphaModeOpaque:
		return gpu.AlphaModeOpaque
	case wgpu.CompositeAlphaModePremultiplied:
		return gpu.AlphaModePremultiplied
	case wgpu.CompositeAlphaModeUnpremultiplied:
		return gpu.AlphaModePostmultiplied
	}
	return gpu.AlphaModeAuto
}
