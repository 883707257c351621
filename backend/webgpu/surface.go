package webgpu

import (
	"fmt"
	"strings"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/displaylist/gpu"
)

type surfaceImpl struct {
	surface *wgpu.Surface
	adapter *wgpu.Adapter
	device  *wgpu.Device
}

var _ gpu.Surface = (*surfaceImpl)(nil)

func (s *surfaceImpl) Capabilities() gpu.Capabilities {
	caps := s.surface.GetCapabilities(s.adapter)
	out := gpu.Capabilities{}
	for _, f := range caps.Formats {
		if g := fromWGPUFormat(f); g != gputypes.TextureFormatUndefined {
			out.Formats = append(out.Formats, g)
		}
	}
	for _, m := range caps.PresentModes {
		out.PresentModes = append(out.PresentModes, fromWGPUPresentMode(m))
	}
	for _, m := range caps.AlphaModes {
		out.AlphaModes = append(out.AlphaModes, fromWGPUAlphaMode(m))
	}
	return out
}

func (s *surfaceImpl) Configure(cfg *gpu.Config) error {
	s.surface.Configure(s.adapter, s.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      toWGPUFormat(cfg.Format),
		Width:       cfg.Width,
		Height:      cfg.Height,
		PresentMode: toWGPUPresentMode(cfg.Mode),
		AlphaMode:   toWGPUAlphaMode(cfg.Alpha),
	})
	return nil
}

func (s *surfaceImpl) Acquire() (gpu.Texture, error) {
	tex, err := s.surface.GetCurrentTexture()
	if err != nil {
		return nil, classifyAcquire(err)
	}
	return &textureImpl{tex: tex}, nil
}

func (s *surfaceImpl) Present() {
	s.surface.Present()
}

// classifyAcquire maps the binding's acquire failure onto the package
// sentinels. wgpu-native reports the surface status only through the
// error text, so this matches on the status names.
func classifyAcquire(err error) error {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "timeout"):
		return fmt.Errorf("%w: %v", gpu.ErrAcquireTimeout, err)
	case strings.Contains(msg, "outdated"):
		return fmt.Errorf("%w: %v", gpu.ErrSurfaceOutdated, err)
	case strings.Contains(msg, "lost"):
		return fmt.Errorf("%w: %v", gpu.ErrSurfaceLost, err)
	case strings.Contains(msg, "out of memory"), strings.Contains(msg, "outofmemory"):
		return fmt.Errorf("%w: %v", gpu.ErrOutOfMemory, err)
	}
	return err
}
