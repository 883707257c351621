package webgpu

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/displaylist/gpu"
)

type deviceImpl struct {
	device *wgpu.Device
	queue  *wgpu.Queue
}

var _ gpu.Device = (*deviceImpl)(nil)

// SupportsStorage admits only rgba8unorm: it is the one candidate
// format whose storage-binding usage core WebGPU guarantees without
// optional features (bgra8unorm needs bgra8unorm-storage, srgb
// variants never qualify).
func (d *deviceImpl) SupportsStorage(f gputypes.TextureFormat) bool {
	return f == gputypes.TextureFormatRGBA8Unorm
}

func (d *deviceImpl) CreateTexture(desc *gpu.TextureDescriptor) (gpu.Texture, error) {
	tex, err := d.device.CreateTexture(&wgpu.TextureDescriptor{
		Label: desc.Label,
		Size: wgpu.Extent3D{
			Width:              desc.Width,
			Height:             desc.Height,
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        toWGPUFormat(desc.Format),
		Usage:         toWGPUUsage(desc.Usage),
	})
	if err != nil {
		return nil, fmt.Errorf("webgpu: creating texture %q: %w", desc.Label, err)
	}
	return &textureImpl{tex: tex}, nil
}

func (d *deviceImpl) CreateLinearSampler(label string) (gpu.Sampler, error) {
	s, err := d.device.CreateSampler(&wgpu.SamplerDescriptor{
		Label:         label,
		AddressModeU:  wgpu.AddressModeClampToEdge,
		AddressModeV:  wgpu.AddressModeClampToEdge,
		AddressModeW:  wgpu.AddressModeClampToEdge,
		MagFilter:     wgpu.FilterModeLinear,
		MinFilter:     wgpu.FilterModeLinear,
		MipmapFilter:  wgpu.MipmapFilterModeNearest,
		LodMaxClamp:   32,
		MaxAnisotropy: 1,
	})
	if err != nil {
		return nil, fmt.Errorf("webgpu: creating sampler: %w", err)
	}
	return &samplerImpl{s: s}, nil
}

func (d *deviceImpl) CreateCompositePipeline(label, wgsl string, target gputypes.TextureFormat) (gpu.RenderPipeline, error) {
	module, err := d.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          label,
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: wgsl},
	})
	if err != nil {
		return nil, fmt.Errorf("webgpu: compiling composite shader: %w", err)
	}
	defer module.Release()

	blend := &wgpu.BlendState{
		Color: wgpu.BlendComponent{
			SrcFactor: wgpu.BlendFactorSrcAlpha,
			DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
			Operation: wgpu.BlendOperationAdd,
		},
		Alpha: wgpu.BlendComponent{
			SrcFactor: wgpu.BlendFactorOne,
			DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
			Operation: wgpu.BlendOperationAdd,
		},
	}
	pipeline, err := d.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label: label,
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: "vs_main",
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  ^uint32(0),
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{{
				Format:    toWGPUFormat(target),
				Blend:     blend,
				WriteMask: wgpu.ColorWriteMaskAll,
			}},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("webgpu: creating composite pipeline: %w", err)
	}
	return &pipelineImpl{p: pipeline}, nil
}

func (d *deviceImpl) CreateCompositeBindGroup(label string, pipeline gpu.RenderPipeline, sampler gpu.Sampler, src gpu.TextureView) (gpu.BindGroup, error) {
	p := pipeline.(*pipelineImpl)
	layout := p.p.GetBindGroupLayout(0)
	defer layout.Release()
	group, err := d.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  label,
		Layout: layout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Sampler: sampler.(*samplerImpl).s},
			{Binding: 1, TextureView: src.(*viewImpl).v},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("webgpu: creating bind group: %w", err)
	}
	return &groupImpl{g: group}, nil
}

func (d *deviceImpl) Composite(dst gpu.TextureView, pipeline gpu.RenderPipeline, group gpu.BindGroup) error {
	encoder, err := d.device.CreateCommandEncoder(nil)
	if err != nil {
		return fmt.Errorf("webgpu: creating command encoder: %w", err)
	}
	defer encoder.Release()

	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:    dst.(*viewImpl).v,
			LoadOp:  wgpu.LoadOpLoad,
			StoreOp: wgpu.StoreOpStore,
		}},
	})
	pass.SetPipeline(pipeline.(*pipelineImpl).p)
	pass.SetBindGroup(0, group.(*groupImpl).g, nil)
	pass.Draw(3, 1, 0, 0)
	pass.End()
	pass.Release()

	buf, err := encoder.Finish(nil)
	if err != nil {
		return fmt.Errorf("webgpu: finishing command buffer: %w", err)
	}
	defer buf.Release()
	d.queue.Submit(buf)
	return nil
}

// WGPU exposes the underlying device and queue for rasterizers that
// record their own passes against this backend.
func (d *deviceImpl) WGPU() (*wgpu.Device, *wgpu.Queue) {
	return d.device, d.queue
}

type textureImpl struct {
	tex *wgpu.Texture
}

func (t *textureImpl) View() gpu.TextureView {
	v, _ := t.tex.CreateView(nil)
	return &viewImpl{v: v}
}

func (t *textureImpl) Release() { t.tex.Release() }

type viewImpl struct {
	v *wgpu.TextureView
}

func (v *viewImpl) Release() { v.v.Release() }

type samplerImpl struct {
	s *wgpu.Sampler
}

func (s *samplerImpl) Release() { s.s.Release() }

type pipelineImpl struct {
	p *wgpu.RenderPipeline
}

func (p *pipelineImpl) Release() { p.p.Release() }

type groupImpl struct {
	g *wgpu.BindGroup
}

func (g *groupImpl) Release() { g.g.Release() }
