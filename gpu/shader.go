package gpu

import (
	"fmt"

	"github.com/gogpu/naga"
)

// compositeWGSL blits the offscreen image onto the swap chain with a
// single full-screen triangle; the pass loads existing contents and
// blends with straight alpha.
const compositeWGSL = `
struct VertexOutput {
    @builtin(position) position: vec4<f32>,
    @location(0) uv: vec2<f32>,
}

@vertex
fn vs_main(@builtin(vertex_index) index: u32) -> VertexOutput {
    var out: VertexOutput;
    let x = f32(i32(index) / 2) * 4.0 - 1.0;
    let y = f32(i32(index) % 2) * 4.0 - 1.0;
    out.position = vec4<f32>(x, y, 0.0, 1.0);
    out.uv = vec2<f32>((x + 1.0) * 0.5, 1.0 - (y + 1.0) * 0.5);
    return out;
}

@group(0) @binding(0) var samp: sampler;
@group(0) @binding(1) var tex: texture_2d<f32>;

@fragment
fn fs_main(in: VertexOutput) -> @location(0) vec4<f32> {
    return textureSample(tex, samp, in.uv);
}
`

// CompositeShaderSource returns the WGSL for the composite pipeline.
func CompositeShaderSource() string { return compositeWGSL }

// ValidateCompositeShader compiles the composite shader through naga,
// catching WGSL regressions at init instead of first present.
func ValidateCompositeShader() error {
	if _, err := naga.Compile(compositeWGSL); err != nil {
		return fmt.Errorf("gpu: composite shader failed validation: %w", err)
	}
	return nil
}
