// Package displaylist renders compact binary display lists with
// WebGPU.
//
// A display list is a little-endian byte stream of framed records:
// BeginFrame (surface size and clear color), Rect, Path (SVG path
// data), Text, and EndFrame. Apply decodes a stream into a retained
// scene; Render draws that scene every frame until the next Apply.
//
// Rendering is two-stage: a pluggable vector rasterizer (see
// Rasterizer and RegisterRasterizer) writes the scene into an
// offscreen storage texture, and a full-screen triangle pass
// composites that texture onto the swap chain.
//
// Typical use:
//
//	backend, err := webgpu.New(surfaceDesc)
//	if err != nil { ... }
//	r, err := displaylist.New(backend)
//	if err != nil { ... }
//	defer r.Close()
//
//	if err := r.Apply(frameBytes); err != nil { ... }
//	for running {
//		if err := r.Render(); err != nil { ... }
//	}
package displaylist
