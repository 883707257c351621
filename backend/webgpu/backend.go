// Package webgpu implements the gpu abstraction over
// github.com/cogentcore/webgpu, targeting both native (wgpu-native)
// and browser (WebGPU via wasm) builds of that binding.
package webgpu

import (
	"errors"
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/gogpu/displaylist/gpu"
)

// Backend owns the WebGPU instance, adapter, device and surface.
type Backend struct {
	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue

	dev  *deviceImpl
	surf *surfaceImpl
}

var _ gpu.Backend = (*Backend)(nil)

// New creates a backend presenting to the surface described by desc
// (a window or canvas handle, per platform). The adapter is requested
// with high-performance preference and no fallback adapter.
func New(desc *wgpu.SurfaceDescriptor) (*Backend, error) {
	if desc == nil {
		return nil, errors.New("webgpu: surface descriptor is nil")
	}
	instance := wgpu.CreateInstance(nil)
	surface := instance.CreateSurface(desc)
	adapter, err := instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		CompatibleSurface: surface,
		PowerPreference:   wgpu.PowerPreferenceHighPerformance,
	})
	if err != nil {
		instance.Release()
		return nil, fmt.Errorf("webgpu: requesting adapter: %w", err)
	}
	device, err := adapter.RequestDevice(nil)
	if err != nil {
		adapter.Release()
		instance.Release()
		return nil, fmt.Errorf("webgpu: requesting device: %w", err)
	}
	b := &Backend{
		instance: instance,
		adapter:  adapter,
		device:   device,
		queue:    device.GetQueue(),
	}
	b.dev = &deviceImpl{device: device, queue: b.queue}
	b.surf = &surfaceImpl{surface: surface, adapter: adapter, device: device}
	gpu.Logger().Info("webgpu backend ready")
	return b, nil
}

// Device returns the resource-creating device.
func (b *Backend) Device() gpu.Device { return b.dev }

// Surface returns the presentable surface.
func (b *Backend) Surface() gpu.Surface { return b.surf }

// Release frees the device, adapter and instance.
func (b *Backend) Release() {
	if b.surf != nil && b.surf.surface != nil {
		b.surf.surface.Release()
		b.surf.surface = nil
	}
	if b.device != nil {
		b.device.Release()
		b.device = nil
	}
	if b.adapter != nil {
		b.adapter.Release()
		b.adapter = nil
	}
	if b.instance != nil {
		b.instance.Release()
		b.instance = nil
	}
}
