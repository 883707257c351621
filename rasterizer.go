package displaylist

import (
	"errors"
	"sync"

	"github.com/gogpu/displaylist/gpu"
	"github.com/gogpu/displaylist/scene"
)

// RasterizeParams carries the per-frame inputs a rasterizer needs
// beyond the scene itself.
type RasterizeParams struct {
	// BaseColor clears the offscreen target before the scene draws.
	BaseColor scene.Color

	// Width, Height are the offscreen target dimensions in device
	// pixels; they match the surface configuration.
	Width, Height uint32
}

// Rasterizer renders a retained scene into the offscreen storage
// texture. Implementations record and submit their own GPU work on the
// device; the renderer composites the result onto the swap chain in a
// later submission on the same queue, so the dependency between the two
// is ordered by queue-submission sequence rather than within a single
// command buffer.
//
// Backends are installed via blank import:
//
//	import _ "github.com/gogpu/displaylist-vello" // registers itself
type Rasterizer interface {
	// Name identifies the rasterizer in logs.
	Name() string

	// Render draws sc over a BaseColor-filled target.
	Render(dev gpu.Device, target gpu.TextureView, sc *scene.Scene, params RasterizeParams) error
}

var (
	rastMu     sync.RWMutex
	registered Rasterizer
)

// RegisterRasterizer installs a process-wide default rasterizer. Only
// one can be registered; later calls replace the previous one.
// WithRasterizer overrides the default for a single renderer.
func RegisterRasterizer(r Rasterizer) error {
	if r == nil {
		return errors.New("displaylist: rasterizer must not be nil")
	}
	rastMu.Lock()
	registered = r
	rastMu.Unlock()
	Logger().Info("rasterizer registered", "name", r.Name())
	return nil
}

// RegisteredRasterizer returns the process-wide default, or nil.
func RegisteredRasterizer() Rasterizer {
	rastMu.RLock()
	r := registered
	rastMu.RUnlock()
	return r
}
