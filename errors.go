package displaylist

import "errors"

// Render-time errors. Decode failures surface as wire.ErrMalformedStream
// from Apply; init failures wrap gpu.ErrUnsupported.
var (
	// ErrClosed is returned by every method after Close.
	ErrClosed = errors.New("displaylist: renderer is closed")

	// ErrNoRasterizer means Render ran with no rasterizer installed,
	// neither via RegisterRasterizer nor WithRasterizer.
	ErrNoRasterizer = errors.New("displaylist: no rasterizer installed")

	// ErrGpuTransient is a recoverable GPU failure; the caller should
	// retry on the next frame.
	ErrGpuTransient = errors.New("displaylist: transient gpu failure")

	// ErrGpuAcquire means the swap-chain texture could not be acquired
	// even after reconfiguring the surface once.
	ErrGpuAcquire = errors.New("displaylist: swap-chain acquire failed")

	// ErrGpuFatal is an unrecoverable device loss, such as running out
	// of memory. The renderer should be discarded.
	ErrGpuFatal = errors.New("displaylist: fatal gpu failure")

	// ErrRenderFailed wraps a rasterizer failure for the current scene.
	ErrRenderFailed = errors.New("displaylist: scene rasterization failed")
)
