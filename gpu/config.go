package gpu

import "github.com/gogpu/gputypes"

// Config is the current surface configuration. Width and Height are in
// device pixels and stay >= 1 whenever a frame is presented.
type Config struct {
	Width  uint32
	Height uint32
	Format gputypes.TextureFormat
	Mode   PresentMode
	Alpha  AlphaMode
}
