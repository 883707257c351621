package displaylist

import "github.com/gogpu/displaylist/text"

type config struct {
	rasterizer Rasterizer
	font       *text.Source
	label      string
}

func defaultConfig() config {
	return config{label: "displaylist"}
}

// Option configures a Renderer at construction.
type Option func(*config)

// WithRasterizer overrides the process-wide rasterizer for this
// renderer.
func WithRasterizer(r Rasterizer) Option {
	return func(c *config) { c.rasterizer = r }
}

// WithFont replaces the embedded default face for text layout.
func WithFont(src *text.Source) Option {
	return func(c *config) { c.font = src }
}

// WithLabel sets the label prefix attached to GPU objects, visible in
// graphics debuggers.
func WithLabel(label string) Option {
	return func(c *config) {
		if label != "" {
			c.label = label
		}
	}
}
