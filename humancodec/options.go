package humancodec

import "github.com/dxserializer/dx/internal/options"

// DefaultWrapWidth is the column at which encode wraps wide tabular
// sections using a continuation marker (§4.4).
const DefaultWrapWidth = 120

// config holds the Human codec's encode-time formatting knobs.
type config struct {
	wrapWidth int
}

func newConfig(opts ...options.Option[*config]) *config {
	c := &config{wrapWidth: DefaultWrapWidth}
	_ = options.Apply(c, opts...)

	return c
}

// Option configures encode-time formatting.
type Option = options.Option[*config]

// WithWrapWidth overrides the default wrap width used when encoding wide
// tabular sections. A width <= 0 disables wrapping entirely.
func WithWrapWidth(width int) Option {
	return options.NoError(func(c *config) {
		c.wrapWidth = width
	})
}
