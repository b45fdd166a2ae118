package window

// Config holds the settings shared by every Window implementation.
// Platform packages read it after applying WindowBuilderOption values to DefaultConfig.
type Config struct {
	Title            string
	Width            int
	Height           int
	MinWidth         int
	MinHeight        int
	MaxWidth         int
	MaxHeight        int
	DevicePixelRatio float32
	Fullscreen       bool
}

// WindowBuilderOption is a functional option for configuring a window.
// Use the With* functions to create options.
type WindowBuilderOption func(c *Config)

// DefaultConfig returns the configuration used before any option is applied.
//
// Returns:
//   - Config: default window settings
func DefaultConfig() Config {
	return Config{
		Title:            "oxy-viewport",
		Width:            1280,
		Height:           720,
		MinWidth:         200,
		MinHeight:        150,
		MaxWidth:         7680,
		MaxHeight:        4320,
		DevicePixelRatio: 1,
	}
}

// Apply returns DefaultConfig with the given options applied in order.
//
// Parameters:
//   - options: functional options to apply
//
// Returns:
//   - Config: the resolved configuration
func Apply(options ...WindowBuilderOption) Config {
	c := DefaultConfig()
	for _, opt := range options {
		opt(&c)
	}
	return c
}

// WithTitle sets the window title displayed in the title bar.
//
// Parameters:
//   - title: the window title text
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithTitle(title string) WindowBuilderOption {
	return func(c *Config) {
		c.Title = title
	}
}

// WithSize sets the initial drawable size.
//
// Parameters:
//   - width: initial width in pixels
//   - height: initial height in pixels
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithSize(width, height int) WindowBuilderOption {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithMinSize sets the minimum size the host allows when the user resizes the window.
//
// Parameters:
//   - width: minimum width in pixels
//   - height: minimum height in pixels
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithMinSize(width, height int) WindowBuilderOption {
	return func(c *Config) {
		c.MinWidth = width
		c.MinHeight = height
	}
}

// WithMaxSize sets the maximum size the host allows when the user resizes the window.
//
// Parameters:
//   - width: maximum width in pixels
//   - height: maximum height in pixels
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithMaxSize(width, height int) WindowBuilderOption {
	return func(c *Config) {
		c.MaxWidth = width
		c.MaxHeight = height
	}
}

// WithDevicePixelRatio overrides the device pixel ratio reported by a headless window.
// Platform windows query the monitor content scale instead.
//
// Parameters:
//   - ratio: the device pixel ratio
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithDevicePixelRatio(ratio float32) WindowBuilderOption {
	return func(c *Config) {
		c.DevicePixelRatio = ratio
	}
}

// WithFullscreen starts the window in fullscreen mode.
//
// Parameters:
//   - fullscreen: true to start fullscreen
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithFullscreen(fullscreen bool) WindowBuilderOption {
	return func(c *Config) {
		c.Fullscreen = fullscreen
	}
}
