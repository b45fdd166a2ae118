package wgpu_backend

type wgpuBackendConfig struct {
	presentMode          PresentMode
	forceFallbackAdapter bool
}

// WGPUBackendBuilderOption is a functional option applied during NewWGPUBackend.
type WGPUBackendBuilderOption func(*wgpuBackendConfig)

// WithPresentMode sets the surface present mode. Defaults to PresentModeVSync.
//
// Parameters:
//   - mode: the PresentMode to use
//
// Returns:
//   - WGPUBackendBuilderOption: option function to apply
func WithPresentMode(mode PresentMode) WGPUBackendBuilderOption {
	return func(c *wgpuBackendConfig) {
		c.presentMode = mode
	}
}

// WithForceSoftwareRenderer requests a CPU fallback adapter instead of a hardware GPU.
// This requires a software Vulkan ICD such as SwiftShader or lavapipe.
//
// Parameters:
//   - force: true to force the fallback adapter
//
// Returns:
//   - WGPUBackendBuilderOption: option function to apply
func WithForceSoftwareRenderer(force bool) WGPUBackendBuilderOption {
	return func(c *wgpuBackendConfig) {
		c.forceFallbackAdapter = force
	}
}
