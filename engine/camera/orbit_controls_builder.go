package camera

// OrbitControlsOption is a functional option for configuring OrbitControls.
type OrbitControlsOption func(*orbitControlsImpl)

// WithOrbitTarget sets the initial orbit pivot, overriding the camera's look-at target.
//
// Parameters:
//   - x, y, z: world-space coordinates of the pivot
//
// Returns:
//   - OrbitControlsOption: functional option to set the pivot
func WithOrbitTarget(x, y, z float32) OrbitControlsOption {
	return func(oc *orbitControlsImpl) {
		oc.target = [3]float32{x, y, z}
	}
}

// WithDamping enables inertia with the given damping factor.
//
// Parameters:
//   - factor: fraction of the accumulated delta applied per Update, in (0, 1]
//
// Returns:
//   - OrbitControlsOption: functional option to enable damping
func WithDamping(factor float32) OrbitControlsOption {
	return func(oc *orbitControlsImpl) {
		oc.enableDamping = true
		oc.dampingFactor = factor
	}
}

// WithRotateSpeed sets the drag rotation multiplier.
//
// Parameters:
//   - speed: multiplier for rotate input
//
// Returns:
//   - OrbitControlsOption: functional option to set rotate speed
func WithRotateSpeed(speed float32) OrbitControlsOption {
	return func(oc *orbitControlsImpl) {
		oc.rotateSpeed = speed
	}
}

// WithZoomSpeed sets the dolly speed exponent.
//
// Parameters:
//   - speed: multiplier for zoom input
//
// Returns:
//   - OrbitControlsOption: functional option to set zoom speed
func WithZoomSpeed(speed float32) OrbitControlsOption {
	return func(oc *orbitControlsImpl) {
		oc.zoomSpeed = speed
	}
}

// WithPanSpeed sets the drag pan multiplier.
//
// Parameters:
//   - speed: multiplier for pan input
//
// Returns:
//   - OrbitControlsOption: functional option to set pan speed
func WithPanSpeed(speed float32) OrbitControlsOption {
	return func(oc *orbitControlsImpl) {
		oc.panSpeed = speed
	}
}

// WithKeyPanSpeed sets how many pixels one arrow key press pans.
//
// Parameters:
//   - pixels: pan distance per key press
//
// Returns:
//   - OrbitControlsOption: functional option to set key pan speed
func WithKeyPanSpeed(pixels float32) OrbitControlsOption {
	return func(oc *orbitControlsImpl) {
		oc.keyPanSpeed = pixels
	}
}

// WithDistanceBounds sets the minimum and maximum camera distance from the target.
//
// Parameters:
//   - min: minimum distance
//   - max: maximum distance
//
// Returns:
//   - OrbitControlsOption: functional option to set distance bounds
func WithDistanceBounds(min, max float32) OrbitControlsOption {
	return func(oc *orbitControlsImpl) {
		oc.minDistance = min
		oc.maxDistance = max
	}
}

// WithPolarBounds sets how far the camera may tilt, measured from the up axis.
//
// Parameters:
//   - min: minimum polar angle in radians (0 = straight above)
//   - max: maximum polar angle in radians (pi = straight below)
//
// Returns:
//   - OrbitControlsOption: functional option to set polar bounds
func WithPolarBounds(min, max float32) OrbitControlsOption {
	return func(oc *orbitControlsImpl) {
		oc.minPolarAngle = min
		oc.maxPolarAngle = max
	}
}

// WithViewportSize sets the initial viewport size used to scale pointer input.
//
// Parameters:
//   - width, height: viewport size in pixels
//
// Returns:
//   - OrbitControlsOption: functional option to set the viewport size
func WithViewportSize(width, height int) OrbitControlsOption {
	return func(oc *orbitControlsImpl) {
		if width > 0 && height > 0 {
			oc.viewportWidth = width
			oc.viewportHeight = height
		}
	}
}
