// Package tiranga describes and draws the Indian national flag: two horizontal
// bands and the Ashoka Chakra, a circular emblem made of a filled disk and 24 spokes.
//
// Geometry is generated once on the CPU with [Generator] and collected into a [Scene].
// A [Renderer] uploads the scene to a [Device] and redraws it each frame.
// Devices for OpenGL and for plain images live in the glrender package.
package tiranga

import (
	"errors"

	"github.com/chewxy/math32"
)

// Error kinds returned by this module. Use [errors.Is] to match them.
var (
	// ErrBadGeometry is returned for out-of-domain geometry arguments such as a zero segment count.
	ErrBadGeometry = errors.New("bad geometry")
	// ErrShader is returned when a shader stage fails validation, compilation or linking.
	ErrShader = errors.New("shader program failed")
	// ErrDevice is returned when a device fails to allocate or draw a resource.
	ErrDevice = errors.New("graphics device failed")
	// ErrState is returned when a [Renderer] method is called out of order.
	ErrState = errors.New("invalid renderer state")
	// ErrWindow is returned when the window or its context cannot be created.
	ErrWindow = errors.New("failed to create window")
	// ErrLoader is returned when the OpenGL function loader cannot be initialized.
	ErrLoader = errors.New("failed to initialize OpenGL loader")
)

// LegacyPi is the approximation of π the flag was first drawn with.
// Set [Generator.Pi] or [ChakraConfig.Pi] to it to reproduce those vertices exactly.
const LegacyPi = 3.14

func isFinite(f float32) bool {
	return !math32.IsNaN(f) && !math32.IsInf(f, 0)
}
