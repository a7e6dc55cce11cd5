//go:build tinygo || !cgo

package glrender

import (
	"errors"
	"fmt"

	"github.com/soypat/geometry/ms3"
	"github.com/soypat/tiranga"
)

var errNoCGO = errors.New("OpenGL rendering requires cgo and is not supported on TinyGo")

// GLDevice is unavailable without cgo.
type GLDevice struct{}

// NewGLDevice always fails without cgo.
func NewGLDevice() (*GLDevice, error) {
	return nil, fmt.Errorf("%w: %w", tiranga.ErrDevice, errNoCGO)
}

func (d *GLDevice) CompileProgram(src tiranga.ProgramSource) (tiranga.Program, error) {
	return 0, fmt.Errorf("%w: %w", tiranga.ErrShader, errNoCGO)
}

func (d *GLDevice) UploadVertices(v []ms3.Vec) (tiranga.VertexBuffer, error) {
	return 0, fmt.Errorf("%w: %w", tiranga.ErrDevice, errNoCGO)
}

func (d *GLDevice) Clear(c tiranga.Color) {}

func (d *GLDevice) Draw(p tiranga.Program, vb tiranga.VertexBuffer, mode tiranga.DrawMode, count int) error {
	return fmt.Errorf("%w: %w", tiranga.ErrDevice, errNoCGO)
}

func (d *GLDevice) DeleteProgram(p tiranga.Program) {}

func (d *GLDevice) DeleteVertices(vb tiranga.VertexBuffer) {}

// Window is unavailable without cgo.
type Window struct{}

// OpenWindow always fails without cgo.
func OpenWindow(cfg WindowConfig) (*Window, error) {
	return nil, fmt.Errorf("%w: %w", tiranga.ErrWindow, errNoCGO)
}

func (w *Window) Run(r *tiranga.Renderer) error { return errNoCGO }

func (w *Window) Close() {}

// Run always fails without cgo.
func Run(cfg WindowConfig, chakra tiranga.ChakraConfig) error {
	return fmt.Errorf("%w: %w", tiranga.ErrWindow, errNoCGO)
}
